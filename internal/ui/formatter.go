package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"

	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/runner"
)

// Formatter formats and displays output
type Formatter struct {
	w io.Writer

	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	white  *color.Color
}

// NewFormatter creates a new Formatter writing to w
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:      w,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		white:  color.New(color.FgWhite),
	}
}

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableRow    = "├─────────────────────────────────┼─────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────┘"
)

// PrintMetaStats displays the statistics of a stored run followed by a tree of its failures
func (f *Formatter) PrintMetaStats(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Fprint(f.w, "\n")
	f.cyan.Fprintln(f.w, "╔═══════════════════════════════════════════════════════════════╗")
	f.cyan.Fprintln(f.w, "║                    Test Execution Statistics                  ║")
	f.cyan.Fprintln(f.w, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.w)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Run", meta.RunID, f.white},
		{"Total Tests", fmt.Sprint(meta.TotalTests), f.white},
		{"Executed Tests", fmt.Sprint(meta.ExecutedTests), f.white},
		{"Passed Tests", fmt.Sprint(meta.PassedTests), f.green},
		{"Failed Tests", fmt.Sprint(meta.FailedTests), f.red},
		{"Dumps", fmt.Sprint(meta.Dumps), f.white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), f.white},
		{"Timestamp", meta.Timestamp, f.white},
	}

	fmt.Fprintln(f.w, tableTop)
	for i, row := range rows {
		fmt.Fprintf(f.w, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.w, "%-27s", row.value)
		fmt.Fprintln(f.w, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.w, tableRow)
		}
	}
	fmt.Fprintln(f.w, tableBottom)

	fmt.Fprintln(f.w)
	switch {
	case !meta.Completed:
		f.red.Fprintln(f.w, "✗ The run did not complete")
	case meta.FailedTests == 0:
		f.green.Fprintln(f.w, "✓ All tests passed!")
	default:
		f.red.Fprintf(f.w, "✗ %d test(s) failed\n", meta.FailedTests)
		fmt.Fprintln(f.w)
		f.printFailedTestsTree(output.Details)
	}
}

// printFailedTestsTree prints failed tests grouped by module
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	byModule := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byModule[failure.Module] = append(byModule[failure.Module], failure)
	}
	modules := make([]string, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for i, m := range modules {
		lastModule := i == len(modules)-1
		f.yellow.Fprintf(f.w, "%s%s\n", branch(lastModule), m)
		cases := byModule[m]
		for j, failure := range cases {
			marker := ""
			if failure.Resolved {
				marker = " (resolved)"
			}
			f.red.Fprintf(f.w, "%s%s%s%s\n", indent(lastModule), branch(j == len(cases)-1), failure.TestName, marker)
		}
	}
}

// PrintModuleList prints module identifiers, optionally with their modules and tests.
// failed is optional; modules named in it are marked with [F] in red (from last run).
func (f *Formatter) PrintModuleList(ids []string, modules map[string][]*runner.Module, showTestCases bool, failed map[string]struct{}) {
	if showTestCases {
		f.green.Fprintf(f.w, "Found %d test module file(s) with test cases:\n\n", len(ids))
	} else {
		f.green.Fprintf(f.w, "Found %d test module file(s):\n\n", len(ids))
	}

	for i, id := range ids {
		lastFile := i == len(ids)-1
		f.cyan.Fprintf(f.w, "%s%s\n", branch(lastFile), id)
		if !showTestCases {
			continue
		}

		mods := modules[id]
		if len(mods) == 0 {
			fmt.Fprintf(f.w, "%s%s%s\n", indent(lastFile), branch(true), f.red.Sprint("(no test modules found)"))
			continue
		}
		for j, m := range mods {
			lastMod := j == len(mods)-1
			fmt.Fprintf(f.w, "%s%s%s%s\n", indent(lastFile), branch(lastMod), f.white.Sprint(m.Name), f.failMarker(m.Name, failed))
			for k, test := range m.Tests {
				fmt.Fprintf(f.w, "%s%s%s%s\n", indent(lastFile), indent(lastMod), branch(k == len(m.Tests)-1), f.yellow.Sprint(test.Name))
			}
		}
		if !lastFile {
			fmt.Fprintln(f.w)
		}
	}
}

// PrintRerunHint prints a command line that repeats a run with the given arguments
func (f *Formatter) PrintRerunHint(args []string) {
	fmt.Fprintln(f.w)
	f.cyan.Fprintf(f.w, "To run again: %s\n", shellescape.QuoteCommand(args))
}

func (f *Formatter) failMarker(name string, failed map[string]struct{}) string {
	if _, ok := failed[name]; ok {
		return " " + f.red.Sprint("[F]")
	}
	return ""
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

// FailedModules returns the set of module names with unresolved failures
func FailedModules(output *domain.RunOutput) map[string]struct{} {
	set := make(map[string]struct{})
	for _, failure := range output.Details {
		if !failure.Resolved {
			set[failure.Module] = struct{}{}
		}
	}
	return set
}
