package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"tyrtlekarma/internal/domain"
)

// ConsoleHarness is a Harness that shows a run's progress on a terminal. The
// progress bar is created when the total is announced; dumps and failures are
// printed as they arrive.
type ConsoleHarness struct {
	w       io.Writer
	verbose bool

	mu      sync.Mutex
	bar     *ProgressBar
	passed  int
	failed  int
	dumpOut *color.Color
	failOut *color.Color
}

// NewConsoleHarness creates a ConsoleHarness writing to w. With verbose set,
// failures are printed with their log as they happen.
func NewConsoleHarness(w io.Writer, verbose bool) *ConsoleHarness {
	return &ConsoleHarness{
		w:       w,
		verbose: verbose,
		dumpOut: color.New(color.FgMagenta),
		failOut: color.New(color.FgRed),
	}
}

func (c *ConsoleHarness) Info(info domain.Info) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if info.Total.IsDefined() {
		c.bar = NewProgressBar(c.w, info.Total.IntValue())
	}
	if info.Dump != nil {
		parts := make([]string, len(info.Dump))
		for i, v := range info.Dump {
			parts[i] = fmt.Sprint(v)
		}
		c.dumpOut.Fprintf(c.w, "\ndump: %s\n", strings.Join(parts, " "))
	}
	return nil
}

func (c *ConsoleHarness) Result(result domain.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result.Success {
		c.passed++
	} else {
		c.failed++
		if c.verbose {
			c.failOut.Fprintf(c.w, "\n✗ %s %s\n", strings.Join(result.Suite, " "), result.Description)
			for _, line := range result.Log {
				if line != "" {
					fmt.Fprintf(c.w, "    %s\n", line)
				}
			}
		}
	}
	if c.bar != nil {
		c.bar.Update(c.passed, c.failed)
	}
	return nil
}

func (c *ConsoleHarness) Complete(domain.Completion) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		c.bar.Finish()
	}
	return nil
}

// Counts returns the number of passed and failed results seen so far
func (c *ConsoleHarness) Counts() (passed, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passed, c.failed
}
