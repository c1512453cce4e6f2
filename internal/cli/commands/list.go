package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tyrtlekarma/internal/adapter"
	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/discovery"
	"tyrtlekarma/internal/harness"
	"tyrtlekarma/internal/loader"
	"tyrtlekarma/internal/runner"
	"tyrtlekarma/internal/storage"
	"tyrtlekarma/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	modules   ModuleSource
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	modules ModuleSource,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		modules:   modules,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	manifest, err := loadManifest(lc.config, lc.scanner)
	if err != nil {
		return err
	}

	byName := func(ids []string) []string {
		return lc.filter.FilterByName(ids, lc.config.Flags.NameFilter)
	}
	// Registration only; nothing runs, so nothing is reported
	a := adapter.New(harness.NewRecorder(), adapter.Env{
		Manifest:  manifest,
		Loader:    loader.New(lc.modules(nil), loader.WithConcurrency(lc.config.LoadConcurrency)),
		Discovery: discoveryOptions(lc.config),
		Select:    byName,
	})

	ids := a.Identifiers()
	if len(ids) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No test modules found")
		return nil
	}

	var modules map[string][]*runner.Module
	if lc.config.Flags.TestCases {
		if err := a.Register(cmd.Context()); err != nil {
			return err
		}
		modules = make(map[string][]*runner.Module)
		for _, m := range a.Runner().Modules() {
			id, _ := m.Identity()
			modules[id.File] = append(modules[id.File], m)
		}
	}

	// Mark modules that failed in the last run, if there is one
	var failed map[string]struct{}
	if last, err := lc.storage.Load(); err == nil {
		failed = ui.FailedModules(last)
	}

	lc.formatter.PrintModuleList(ids, modules, lc.config.Flags.TestCases, failed)
	return nil
}
