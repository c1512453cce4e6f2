package commands

import (
	"io"

	"github.com/spf13/cobra"

	"tyrtlekarma/internal/adapter"
	"tyrtlekarma/internal/cli"
	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/discovery"
	"tyrtlekarma/internal/loader"
	"tyrtlekarma/internal/logging"
	"tyrtlekarma/internal/storage"
	"tyrtlekarma/internal/ui"
)

// ModuleSource returns the registry of test modules a run can load. Tests
// report logged values through dump.
type ModuleSource func(dump adapter.DumpFunc) *loader.Registry

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand
	Serve   *ServeCommand
}

// NewCommands creates all commands with dependencies. Human readable output
// goes to stdout and progress to stderr.
func NewCommands(cfg *config.Config, modules ModuleSource, stdout, stderr io.Writer) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	scheduler := discovery.NewRoundRobinScheduler()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(stdout)
	failureViewer := ui.NewFailureViewer(stdout, jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, modules, scanner, filter, scheduler, jsonStorage, formatter, failureViewer, stdout, stderr),
		List:    NewListCommand(cfg, modules, scanner, filter, formatter, jsonStorage),
		Migrate: NewMigrateCommand(cfg),
		Faills:  NewFaillsCommand(jsonStorage, failureViewer),
		Serve:   NewServeCommand(cfg, stdout, stderr),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Every command resolves its configuration after flags are parsed
	loadConfig := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		logger := logging.NewConsoleLogger(cmd.ErrOrStderr(), cfg.Flags.Verbose)
		cmd.SetContext(logging.AttachLogger(cmd.Context(), logger))
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&flags.ProjectPath, "project", "", "Project directory (where .env and storage/ live)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print debug logs")

	addDiscoveryFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&flags.BasePath, "base-path", "b", "", "Directory served to the harness as /base/")
		cmd.Flags().StringVar(&flags.ManifestFile, "manifest", "", "JSON manifest of served files (overrides --base-path scanning)")
		cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test modules by name pattern (supports wildcards, e.g., 'user*' or '*payment*')")
		cmd.Flags().IntVar(&flags.Shards, "shards", 0, "Split test modules across this many CI workers")
		cmd.Flags().IntVar(&flags.Shard, "shard", 0, "Zero-based index of this worker's shard")
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the discovered test modules",
		Long:    "Discover test modules in the harness manifest, load and run them, and report results to the configured harness sinks",
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	addDiscoveryFlags(runCmd)
	runCmd.Flags().StringVar(&flags.SocketURL, "socket", "", "Websocket harness endpoint to report to (e.g. ws://127.0.0.1:9877/harness)")
	runCmd.Flags().StringVar(&flags.CoverageFile, "coverage", "", "JSON file with coverage to forward on completion")
	runCmd.Flags().BoolVar(&flags.JSONLines, "json", false, "Write harness events to stdout as JSON lines")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.SaveDB, "save-db", false, "Also store the run in MySQL (see migrate)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered test modules",
		Long:    "Discover and list test module identifiers without running them",
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	addDiscoveryFlags(listCmd)
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "Load the modules and list their tests")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the MySQL results schema",
		Long:    "Create the results database and its tables using the DB_* settings",
		RunE:    c.Migrate.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(migrateCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:     "failures",
		Aliases: []string{"faills"},
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last test run in an interactive viewer",
		RunE:    c.Faills.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(faillsCmd)

	// Serve command
	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Accept harness events over a websocket",
		Long:    "Listen for runs reporting through --socket, print their progress and expose Prometheus metrics",
		RunE:    c.Serve.Execute,
		PreRunE: loadConfig,
	}
	serveCmd.Flags().BoolVar(&flags.JSONLines, "json", false, "Write received harness events to stdout as JSON lines")
	serveCmd.Flags().StringVar(&flags.ListenAddr, "listen", "", "Address to listen on (default "+config.DefaultListenAddr+")")
	rootCmd.AddCommand(serveCmd)
}
