package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"tyrtlekarma/internal/adapter"
	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/discovery"
	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/harness"
	"tyrtlekarma/internal/loader"
	"tyrtlekarma/internal/logging"
	"tyrtlekarma/internal/storage"
	"tyrtlekarma/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	modules   ModuleSource
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	scheduler discovery.Scheduler
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	stdout    io.Writer
	stderr    io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	modules ModuleSource,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	scheduler discovery.Scheduler,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	stdout, stderr io.Writer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		modules:   modules,
		scanner:   scanner,
		filter:    filter,
		scheduler: scheduler,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := rc.Run(cmd.Context())
	if err != nil {
		return err
	}

	if rc.config.Flags.JSONLines {
		// stdout carries the event stream
		return nil
	}
	rc.formatter.PrintMetaStats(output)
	if output.Meta.FailedTests > 0 {
		rc.formatter.PrintRerunHint(append([]string{"tyrtlekarma", "run"}, rerunArgs(rc.config)...))
		if rc.config.Flags.OpenFaills {
			return rc.viewer.View(output)
		}
	}
	return nil
}

// Run performs one run and stores its output. The returned error is set when
// the run could not start; failed tests are reported in the output.
func (rc *RunCommand) Run(ctx context.Context) (*domain.RunOutput, error) {
	manifest, err := loadManifest(rc.config, rc.scanner)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithPrefix(ctx, "["+runID[:8]+"] ")
	recorder := harness.NewRecorder()
	sinks := []harness.Harness{recorder}
	if rc.config.Flags.JSONLines {
		sinks = append(sinks, harness.NewJSONLines(rc.stdout, runID))
	} else {
		sinks = append(sinks, ui.NewConsoleHarness(rc.stderr, rc.config.Flags.Verbose))
	}
	if rc.config.SocketURL != "" {
		socket, err := harness.DialSocket(ctx, rc.config.SocketURL, runID)
		if err != nil {
			return nil, err
		}
		defer socket.Close()
		sinks = append(sinks, socket)
	}
	h := harness.Multi(sinks...)

	dump := adapter.NewDumpFunc(h, adapter.JSONValue, func(err error) {
		logging.Infof(ctx, "Failed to report dump: %v", err)
	})
	start := adapter.NewStartFunc(h, adapter.Env{
		Manifest:  manifest,
		Loader:    loader.New(rc.modules(dump), loader.WithConcurrency(rc.config.LoadConcurrency)),
		Coverage:  coverageFromFile(ctx, rc.config.CoverageFile),
		Discovery: discoveryOptions(rc.config),
		Select:    rc.selector(),
	})

	began := time.Now()
	if err := start(ctx); err != nil {
		return nil, err
	}
	output := storage.NewRunOutput(runID, recorder.Calls(), time.Since(began), time.Now())

	if err := rc.storage.Save(output); err != nil {
		return nil, fmt.Errorf("failed to save test results: %w", err)
	}
	if rc.config.Flags.SaveDB {
		db := storage.NewMySQLStorage(rc.config.Database)
		defer db.Close()
		if err := db.Save(output); err != nil {
			return nil, fmt.Errorf("failed to save test results to database: %w", err)
		}
	}
	logging.Debugf(ctx, "Run finished: %d passed, %d failed", output.Meta.PassedTests, output.Meta.FailedTests)
	return output, nil
}

// selector narrows discovered identifiers by name filter and shard
func (rc *RunCommand) selector() func([]string) []string {
	return func(ids []string) []string {
		ids = rc.filter.FilterByName(ids, rc.config.Flags.NameFilter)
		return discovery.Shard(rc.scheduler, ids, rc.config.Shard, rc.config.Shards)
	}
}

func discoveryOptions(cfg *config.Config) discovery.Options {
	return discovery.Options{
		BasePrefix: cfg.BasePrefix,
		TestSuffix: cfg.TestSuffix,
		ModuleExt:  cfg.ModuleExt,
	}
}

func rerunArgs(cfg *config.Config) []string {
	var args []string
	if cfg.Flags.BasePath != "" {
		args = append(args, "--base-path", cfg.Flags.BasePath)
	}
	if cfg.Flags.ManifestFile != "" {
		args = append(args, "--manifest", cfg.Flags.ManifestFile)
	}
	if cfg.Flags.NameFilter != "" {
		args = append(args, "--filter", cfg.Flags.NameFilter)
	}
	return args
}

// loadManifest reads the manifest file when one is configured, and otherwise
// scans the base path
func loadManifest(cfg *config.Config, scanner *discovery.Scanner) (*domain.Manifest, error) {
	if cfg.ManifestFile == "" {
		return scanner.Scan(cfg.GetBasePath())
	}
	data, err := os.ReadFile(cfg.ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest := domain.NewManifest()
	if err := manifest.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", cfg.ManifestFile, err)
	}
	return manifest, nil
}

// coverageFromFile returns a CoverageFunc reading path when the run completes
func coverageFromFile(ctx context.Context, path string) adapter.CoverageFunc {
	if path == "" {
		return adapter.NoCoverage
	}
	return func() ldvalue.Value {
		data, err := os.ReadFile(path)
		if err != nil {
			logging.Infof(ctx, "No coverage: %v", err)
			return ldvalue.Null()
		}
		return ldvalue.Parse(data)
	}
}
