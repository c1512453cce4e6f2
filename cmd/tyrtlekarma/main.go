package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tyrtlekarma/internal/cli"
	"tyrtlekarma/internal/cli/commands"
	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/demo"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "tyrtlekarma",
		Short:   "Tyrtle test runner bridged to a Karma-style harness",
		Long:    `Discovers test modules in a harness manifest, runs them with the Tyrtle-style runner and reports progress and results through the harness protocol.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies. The bundled demo suite is the module
	// source; embedding programs pass their own registry.
	cmds := commands.NewCommands(cfg, demo.Registry, os.Stdout, os.Stderr)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
