package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/harness"
	"tyrtlekarma/internal/logging"
	"tyrtlekarma/internal/metrics"
	"tyrtlekarma/internal/ui"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	config *config.Config
	stdout io.Writer
	stderr io.Writer
}

// NewServeCommand creates a new ServeCommand
func NewServeCommand(cfg *config.Config, stdout, stderr io.Writer) *ServeCommand {
	return &ServeCommand{config: cfg, stdout: stdout, stderr: stderr}
}

// Handler returns the serve command's routes: the harness websocket at
// /harness and metrics at /metrics
func (sc *ServeCommand) Handler(ctx context.Context, downstream harness.Harness) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics()
	if err := m.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/harness", harness.NewServer(ctx, harness.Instrument(downstream, m)))
	mux.Handle("/metrics", metrics.Handler(reg))
	return mux, nil
}

// Execute runs the command
func (sc *ServeCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var downstream harness.Harness
	if sc.config.Flags.JSONLines {
		downstream = harness.NewJSONLines(sc.stdout, "")
	} else {
		downstream = ui.NewConsoleHarness(sc.stderr, true)
	}
	handler, err := sc.Handler(ctx, downstream)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              sc.config.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.Infof(ctx, "Harness endpoint listening on ws://%s/harness, metrics on http://%s/metrics", sc.config.ListenAddr, sc.config.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
