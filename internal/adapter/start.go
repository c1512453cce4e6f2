// Package adapter bridges the test runner and the harness. It discovers the
// test modules named in a harness manifest, loads and registers them with one
// runner, and relays the run's lifecycle to the harness.
package adapter

import (
	"context"
	"fmt"

	"tyrtlekarma/internal/discovery"
	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/harness"
	"tyrtlekarma/internal/loader"
	"tyrtlekarma/internal/logging"
	"tyrtlekarma/internal/runner"
)

// Env is everything the start function needs besides the harness
type Env struct {
	// Manifest lists the paths the harness has loaded.
	Manifest *domain.Manifest
	// Loader resolves module identifiers.
	Loader *loader.Loader
	// Coverage is read once when the run completes. Nil means no coverage.
	Coverage CoverageFunc
	// Discovery controls path normalization. The zero value uses the defaults.
	Discovery discovery.Options
	// Select optionally narrows the discovered identifiers, for example by
	// name filter or CI shard. It must preserve order.
	Select func(ids []string) []string
	// RunnerOptions are applied when the runner is constructed.
	RunnerOptions []runner.Option
}

// StartFunc discovers, loads, registers and runs the test modules
type StartFunc func(ctx context.Context) error

// Adapter owns one runner whose renderer reports to a harness
type Adapter struct {
	env     Env
	runner  *runner.Runner
	summary runner.Summary
}

// New creates an Adapter and its runner
func New(h harness.Harness, env Env) *Adapter {
	if env.Discovery == (discovery.Options{}) {
		env.Discovery = discovery.DefaultOptions()
	}
	opts := append([]runner.Option{runner.WithRenderer(NewReporter(h, env.Coverage))}, env.RunnerOptions...)
	return &Adapter{env: env, runner: runner.New(opts...)}
}

// NewStartFunc returns the start function of a new Adapter
func NewStartFunc(h harness.Harness, env Env) StartFunc {
	return New(h, env).Start
}

// Runner returns the runner modules are registered with
func (a *Adapter) Runner() *runner.Runner {
	return a.runner
}

// Summary returns the outcome counts of the last run
func (a *Adapter) Summary() runner.Summary {
	return a.summary
}

// Identifiers returns the module identifiers the run will load
func (a *Adapter) Identifiers() []string {
	ids := discovery.Discover(a.env.Manifest, a.env.Discovery)
	if a.env.Select != nil {
		ids = a.env.Select(ids)
	}
	return ids
}

// Register loads every discovered module and registers it with the runner,
// tagging each with its identifier and position. Nothing is registered if
// any module fails to load.
func (a *Adapter) Register(ctx context.Context) error {
	if a.env.Loader == nil {
		return fmt.Errorf("no module loader configured")
	}
	ids := a.Identifiers()
	logging.Debugf(ctx, "Discovered %d test modules", len(ids))

	if err := a.env.Loader.Require(ctx, ids); err != nil {
		return fmt.Errorf("failed to load test modules: %w", err)
	}

	var modules []*runner.Module
	for _, id := range ids {
		export, err := a.env.Loader.Lookup(id)
		if err != nil {
			return fmt.Errorf("failed to load test modules: %w", err)
		}
		mods, err := loader.Normalize(export)
		if err != nil {
			return fmt.Errorf("module %s: %w", id, err)
		}
		for i, m := range mods {
			m.SetIdentity(id, i)
			modules = append(modules, m)
		}
	}
	for _, m := range modules {
		a.runner.Module(m)
	}
	return nil
}

// Start registers the discovered modules and runs them. On error nothing is
// run and the harness is not told the run completed. Calling Start again
// registers the modules a second time.
func (a *Adapter) Start(ctx context.Context) error {
	if err := a.Register(ctx); err != nil {
		return err
	}
	a.summary = a.runner.Run(ctx)
	return nil
}
