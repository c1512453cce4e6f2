package runner

import (
	"context"
	"fmt"

	"code.cloudfoundry.org/clock"

	"tyrtlekarma/internal/logging"
)

// Renderer receives lifecycle notifications from a Runner
type Renderer interface {
	// BeforeRun is called once, after all modules are registered and before any test runs.
	BeforeRun(ctx context.Context, r *Runner)
	// AfterTest is called once per test, in execution order.
	AfterTest(ctx context.Context, test *Test, module *Module, r *Runner)
	// AfterRun is called exactly once when the run is over.
	AfterRun(ctx context.Context, r *Runner)
}

type nopRenderer struct{}

func (nopRenderer) BeforeRun(context.Context, *Runner)                {}
func (nopRenderer) AfterTest(context.Context, *Test, *Module, *Runner) {}
func (nopRenderer) AfterRun(context.Context, *Runner)                 {}

// Option configures a Runner
type Option func(*Runner)

// WithRenderer sets the renderer notified of lifecycle events
func WithRenderer(rd Renderer) Option {
	return func(r *Runner) { r.SetRenderer(rd) }
}

// WithClock sets the clock used to measure test run times
func WithClock(c clock.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// Summary counts test outcomes of one run
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of tests that were reported
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Runner executes registered modules sequentially.
type Runner struct {
	modules  []*Module
	renderer Renderer
	clock    clock.Clock
}

// New creates a Runner
func New(opts ...Option) *Runner {
	r := &Runner{
		renderer: nopRenderer{},
		clock:    clock.NewClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetRenderer replaces the active renderer. A nil renderer disables notifications.
func (r *Runner) SetRenderer(rd Renderer) {
	if rd == nil {
		rd = nopRenderer{}
	}
	r.renderer = rd
}

// Module registers a module. Modules run in registration order.
func (r *Runner) Module(m *Module) {
	r.modules = append(r.modules, m)
}

// Modules returns the registered modules
func (r *Runner) Modules() []*Module {
	return append([]*Module(nil), r.modules...)
}

// TestCount returns the number of tests across all registered modules
func (r *Runner) TestCount() int {
	total := 0
	for _, m := range r.modules {
		total += len(m.Tests)
	}
	return total
}

// Run executes every registered test. If ctx is cancelled, the remaining tests
// are reported as skipped so the renderer still sees one AfterTest per test.
func (r *Runner) Run(ctx context.Context) Summary {
	var sum Summary
	r.renderer.BeforeRun(ctx, r)
	for _, m := range r.modules {
		r.runModule(ctx, m, &sum)
	}
	r.renderer.AfterRun(ctx, r)
	return sum
}

func (r *Runner) runModule(ctx context.Context, m *Module, sum *Summary) {
	setup := newT(ctx, m.Name)
	setup.run(m.BeforeAll)
	setupStatus, setupMsg := setup.outcome()

	for _, test := range m.Tests {
		switch {
		case ctx.Err() != nil:
			test.Status = StatusSkip
			test.StatusMessage = fmt.Sprintf("run cancelled: %v", ctx.Err())
		case setupStatus == StatusFail:
			test.Status = StatusFail
			test.StatusMessage = "beforeAll failed: " + setupMsg
		case setupStatus == StatusSkip:
			test.Status = StatusSkip
			test.StatusMessage = setupMsg
		default:
			r.runTest(ctx, m, test)
		}

		switch test.Status {
		case StatusPass:
			sum.Passed++
		case StatusFail:
			sum.Failed++
		default:
			sum.Skipped++
		}
		r.renderer.AfterTest(ctx, test, m, r)
	}

	teardown := newT(ctx, m.Name)
	teardown.run(m.AfterAll)
	if status, msg := teardown.outcome(); status == StatusFail {
		logging.Infof(ctx, "afterAll of module %s failed: %s", m.Name, msg)
	}
}

func (r *Runner) runTest(ctx context.Context, m *Module, test *Test) {
	t := newT(ctx, test.Name)
	start := r.clock.Now()
	t.run(m.Before)
	if !t.failed && !t.skipped {
		t.run(test.Body)
	}
	t.run(m.After)
	test.RunTime = r.clock.Now().Sub(start)
	test.Status, test.StatusMessage = t.outcome()
	logging.Debugf(ctx, "%s/%s: %s (%s)", m.Name, test.Name, test.Status, test.RunTime)
}
