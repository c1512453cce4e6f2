package adapter

import (
	"context"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/harness"
	"tyrtlekarma/internal/logging"
	"tyrtlekarma/internal/runner"
)

// CoverageFunc returns the coverage collected during a run. It is called once,
// when the run is over. A null value means no coverage was collected.
type CoverageFunc func() ldvalue.Value

// NoCoverage reports the absence of coverage
func NoCoverage() ldvalue.Value {
	return ldvalue.Null()
}

// Reporter translates runner lifecycle events into harness calls
type Reporter struct {
	harness  harness.Harness
	coverage CoverageFunc
}

// NewReporter creates a Reporter. A nil coverage reports no coverage.
func NewReporter(h harness.Harness, coverage CoverageFunc) *Reporter {
	if coverage == nil {
		coverage = NoCoverage
	}
	return &Reporter{harness: h, coverage: coverage}
}

// BeforeRun reports the number of tests across all registered modules
func (rp *Reporter) BeforeRun(ctx context.Context, r *runner.Runner) {
	total := 0
	for _, m := range r.Modules() {
		total += len(m.Tests)
	}
	if err := rp.harness.Info(domain.Info{Total: ldvalue.NewOptionalInt(total)}); err != nil {
		logging.Infof(ctx, "Failed to report total: %v", err)
	}
}

// AfterTest reports the outcome of one test
func (rp *Reporter) AfterTest(ctx context.Context, test *runner.Test, m *runner.Module, _ *runner.Runner) {
	if err := rp.harness.Result(NewResult(test, m)); err != nil {
		logging.Infof(ctx, "Failed to report result of %s: %v", test.Name, err)
	}
}

// AfterRun signals completion, forwarding the coverage verbatim
func (rp *Reporter) AfterRun(ctx context.Context, _ *runner.Runner) {
	if err := rp.harness.Complete(domain.Completion{Coverage: rp.coverage()}); err != nil {
		logging.Infof(ctx, "Failed to report completion: %v", err)
	}
}

// NewResult builds the harness record of an executed test
func NewResult(test *runner.Test, m *runner.Module) domain.Result {
	return domain.Result{
		Description: test.Name,
		Suite:       []string{m.Name + "#"},
		Success:     test.Status == runner.StatusPass,
		Log:         []string{test.StatusMessage},
		Time:        test.RunTime.Milliseconds(),
	}
}
