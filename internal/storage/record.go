package storage

import (
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/harness"
)

// NewRunOutput summarizes the recorded harness calls of one run. Only failed
// results are kept as details.
func NewRunOutput(runID string, calls []harness.Call, duration time.Duration, finished time.Time) *domain.RunOutput {
	meta := domain.RunMeta{
		RunID:           runID,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       finished.Format(time.RFC3339),
		Coverage:        ldvalue.Null(),
	}
	details := []domain.TestFailure{}

	for _, c := range calls {
		switch c.Kind {
		case harness.KindInfo:
			if c.Info.Total.IsDefined() {
				meta.TotalTests += c.Info.Total.IntValue()
			}
			if c.Info.Dump != nil {
				meta.Dumps++
			}
		case harness.KindResult:
			meta.ExecutedTests++
			if c.Result.Success {
				meta.PassedTests++
				continue
			}
			meta.FailedTests++
			details = append(details, NewFailure(*c.Result))
		case harness.KindComplete:
			meta.Completed = true
			meta.Coverage = c.Completion.Coverage
		}
	}
	return &domain.RunOutput{Meta: meta, Details: details}
}

// NewFailure converts a failed result into a stored failure
func NewFailure(r domain.Result) domain.TestFailure {
	module := strings.TrimSuffix(strings.Join(r.Suite, " "), "#")
	return domain.TestFailure{
		Module:   module,
		TestName: r.Description,
		Message:  strings.Join(r.Log, "\n"),
		Log:      r.Log,
		TimeMS:   r.Time,
	}
}
