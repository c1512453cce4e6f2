package harness

import (
	"time"

	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/metrics"
)

type instrumented struct {
	next Harness
	m    *metrics.Metrics
}

// Instrument wraps h so that every call is counted in m
func Instrument(h Harness, m *metrics.Metrics) Harness {
	return &instrumented{next: h, m: m}
}

func (i *instrumented) Info(info domain.Info) error {
	if info.Total.IsDefined() {
		i.m.Runs.Inc()
		i.m.TestsTotal.Add(float64(info.Total.IntValue()))
	}
	if info.Dump != nil {
		i.m.Dumps.Inc()
	}
	return i.count("info", i.next.Info(info))
}

func (i *instrumented) Result(result domain.Result) error {
	outcome := "failed"
	if result.Success {
		outcome = "passed"
	}
	i.m.Results.WithLabelValues(outcome).Inc()
	i.m.TestTime.Observe((time.Duration(result.Time) * time.Millisecond).Seconds())
	return i.count("result", i.next.Result(result))
}

func (i *instrumented) Complete(completion domain.Completion) error {
	i.m.Completions.Inc()
	return i.count("complete", i.next.Complete(completion))
}

func (i *instrumented) count(call string, err error) error {
	if err != nil {
		i.m.Errors.WithLabelValues(call).Inc()
	}
	return err
}
