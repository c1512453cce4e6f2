// Package harness contains the reporting side of a test run: the Harness
// interface the adapter reports to, and the transports that carry those
// reports to an orchestration host.
//
// A run always produces, in order: one Info with a total, any number of
// Results and Info dumps, and one Completion.
package harness

import (
	"errors"

	"tyrtlekarma/internal/domain"
)

// Harness receives progress and results of a test run
type Harness interface {
	Info(info domain.Info) error
	Result(result domain.Result) error
	Complete(completion domain.Completion) error
}

type multi struct {
	harnesses []Harness
}

// Multi returns a Harness that forwards every call to all of hs in order.
// All harnesses are called even if some fail; the errors are joined.
func Multi(hs ...Harness) Harness {
	return &multi{harnesses: hs}
}

func (m *multi) Info(info domain.Info) error {
	return m.each(func(h Harness) error { return h.Info(info) })
}

func (m *multi) Result(result domain.Result) error {
	return m.each(func(h Harness) error { return h.Result(result) })
}

func (m *multi) Complete(completion domain.Completion) error {
	return m.each(func(h Harness) error { return h.Complete(completion) })
}

func (m *multi) each(call func(Harness) error) error {
	var errs []error
	for _, h := range m.harnesses {
		if err := call(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
