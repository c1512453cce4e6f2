package harness

import (
	"sync"

	"tyrtlekarma/internal/domain"
)

// Kind identifies a harness call
type Kind string

const (
	KindInfo     Kind = "info"
	KindResult   Kind = "result"
	KindComplete Kind = "complete"
)

// Call is one recorded harness call. Exactly one of the payload fields is set,
// according to Kind.
type Call struct {
	Kind       Kind
	Info       *domain.Info
	Result     *domain.Result
	Completion *domain.Completion
}

// Recorder is a Harness that keeps every call in memory, in order
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(info domain.Info) error {
	r.add(Call{Kind: KindInfo, Info: &info})
	return nil
}

func (r *Recorder) Result(result domain.Result) error {
	r.add(Call{Kind: KindResult, Result: &result})
	return nil
}

func (r *Recorder) Complete(completion domain.Completion) error {
	r.add(Call{Kind: KindComplete, Completion: &completion})
	return nil
}

func (r *Recorder) add(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns a copy of the recorded calls
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Kinds returns the kinds of the recorded calls, in order
func (r *Recorder) Kinds() []Kind {
	calls := r.Calls()
	kinds := make([]Kind, 0, len(calls))
	for _, c := range calls {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}

// Results returns the recorded results, in order
func (r *Recorder) Results() []domain.Result {
	var out []domain.Result
	for _, c := range r.Calls() {
		if c.Kind == KindResult {
			out = append(out, *c.Result)
		}
	}
	return out
}

// Completed reports whether Complete was called, and with what
func (r *Recorder) Completed() (domain.Completion, bool) {
	for _, c := range r.Calls() {
		if c.Kind == KindComplete {
			return *c.Completion, true
		}
	}
	return domain.Completion{}, false
}
