package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"tyrtlekarma/internal/logging"
)

// T is passed to test bodies and hooks. It implements require.TestingT, so
// assertions from testify's assert and require packages can be used with it.
type T struct {
	ctx        context.Context
	name       string
	failed     bool
	skipped    bool
	skipReason string
	errors     []error
}

func newT(ctx context.Context, name string) *T {
	return &T{ctx: logging.WithPrefix(ctx, "["+name+"] "), name: name}
}

// Context returns the context of the current run
func (t *T) Context() context.Context {
	return t.ctx
}

// Name returns the test or module name
func (t *T) Name() string {
	return t.name
}

// Errorf records a failure. It does not stop the test.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	t.errors = append(t.errors, fmt.Errorf(format, args...))
}

// Error records a failure built with fmt.Sprint.
func (t *T) Error(args ...interface{}) {
	t.failed = true
	t.errors = append(t.errors, errors.New(fmt.Sprint(args...)))
}

// FailNow stops the test immediately, marking it failed.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Fatalf is Errorf followed by FailNow.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

// Skip stops the test immediately, marking it skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// Skipf records a reason and skips the test.
func (t *T) Skipf(format string, args ...interface{}) {
	t.skipReason = fmt.Sprintf(format, args...)
	t.Skip()
}

// Logf writes a debug log through the run context.
func (t *T) Logf(format string, args ...interface{}) {
	logging.Debugf(t.ctx, format, args...)
}

// Failed reports whether a failure has been recorded
func (t *T) Failed() bool {
	return t.failed
}

func (t *T) run(fn func(*T)) {
	if fn == nil {
		return
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if r == t {
			if t.failed && len(t.errors) == 0 {
				t.errors = append(t.errors, errors.New("test failed with no failure message"))
			}
			return
		}
		t.failed = true
		t.errors = append(t.errors, fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack())))
	}()
	fn(t)
}

// outcome converts the recorded state to a status and status message.
// A failure takes precedence over a skip.
func (t *T) outcome() (Status, string) {
	switch {
	case t.failed:
		msgs := make([]string, 0, len(t.errors))
		for _, err := range t.errors {
			msgs = append(msgs, err.Error())
		}
		return StatusFail, strings.Join(msgs, "\n")
	case t.skipped:
		return StatusSkip, t.skipReason
	default:
		return StatusPass, ""
	}
}
