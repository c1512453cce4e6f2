// Package demo defines a small self-test suite used to exercise the whole
// pipeline from the command line. Its identifiers match the marker files under
// testdata/base/public/selftest.
package demo

import (
	"context"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tyrtlekarma/internal/adapter"
	"tyrtlekarma/internal/loader"
	"tyrtlekarma/internal/runner"
)

// Identifiers of the demo modules
const (
	MathID    = "selftest/math-test"
	StringsID = "selftest/strings-test"
	AsyncID   = "selftest/async-test"
)

// Registry returns a registry defining the demo modules. Tests that log
// values report them through dump, which may be nil.
func Registry(dump adapter.DumpFunc) *loader.Registry {
	if dump == nil {
		dump = func(...interface{}) {}
	}
	reg := loader.NewRegistry()
	reg.Define(MathID, func(context.Context) (interface{}, error) {
		return mathModules(), nil
	})
	reg.Define(StringsID, func(context.Context) (interface{}, error) {
		return stringsModule(dump), nil
	})
	reg.Define(AsyncID, asyncModule)
	return reg
}

func mathModules() []*runner.Module {
	arithmetic := runner.NewModule("Arithmetic").
		Add("adds", func(t *runner.T) {
			assert.Equal(t, 4, 2+2)
		}).
		Add("divides", func(t *runner.T) {
			if got := 9 / 3; got != 3 {
				t.Errorf("9 / 3 = %d", got)
			}
		})

	comparison := runner.NewModule("Comparison").
		Add("orders integers", func(t *runner.T) {
			assert.Less(t, 1, 2)
		}).
		Add("compares floats", func(t *runner.T) {
			assert.InDelta(t, 0.3, 0.1+0.2, 1e-9)
		})

	return []*runner.Module{arithmetic, comparison}
}

func stringsModule(dump adapter.DumpFunc) *runner.Module {
	var words []string
	m := runner.NewModule("Strings").
		Add("splits", func(t *runner.T) {
			words = strings.Fields("tyrtle meets karma")
			require.Len(t, words, 3)
			dump("words", words)
		}).
		Add("joins", func(t *runner.T) {
			assert.Equal(t, "tyrtle-meets-karma", strings.Join(words, "-"))
		})
	m.Before = func(t *runner.T) {
		t.Logf("starting %s", t.Name())
	}
	return m
}

// asyncModule stands in for a module whose definition has to be fetched.
func asyncModule(ctx context.Context) (interface{}, error) {
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var ready bool
	m := runner.NewModule("Async").
		Add("sees setup", func(t *runner.T) {
			if !ready {
				t.Fatalf("beforeAll did not run")
			}
		})
	m.BeforeAll = func(*runner.T) { ready = true }
	return m, nil
}
