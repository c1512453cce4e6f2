package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tyrtlekarma/internal/runner"
)

func TestRequireCachesExports(t *testing.T) {
	var calls int32
	reg := NewRegistry()
	mod := runner.NewModule("Foo")
	reg.Define("mod/a-test", func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return mod, nil
	})

	l := New(reg)
	require.NoError(t, l.Require(context.Background(), []string{"mod/a-test"}))
	require.NoError(t, l.Require(context.Background(), []string{"mod/a-test", "mod/a-test"}))

	got, err := l.Lookup("mod/a-test")
	require.NoError(t, err)
	assert.Same(t, mod, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRequireRunsFactoriesConcurrently(t *testing.T) {
	reg := NewRegistry()
	started := make(chan struct{})
	release := make(chan struct{})
	reg.Define("a", func(ctx context.Context) (interface{}, error) {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return runner.NewModule("A"), nil
	})
	reg.Define("b", func(ctx context.Context) (interface{}, error) {
		select {
		case <-started:
		case <-time.After(time.Second):
			return nil, errors.New("a did not start concurrently")
		}
		close(release)
		return runner.NewModule("B"), nil
	})

	require.NoError(t, New(reg).Require(context.Background(), []string{"a", "b"}))
}

func TestRequireUnknownModule(t *testing.T) {
	err := New(NewRegistry()).Require(context.Background(), []string{"missing-test"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModule))
	assert.Contains(t, err.Error(), "missing-test")
}

func TestRequireFactoryError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	reg.Define("bad", func(context.Context) (interface{}, error) { return nil, boom })

	l := New(reg, WithConcurrency(1))
	err := l.Require(context.Background(), []string{"bad"})
	assert.True(t, errors.Is(err, boom))

	_, err = l.Lookup("bad")
	assert.True(t, errors.Is(err, boom))
}

func TestLookupBeforeRequire(t *testing.T) {
	reg := NewRegistry()
	reg.Define("x", Value(runner.NewModule("X")))
	_, err := New(reg).Lookup("x")
	assert.True(t, errors.Is(err, ErrNotLoaded))
}

func TestRequireEmpty(t *testing.T) {
	assert.NoError(t, New(NewRegistry()).Require(context.Background(), nil))
}

func TestNormalize(t *testing.T) {
	a, b := runner.NewModule("A"), runner.NewModule("B")

	t.Run("single module", func(t *testing.T) {
		mods, err := Normalize(a)
		require.NoError(t, err)
		assert.Equal(t, []*runner.Module{a}, mods)
	})

	t.Run("list of modules", func(t *testing.T) {
		mods, err := Normalize([]*runner.Module{a, b})
		require.NoError(t, err)
		assert.Equal(t, []*runner.Module{a, b}, mods)
	})

	t.Run("untyped list", func(t *testing.T) {
		mods, err := Normalize([]interface{}{b, a})
		require.NoError(t, err)
		assert.Equal(t, []*runner.Module{b, a}, mods)
	})

	t.Run("empty list", func(t *testing.T) {
		mods, err := Normalize([]*runner.Module{})
		require.NoError(t, err)
		assert.Empty(t, mods)
	})

	for name, export := range map[string]interface{}{
		"string":          "nope",
		"nil":             nil,
		"nil module":      (*runner.Module)(nil),
		"mixed list":      []interface{}{a, 3},
		"list with nil":   []*runner.Module{a, nil},
		"module by value": runner.Module{},
	} {
		export := export
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(export)
			assert.True(t, errors.Is(err, ErrNotModule), "got %v", err)
		})
	}
}

func TestRegistryIDs(t *testing.T) {
	reg := NewRegistry()
	reg.Define("b", Value(nil))
	reg.Define("a", Value(nil))
	assert.Equal(t, []string{"a", "b"}, reg.IDs())
	assert.True(t, reg.Defined("a"))
	assert.False(t, reg.Defined("c"))
}
