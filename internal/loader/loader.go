package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"tyrtlekarma/internal/logging"
	"tyrtlekarma/internal/runner"
)

var (
	// ErrUnknownModule is returned when an identifier has no definition.
	ErrUnknownModule = errors.New("module is not defined")
	// ErrNotLoaded is returned by Lookup for identifiers that were never required.
	ErrNotLoaded = errors.New("module has not been loaded")
	// ErrNotModule is returned when an export is neither a module nor a list of modules.
	ErrNotModule = errors.New("export is not a test module")
)

type entry struct {
	once  sync.Once
	ready chan struct{}
	value interface{}
	err   error
}

// Loader resolves module identifiers through a Registry and caches every
// export, so each factory runs at most once.
type Loader struct {
	registry *Registry
	limit    int

	mu    sync.Mutex
	cache map[string]*entry
}

// Option configures a Loader
type Option func(*Loader)

// WithConcurrency bounds the number of factories running at the same time.
// Zero or less means no bound.
func WithConcurrency(n int) Option {
	return func(l *Loader) { l.limit = n }
}

// New creates a Loader backed by reg
func New(reg *Registry, opts ...Option) *Loader {
	l := &Loader{
		registry: reg,
		cache:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Require resolves all ids and returns once every one of them is available.
// Factories run concurrently; the first error cancels the others and is returned.
func (l *Loader) Require(ctx context.Context, ids []string) error {
	g, gctx := errgroup.WithContext(ctx)
	if l.limit > 0 {
		g.SetLimit(l.limit)
	}
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := l.resolve(gctx, id)
			return err
		})
	}
	return g.Wait()
}

// Lookup returns the cached export of id. It never runs a factory.
func (l *Loader) Lookup(id string) (interface{}, error) {
	l.mu.Lock()
	e, ok := l.cache[id]
	l.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, id)
	}
	select {
	case <-e.ready:
		return e.value, e.err
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, id)
	}
}

func (l *Loader) resolve(ctx context.Context, id string) (interface{}, error) {
	l.mu.Lock()
	e, ok := l.cache[id]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		l.cache[id] = e
	}
	l.mu.Unlock()

	e.once.Do(func() {
		defer close(e.ready)
		f, ok := l.registry.factory(id)
		if !ok {
			e.err = fmt.Errorf("%w: %s", ErrUnknownModule, id)
			return
		}
		logging.Debugf(ctx, "Loading module %s", id)
		e.value, e.err = f(ctx)
		if e.err != nil {
			e.err = fmt.Errorf("load %s: %w", id, e.err)
		}
	})
	return e.value, e.err
}

// Normalize turns an export into a list of modules. A single module becomes a
// one-element list.
func Normalize(export interface{}) ([]*runner.Module, error) {
	switch v := export.(type) {
	case *runner.Module:
		if v == nil {
			return nil, fmt.Errorf("%w: nil module", ErrNotModule)
		}
		return []*runner.Module{v}, nil
	case []*runner.Module:
		for i, m := range v {
			if m == nil {
				return nil, fmt.Errorf("%w: nil module at index %d", ErrNotModule, i)
			}
		}
		return v, nil
	case []interface{}:
		mods := make([]*runner.Module, 0, len(v))
		for i, item := range v {
			m, ok := item.(*runner.Module)
			if !ok || m == nil {
				return nil, fmt.Errorf("%w: %T at index %d", ErrNotModule, item, i)
			}
			mods = append(mods, m)
		}
		return mods, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotModule, export)
	}
}
