package loader

import (
	"context"
	"sort"
	"sync"
)

// Factory produces the export of a module identifier. The export is either a
// *runner.Module or a list of them.
type Factory func(ctx context.Context) (interface{}, error)

// Value returns a Factory that always exports v
func Value(v interface{}) Factory {
	return func(context.Context) (interface{}, error) { return v, nil }
}

// Registry maps module identifiers to factories. It plays the part of the
// host's module definitions: test files define themselves under their
// identifier and the Loader resolves them on request.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Define registers a factory for id, replacing any previous definition
func (r *Registry) Define(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

// Defined reports whether id has a definition
func (r *Registry) Defined(id string) bool {
	_, ok := r.factory(id)
	return ok
}

// IDs returns all defined identifiers in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) factory(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}
