package registry

import (
	"sync"

	"github.com/poolkit/poolkit/service/executor"
)

// Builder creates the executor for a pool on its first access.
type Builder func() (*executor.Pool, error)

type entry struct {
	once sync.Once
	pool *executor.Pool
	err  error
}

// Registry maps pool names to lazily created executors.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

// New creates an empty registry.  Most callers share the process-wide
// Default registry instead.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// GetOrCreate returns the pool registered under name, invoking builder to
// create it on first access.  The builder runs at most once per name; its
// outcome - pool or error - is retained and returned to every later caller,
// whose own builder argument is discarded.
func (r *Registry) GetOrCreate(name string, builder Builder) (*executor.Pool, error) {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		e = &entry{}
		r.entries[name] = e
		r.order = append(r.order, name)
	}
	r.mu.Unlock()

	e.once.Do(func() {
		e.pool, e.err = builder()
	})
	return e.pool, e.err
}

// Lookup returns the pool registered under name, or nil when the name is
// unknown or its creation failed.
func (r *Registry) Lookup(name string) *executor.Pool {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return e.pool
}

// Names returns the registered pool names in first-registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Shutdown stops every created pool.  Entries stay registered so that the
// "create once" contract holds for the process lifetime.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, r.entries[name])
	}
	r.mu.Unlock()

	for _, e := range entries {
		if e.pool != nil {
			e.pool.Shutdown()
		}
	}
}

var defaultRegistry = New()

// Default returns the process-wide registry shared by every caller that does
// not supply its own.
func Default() *Registry {
	return defaultRegistry
}
