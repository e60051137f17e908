// Package registry deduplicates concurrent work by key with explicit
// reference counting: the first holder of a key performs the work, the
// last one out tears it down. It replaces "first instance wins" static
// flags with an object that can be constructed per test.
package registry

import "sync"

// Registry tracks reference counts per key.
type Registry struct {
	counts map[string]int
	mu     sync.Mutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		counts: make(map[string]int),
	}
}

// Acquire increments the reference count for key and reports whether the
// caller is the first holder.
func (r *Registry) Acquire(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	return r.counts[key] == 1
}

// Release decrements the reference count for key and reports whether the
// caller was the last holder. Releasing an unheld key is a no-op.
func (r *Registry) Release(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	count, exists := r.counts[key]
	if !exists {
		return false
	}
	if count <= 1 {
		delete(r.counts, key)
		return true
	}
	r.counts[key] = count - 1
	return false
}

// Count returns the current reference count for key.
func (r *Registry) Count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}
