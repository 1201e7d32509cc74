// Package metrics counts client-side usage events.
package metrics

import "sync"

// Registry is a concurrency-safe usage event counter. The zero value is not
// usable; create one with NewRegistry.
type Registry struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[string]int64)}
}

// Track records one occurrence of event.
func (r *Registry) Track(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[event]++
}

// Count returns how many times event has been tracked.
func (r *Registry) Count(event string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[event]
}

// Snapshot copies the current counters.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.counts))
	for event, n := range r.counts {
		out[event] = n
	}
	return out
}
