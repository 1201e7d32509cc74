package canvas

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrEmptyPath is returned when a variable is registered under no path.
var ErrEmptyPath = errors.New("canvas: empty variable path")

// Target is a registration sink: the display subsystem that accepts
// (path, object) pairs for rendering elsewhere. Implementations must be safe
// for concurrent use. Registering the same path again replaces the previous
// object.
type Target interface {
	AddVariable(path []string, obj any) error
}

func validPath(path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	for i, part := range path {
		if part == "" {
			return fmt.Errorf("canvas: empty path element at index %d", i)
		}
	}
	return nil
}

func pathKey(path []string) string {
	return strings.Join(path, ".")
}

// LocalTarget is an in-memory Target for tests and headless sessions. It
// keeps the most recent object registered under each path.
type LocalTarget struct {
	mu   sync.RWMutex
	vars map[string]any
}

// NewLocalTarget creates an empty in-memory target.
func NewLocalTarget() *LocalTarget {
	return &LocalTarget{vars: make(map[string]any)}
}

// AddVariable registers obj under path, replacing any previous registration.
func (t *LocalTarget) AddVariable(path []string, obj any) error {
	if err := validPath(path); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vars[pathKey(path)] = obj
	return nil
}

// Get returns the object registered under path.
func (t *LocalTarget) Get(path ...string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	obj, ok := t.vars[pathKey(path)]
	return obj, ok
}

// Len returns the number of registered paths.
func (t *LocalTarget) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.vars)
}

// Paths returns the registered path keys, sorted.
func (t *LocalTarget) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.vars))
	for key := range t.vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
