package cmd

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry is the table adapters register into from package init().
var DefaultRegistry = NewRegistry()

// Registry maps name-path keys to handlers. It is filled once during process
// initialization and does not perform dispatch itself.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	paths    map[string]NamePath
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		paths:    make(map[string]NamePath),
	}
}

// Register adds a handler at path. Registering the same key twice is a
// programming error and panics.
func (r *Registry) Register(path NamePath, c Command) {
	if path.Command == "" {
		panic("cmd: register with empty command name")
	}
	if c == nil {
		panic("cmd: register nil handler for " + path.Key())
	}

	key := path.Key()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.commands[key]; dup {
		panic(fmt.Sprintf("cmd: duplicate handler for %s", key))
	}
	r.commands[key] = c
	r.paths[key] = path
}

// Resolve returns the handler registered at path, or a *ResolutionError.
func (r *Registry) Resolve(path NamePath) (Command, error) {
	key := path.Key()

	r.mu.RLock()
	c, ok := r.commands[key]
	r.mu.RUnlock()

	if !ok {
		return nil, &ResolutionError{Key: key}
	}
	return c, nil
}

// Entry is one registered handler with the path it was registered at.
type Entry struct {
	Path    NamePath
	Command Command
}

// Paths returns all registered paths sorted by key.
func (r *Registry) Paths() []NamePath {
	all := r.All()
	list := make([]NamePath, 0, len(all))
	for _, e := range all {
		list = append(list, e.Path)
	}
	return list
}

// All returns every registered handler sorted by key.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.paths))
	for k := range r.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]Entry, 0, len(keys))
	for _, k := range keys {
		list = append(list, Entry{Path: r.paths[k], Command: r.commands[k]})
	}
	return list
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
