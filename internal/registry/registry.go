// Package registry provides a global registry of handball field layouts.
// Layouts register themselves in init() functions, so the CLI and the
// SSH server can offer them by id without hardcoding the list.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/handball/internal/config"
)

// FieldInfo contains metadata about a registered layout.
type FieldInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh copy of a layout's configuration.
type Factory func() config.HandballConfig

type entry struct {
	title   string
	factory Factory
}

var (
	fields = make(map[string]entry)
	mu     sync.RWMutex
)

// Register adds a layout to the registry.
// Panics if a layout with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := fields[id]; exists {
		panic(fmt.Sprintf("registry: field %q already registered", id))
	}
	fields[id] = entry{title: title, factory: f}
}

// List returns all registered layouts, sorted by ID.
func List() []FieldInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FieldInfo, 0, len(fields))
	for id, e := range fields {
		result = append(result, FieldInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds the configuration of a layout by its ID.
func Create(id string) (config.HandballConfig, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := fields[id]
	if !ok {
		return config.HandballConfig{}, fmt.Errorf("registry: unknown field %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a layout with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := fields[id]
	return ok
}
