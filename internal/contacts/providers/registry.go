// Package providers holds the address-book sources pbsync can read from and
// the registry that builds them by name.
package providers

import (
	"fmt"
	"sort"
	"sync"

	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/services/auth"
	"nathanbeddoewebdev/pbsync/internal/util"
)

// Factory builds a Source from the effective settings and the credential store.
type Factory func(settings config.Settings, store auth.Store) (domain.Source, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a source factory to the registry.
// It panics on empty name, nil factory, or duplicate registration
// (programmer errors detected at startup).
func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("contacts/providers: empty source name")
	}
	if factory == nil {
		panic("contacts/providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("contacts/providers: source %q already registered", name))
	}
	registry[normalizedName] = factory
}

// RegisterAll registers every built-in source.
func RegisterAll() {
	RegisterCardDAV()
	RegisterFile()
}

// Get builds the source registered under settings.Source.
func Get(settings config.Settings, store auth.Store) (domain.Source, error) {
	name := util.NormalizeKey(settings.Source)
	mu.RLock()
	factory, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("contacts/providers: unknown source %q", settings.Source)
	}
	return factory(settings, store)
}

// List returns the registered source names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}
