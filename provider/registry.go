package provider

import (
	"fmt"
	"sync"
)

// Factory creates a new Client from the given configuration.
// Each provider package registers its own factory in init().
type Factory func(cfg Config) (Client, error)

// registry stores registered provider factories.
var (
	registryMu sync.RWMutex
	registry   = make(map[Name]Factory)
)

// Register adds a provider factory to the registry.
// Provider packages call this in their init() function.
// Panics if a factory for the same provider is already registered.
//
// Example:
//
//	func init() {
//	    provider.Register(provider.OpenAI, func(cfg provider.Config) (provider.Client, error) {
//	        return NewClient(cfg)
//	    })
//	}
func Register(name Name, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("provider %q already registered", name))
	}
	registry[name] = factory
}

// New creates a new Client using the named provider.
// Returns ErrUnknownProvider if no factory is registered for the name.
func New(name Name, cfg Config) (Client, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return factory(cfg)
}

// Registered returns the names of all providers with a registered factory,
// in the fixed Known() order for deterministic iteration.
func Registered() []Name {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]Name, 0, len(registry))
	for _, name := range Known() {
		if _, ok := registry[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// IsRegistered checks if a provider has a registered factory.
func IsRegistered(name Name) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[name]
	return ok
}

// Unregister removes a provider from the registry.
// This is primarily useful for testing.
func Unregister(name Name) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(registry, name)
}

// ClearRegistry removes all registered providers.
// This is primarily useful for testing.
func ClearRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = make(map[Name]Factory)
}
