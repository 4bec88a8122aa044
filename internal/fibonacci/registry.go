package fibonacci

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultEngineName is the backend used when no engine is selected
// explicitly.
const DefaultEngineName = "iterative"

// EngineFactory is an interface for creating Engine instances. It allows
// for flexible engine instantiation and registration, enabling dependency
// injection and easier testing.
type EngineFactory interface {
	// Create creates a new Engine instance by name.
	// Returns an error if the engine type is not registered.
	Create(name string) (Engine, error)

	// Get returns an existing Engine instance by name.
	// Returns an error if the engine type is not registered.
	Get(name string) (Engine, error)

	// List returns a sorted list of registered engine names.
	List() []string

	// Register adds a new engine type to the factory.
	Register(name string, creator func() Engine) error
}

// DefaultFactory is the default implementation of EngineFactory. It
// maintains a thread-safe registry of engine creators and caches
// instrumented Engine instances for reuse.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() Engine
	engines  map[string]Engine
}

// NewDefaultFactory creates a new DefaultFactory with the standard engine
// pre-registered.
//
// Pre-registered engines:
//   - "iterative": IterativeEngine (linear recurrence on math/big)
//
// Building with the gmp tag also registers "gmp" through the global
// factory.
//
// Returns:
//   - *DefaultFactory: A new factory with the default engine registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() Engine),
		engines:  make(map[string]Engine),
	}
	_ = f.Register(DefaultEngineName, func() Engine { return &IterativeEngine{} })
	return f
}

// Register adds a new engine type to the factory. The creator function is
// called lazily when the engine is first requested. If an engine with the
// same name already exists, it will be replaced.
//
// Parameters:
//   - name: The unique identifier for the engine type.
//   - creator: A function that creates a new core Engine instance.
func (f *DefaultFactory) Register(name string, creator func() Engine) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	// Drop any cached instance so it is rebuilt with the new creator.
	delete(f.engines, name)
	return nil
}

// Create creates a new instrumented Engine instance by name. Unlike Get(),
// this always creates a fresh instance without caching.
//
// Parameters:
//   - name: The name of the engine type to create.
//
// Returns:
//   - Engine: A new Engine instance wrapped with instrumentation.
//   - error: An error if the engine type is not registered.
func (f *DefaultFactory) Create(name string) (Engine, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	return NewInstrumentedEngine(creator()), nil
}

// Get returns an Engine instance by name. Instances are cached and reused
// for subsequent calls with the same name; engines are stateless, so
// sharing an instance is safe. This is the preferred method for most use
// cases.
//
// Parameters:
//   - name: The name of the engine to retrieve.
//
// Returns:
//   - Engine: The Engine instance.
//   - error: An error if the engine type is not registered.
func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	if engine, exists := f.engines[name]; exists {
		f.mu.RUnlock()
		return engine, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring the write lock.
	if engine, exists := f.engines[name]; exists {
		return engine, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}

	engine := NewInstrumentedEngine(creator())
	f.engines[name] = engine
	return engine, nil
}

// List returns a sorted list of all registered engine names. The list is
// sorted alphabetically for consistent ordering.
//
// Returns:
//   - []string: A sorted slice of engine names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustGet is like Get but panics if the engine is not found. This is useful
// in initialization code where a missing engine is a programming error.
//
// Parameters:
//   - name: The name of the engine to retrieve.
//
// Returns:
//   - Engine: The Engine instance.
//
// Panics:
//   - If the engine type is not registered.
func (f *DefaultFactory) MustGet(name string) Engine {
	engine, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("fibonacci: required engine not found: %s", name))
	}
	return engine
}

// Has checks if an engine with the given name is registered.
//
// Parameters:
//   - name: The name of the engine to check.
//
// Returns:
//   - bool: true if the engine is registered, false otherwise.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

// globalFactory is the default global factory instance.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the global factory instance. This is a convenience
// for applications that don't need multiple factory instances.
//
// Returns:
//   - *DefaultFactory: The global factory instance.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterEngine registers an engine in the global factory. This is a
// convenience function for adding custom backends (the gmp build does this
// from an init function).
//
// Parameters:
//   - name: The unique identifier for the engine type.
//   - creator: A function that creates a new core Engine instance.
func RegisterEngine(name string, creator func() Engine) error {
	return globalFactory.Register(name, creator)
}
