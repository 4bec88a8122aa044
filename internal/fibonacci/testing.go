package fibonacci

import "math/big"

// MockEngine is a mock implementation of the Engine interface. It is
// exported so that other packages (session, server, cli) can use it in
// their tests without pulling in a mocking framework.
type MockEngine struct {
	// Result is returned by Compute when Fn is nil.
	Result *big.Int
	// Fn, when set, computes the result instead of Result.
	Fn func(n uint64) *big.Int
	// Calls counts Compute invocations.
	Calls int
}

// Name returns the engine name.
func (m *MockEngine) Name() string {
	return "mock"
}

// Compute returns the pre-configured Result, or calls Fn if provided.
func (m *MockEngine) Compute(n uint64) *big.Int {
	m.Calls++
	if m.Fn != nil {
		return m.Fn(n)
	}
	return m.Result
}

// TestFactory is an EngineFactory implementation designed for testing. It
// allows tests in other packages to create factories with mock engines.
type TestFactory struct {
	engines map[string]Engine
}

// NewTestFactory creates a factory pre-populated with the given engines.
//
// Parameters:
//   - engines: A map of engine names to Engine instances.
//
// Returns:
//   - *TestFactory: A factory usable in place of DefaultFactory in tests.
func NewTestFactory(engines map[string]Engine) *TestFactory {
	if engines == nil {
		engines = make(map[string]Engine)
	}
	return &TestFactory{engines: engines}
}

// Create returns the engine by name.
func (f *TestFactory) Create(name string) (Engine, error) {
	return f.Get(name)
}

// Get returns the engine by name.
func (f *TestFactory) Get(name string) (Engine, error) {
	engine, ok := f.engines[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	return engine, nil
}

// List returns all registered engine names.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.engines))
	for name := range f.engines {
		names = append(names, name)
	}
	return names
}

// Register is a no-op for TestFactory as engines are provided at
// construction.
func (f *TestFactory) Register(name string, creator func() Engine) error {
	return nil
}

// UnknownEngineError is returned when an engine name is not found.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return "unknown engine: " + e.Name
}
