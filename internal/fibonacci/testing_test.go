package fibonacci

import (
	"errors"
	"math/big"
	"testing"
)

func TestMockEngine(t *testing.T) {
	t.Parallel()

	t.Run("FixedResult", func(t *testing.T) {
		m := &MockEngine{Result: big.NewInt(42)}
		if got := m.Compute(7); got.String() != "42" {
			t.Errorf("Compute returned %s, want 42", got)
		}
		if m.Calls != 1 {
			t.Errorf("Calls = %d, want 1", m.Calls)
		}
	})

	t.Run("Fn", func(t *testing.T) {
		m := &MockEngine{Fn: func(n uint64) *big.Int { return big.NewInt(int64(n * 2)) }}
		if got := m.Compute(21); got.String() != "42" {
			t.Errorf("Compute returned %s, want 42", got)
		}
	})
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	factory := NewTestFactory(map[string]Engine{
		"mock": &MockEngine{Result: big.NewInt(1)},
	})

	if _, err := factory.Get("mock"); err != nil {
		t.Errorf("Get(\"mock\") failed: %v", err)
	}

	_, err := factory.Get("missing")
	var unknown *UnknownEngineError
	if !errors.As(err, &unknown) {
		t.Errorf("Get(\"missing\") = %v, want *UnknownEngineError", err)
	}
	if unknown != nil && unknown.Name != "missing" {
		t.Errorf("UnknownEngineError.Name = %q, want \"missing\"", unknown.Name)
	}

	if got := len(factory.List()); got != 1 {
		t.Errorf("List() returned %d names, want 1", got)
	}
}
