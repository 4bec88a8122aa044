package fibonacci

import (
	"math/big"
	"testing"
)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	// Test Register and Has
	t.Run("RegisterAndHas", func(t *testing.T) {
		factory.Register("test", func() Engine { return &MockEngine{Result: big.NewInt(0)} })
		if !factory.Has("test") {
			t.Error("Factory should have 'test' engine")
		}
		if factory.Has("nonexistent") {
			t.Error("Factory should not have 'nonexistent' engine")
		}
	})

	// Test Create
	t.Run("Create", func(t *testing.T) {
		engine, err := factory.Create("test")
		if err != nil {
			t.Errorf("Create failed: %v", err)
		}
		if engine == nil {
			t.Error("Create returned nil engine")
		}
		_, err = factory.Create("nonexistent")
		if err == nil {
			t.Error("Create should fail for nonexistent engine")
		}
	})

	// Test Get
	t.Run("Get", func(t *testing.T) {
		// First call creates
		engine1, err := factory.Get("test")
		if err != nil {
			t.Errorf("Get failed: %v", err)
		}

		// Second call returns cached
		engine2, err := factory.Get("test")
		if err != nil {
			t.Errorf("Get failed: %v", err)
		}

		if engine1 != engine2 {
			t.Error("Get should return cached instance")
		}

		_, err = factory.Get("nonexistent")
		if err == nil {
			t.Error("Get should fail for nonexistent engine")
		}
	})

	// Test that Register clears the cached instance
	t.Run("RegisterClearsCache", func(t *testing.T) {
		before, _ := factory.Get("test")
		factory.Register("test", func() Engine { return &MockEngine{Result: big.NewInt(1)} })
		after, _ := factory.Get("test")
		if before == after {
			t.Error("Register should drop the cached instance so Get rebuilds it")
		}
	})

	// Test MustGet
	t.Run("MustGet", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				// panic expected for nonexistent
			}
		}()
		_ = factory.MustGet("test")
		// This should panic
		_ = factory.MustGet("nonexistent")
		t.Error("MustGet should have panicked for nonexistent engine")
	})

	// Test List
	t.Run("List", func(t *testing.T) {
		list := factory.List()
		foundDefault, foundTest := false, false
		for _, name := range list {
			switch name {
			case DefaultEngineName:
				foundDefault = true
			case "test":
				foundTest = true
			}
		}
		if !foundDefault || !foundTest {
			t.Errorf("List() = %v, should contain %q and \"test\"", list, DefaultEngineName)
		}
		for i := 1; i < len(list); i++ {
			if list[i-1] > list[i] {
				t.Errorf("List() = %v is not sorted", list)
			}
		}
	})

	// Factory-built engines are instrumented but still exact.
	t.Run("CreatedEnginesCompute", func(t *testing.T) {
		engine := factory.MustGet(DefaultEngineName)
		if got := engine.Compute(10); got.String() != "55" {
			t.Errorf("factory engine Compute(10) = %s, want 55", got)
		}
	})
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	// Ensure GlobalFactory returns a non-nil factory
	f := GlobalFactory()
	if f == nil {
		t.Fatal("GlobalFactory returned nil")
	}
	if !f.Has(DefaultEngineName) {
		t.Errorf("Global factory should have the %q engine", DefaultEngineName)
	}

	// Ensure RegisterEngine works
	RegisterEngine("global_test", func() Engine { return &MockEngine{Result: big.NewInt(0)} })
	if !f.Has("global_test") {
		t.Error("Global factory should have 'global_test' engine")
	}
}
