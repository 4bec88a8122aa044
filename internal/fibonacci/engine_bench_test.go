package fibonacci

import (
	"fmt"
	"testing"
)

// BenchmarkIterativeCompute measures the raw accumulator loop across the
// supported index range.
func BenchmarkIterativeCompute(b *testing.B) {
	engine := &IterativeEngine{}
	for _, n := range []uint64{10, 45, 1000} {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = engine.Compute(n)
			}
		})
	}
}

// BenchmarkInstrumentedCompute measures the decorator overhead on top of
// the core loop.
func BenchmarkInstrumentedCompute(b *testing.B) {
	engine := NewInstrumentedEngine(&IterativeEngine{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = engine.Compute(45)
	}
}
