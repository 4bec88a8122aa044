package fibonacci

import "math/big"

// IterativeEngine computes F(n) with the standard linear recurrence: two
// running accumulators, one exact addition per step, n−1 steps for n ≥ 2.
// This sidesteps both the exponential blowup of the naive recursive
// definition and the precision loss of any floating-point shortcut.
//
// The engine is stateless; every call starts from the seed values and
// returns a freshly allocated result.
type IterativeEngine struct{}

// Name returns the name of the backend.
func (e *IterativeEngine) Name() string {
	return "iterative"
}

// Compute returns F(n) exactly.
//
// The loop maintains the invariant that after processing step i, a holds
// F(i−1) and b holds F(i). Arithmetic is arbitrary-precision throughout;
// nothing here depends on n staying within a machine word's worth of
// Fibonacci growth.
//
// Parameters:
//   - n: The index of the Fibonacci number to compute.
//
// Returns:
//   - *big.Int: The exact value of F(n).
func (e *IterativeEngine) Compute(n uint64) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}
	if n == 1 {
		return big.NewInt(1)
	}
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}
