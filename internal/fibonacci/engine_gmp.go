//go:build gmp

// This file provides a GMP-backed engine, conditionally compiled with the
// "gmp" build tag. The build tag architecture ensures that:
//   - Builds work without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp

package fibonacci

import (
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterEngine("gmp", func() Engine { return &GMPEngine{} })
}

// GMPEngine implements the same linear recurrence as IterativeEngine on top
// of the GMP library. It requires the 'gmp' build tag and libgmp installed
// on the system. At the bounded index range the two backends are
// indistinguishable in output; GMP exists as a drop-in arithmetic backend,
// not a different algorithm.
type GMPEngine struct{}

// Name returns the name of the backend.
func (e *GMPEngine) Name() string {
	return "gmp"
}

// Compute returns F(n) exactly using GMP integers, converting the final
// accumulator back to a math/big value at the end.
//
// Parameters:
//   - n: The index of the Fibonacci number to compute.
//
// Returns:
//   - *big.Int: The exact value of F(n).
func (e *GMPEngine) Compute(n uint64) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}
	if n == 1 {
		return big.NewInt(1)
	}
	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return new(big.Int).SetBytes(b.Bytes())
}
