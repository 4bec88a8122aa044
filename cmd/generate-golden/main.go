// Command generate-golden regenerates the golden file the engine tests check
// against: every Fibonacci value from F(0) through F(45), computed with
// math/big as the oracle.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// maxIndex is the highest index in the golden file, matching the upper bound
// the validator accepts.
const maxIndex = 45

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

func main() {
	outputDir := flag.String("out", "internal/fibonacci/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "fibonacci_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// One entry per accepted index, in order. The tests rely on the file
	// being contiguous from 0 through maxIndex.
	data := make([]GoldenData, 0, maxIndex+1)
	for n := uint64(0); n <= maxIndex; n++ {
		data = append(data, GoldenData{
			N:      n,
			Result: fibBig(n).String(),
		})
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote F(0)..F(%d) to %s\n", maxIndex, filename)
}

// fibBig computes F(n) with the additive two-accumulator recurrence on
// math/big. It serves as the oracle the engines are checked against.
func fibBig(n uint64) *big.Int {
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}
