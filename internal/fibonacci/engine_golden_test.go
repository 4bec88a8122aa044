package fibonacci

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"
)

// GoldenData represents the structure of our golden file entries.
type GoldenData struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

func TestEnginesAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "fibonacci_golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run ./cmd/generate-golden'?", err)
	}
	defer file.Close()

	var cases []GoldenData
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}
	if len(cases) != 46 {
		t.Fatalf("Golden file holds %d cases, want 46 (indices 0 through 45)", len(cases))
	}

	engines := map[string]Engine{
		"Iterative":    &IterativeEngine{},
		"Instrumented": NewInstrumentedEngine(&IterativeEngine{}),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				tc := tc
				t.Run(fmt.Sprintf("N=%d", tc.N), func(t *testing.T) {
					t.Parallel()

					expected := new(big.Int)
					expected.SetString(tc.Result, 10)

					got := engine.Compute(tc.N)
					if got.Cmp(expected) != 0 {
						t.Errorf("Mismatch for N=%d.\nExpected: %s\nGot:      %s", tc.N, expected.String(), got.String())
					}
				})
			}
		})
	}
}
