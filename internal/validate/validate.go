// Package validate implements the input validation policy for requested
// Fibonacci indices. A raw text value submitted by the user is parsed and
// bounds-checked here before any computation runs; the rest of the system
// only ever sees an Index that already passed this gate.
//
// Validation is pure: no side effects, no retained state, and exactly one
// error kind reported per call. The rules are checked in a fixed order
// (not-a-number, negative, too-large) and the first violated rule wins.
package validate

import (
	"errors"
	"strconv"
)

// Index is a validated, non-negative Fibonacci index. Values of this type
// are only produced by a Validator and are immutable by construction.
type Index uint64

// String returns the decimal representation of the index, suitable for
// re-submitting through the validation pipeline (replay pre-fill).
//
// Returns:
//   - string: The index formatted in base 10.
func (i Index) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// Validator parses and bounds-checks raw textual indices against a
// configured upper bound. The zero value is not usable; construct one with
// NewValidator so the bound is always explicit.
type Validator struct {
	maxN uint64
}

// NewValidator creates a Validator that accepts indices in [0, maxN].
//
// Parameters:
//   - maxN: The inclusive upper bound for valid indices.
//
// Returns:
//   - *Validator: A ready-to-use validator.
func NewValidator(maxN uint64) *Validator {
	return &Validator{maxN: maxN}
}

// MaxN returns the inclusive upper bound this validator enforces.
//
// Returns:
//   - uint64: The configured maximum index.
func (v *Validator) MaxN() uint64 {
	return v.maxN
}

// Validate parses raw as an integer and checks it against the validation
// rules. Rules are applied in order and the first violation is returned:
//
//  1. raw must parse as a whole number (empty or non-numeric input fails
//     with KindNotANumber),
//  2. the parsed value must not be negative (KindNegative),
//  3. the parsed value must not exceed the configured bound (KindTooLarge).
//
// Validate is a pure function: it never mutates the validator and reports
// exactly one error kind per call.
//
// Parameters:
//   - raw: The raw text to validate, exactly as the user submitted it.
//
// Returns:
//   - Index: The validated index (zero when an error is returned).
//   - error: A validate.Error carrying the violated rule, or nil.
func (v *Validator) Validate(raw string) (Index, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Out-of-range input is still numeric; classify it by sign so the
		// rule order (number, sign, bound) is preserved even past int64.
		if errors.Is(err, strconv.ErrRange) {
			if value < 0 {
				return 0, Error{Kind: KindNegative, Raw: raw, Max: v.maxN}
			}
			return 0, Error{Kind: KindTooLarge, Raw: raw, Max: v.maxN}
		}
		return 0, Error{Kind: KindNotANumber, Raw: raw, Max: v.maxN}
	}
	if value < 0 {
		return 0, Error{Kind: KindNegative, Raw: raw, Max: v.maxN}
	}
	if uint64(value) > v.maxN {
		return 0, Error{Kind: KindTooLarge, Raw: raw, Max: v.maxN}
	}
	return Index(value), nil
}
