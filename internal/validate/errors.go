package validate

import "errors"

// ErrorKind identifies which validation rule an input violated. Exactly one
// kind is reported per failed validation.
type ErrorKind int

// The three validation failure kinds, in rule-check order.
const (
	// KindNotANumber: the input is empty or does not parse as a whole number.
	KindNotANumber ErrorKind = iota
	// KindNegative: the input parses but is below zero.
	KindNegative
	// KindTooLarge: the input parses but exceeds the configured maximum.
	KindTooLarge
)

// String returns the stable identifier of the kind, used in logs, metrics
// labels, and API payloads.
//
// Returns:
//   - string: The kind identifier (e.g. "not_a_number").
func (k ErrorKind) String() string {
	switch k {
	case KindNotANumber:
		return "not_a_number"
	case KindNegative:
		return "negative"
	case KindTooLarge:
		return "too_large"
	default:
		return "unknown"
	}
}

// Error is a typed validation failure. It carries the violated rule, the
// offending raw input, and the bound in force, so callers can branch on
// identity without parsing message text.
type Error struct {
	// Kind is the violated validation rule.
	Kind ErrorKind
	// Raw is the input exactly as submitted.
	Raw string
	// Max is the inclusive upper bound the validator enforced.
	Max uint64
}

// Error returns the user-facing message for this failure, rendered from the
// message table in messages.go.
//
// Returns:
//   - string: The formatted message.
func (e Error) Error() string {
	return formatMessage(e)
}

// KindOf extracts the validation error kind from an error chain.
//
// Parameters:
//   - err: The error to inspect.
//
// Returns:
//   - ErrorKind: The kind, when err is (or wraps) a validate.Error.
//   - bool: true if a validation error was found.
func KindOf(err error) (ErrorKind, bool) {
	var ve Error
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return 0, false
}
