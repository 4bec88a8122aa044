package validate

import "fmt"

// messages is the presentation table for validation failures, keyed by error
// kind. Error identity lives in ErrorKind; the text here is only how a kind
// reads on screen, so replacing or localizing a message never touches the
// validation rules themselves.
var messages = map[ErrorKind]func(e Error) string{
	KindNotANumber: func(e Error) string {
		if e.Raw == "" {
			return "no index given: enter a whole number"
		}
		return fmt.Sprintf("%q is not a whole number", e.Raw)
	},
	KindNegative: func(e Error) string {
		return fmt.Sprintf("index %s is negative; the sequence starts at 0", e.Raw)
	},
	KindTooLarge: func(e Error) string {
		return fmt.Sprintf("index %s is above the supported maximum of %d", e.Raw, e.Max)
	},
}

func formatMessage(e Error) string {
	if format, ok := messages[e.Kind]; ok {
		return format(e)
	}
	return fmt.Sprintf("invalid index %q", e.Raw)
}
