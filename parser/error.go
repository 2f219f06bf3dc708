package parser

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// UnexpectedEnd means at least one more character was required.
	UnexpectedEnd ErrorKind = iota
	// LiteralMismatch means the input diverged from an expected literal.
	LiteralMismatch
	// ClassMismatch means no character of the required class was found.
	ClassMismatch
	// NoAlternative means every branch of a choice failed.
	NoAlternative
	// RepetitionUnmet means a repetition that needs one match found none.
	RepetitionUnmet
	// ExpectedEnd means input remained where none was allowed.
	ExpectedEnd
	// Custom is used by grammars that report their own failures.
	Custom
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "unexpected end of input"
	case LiteralMismatch:
		return "literal mismatch"
	case ClassMismatch:
		return "class mismatch"
	case NoAlternative:
		return "no alternative"
	case RepetitionUnmet:
		return "repetition unmet"
	case ExpectedEnd:
		return "expected end of input"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// maxFound bounds how much of the remaining input a rendered error quotes.
const maxFound = 32

// Error is a parse failure. It is rendered to text only when Error is
// called, so callers can inspect the structured fields directly.
type Error struct {
	// Op names the parser that failed, for example "str" or "choice".
	Op       string
	Kind     ErrorKind
	Position int
	Expected string
	// Found is the unconsumed input at Position. Empty at end of input.
	Found string
	// Message overrides the rendered text when set.
	Message string
}

// Errorf returns a Custom error at position with a formatted message.
func Errorf(position int, format string, args ...any) *Error {
	return &Error{
		Op:       "custom",
		Kind:     Custom,
		Position: position,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}

	switch e.Kind {
	case NoAlternative:
		fmt.Fprintf(&b, "unable to match any parser at index %d", e.Position)
		return b.String()
	case RepetitionUnmet:
		fmt.Fprintf(&b, "unable to match any input using %s at index %d", e.Expected, e.Position)
		return b.String()
	case Custom:
		if e.Expected == "" {
			fmt.Fprintf(&b, "failed at index %d", e.Position)
			return b.String()
		}
	}

	fmt.Fprintf(&b, "expected %s at index %d", e.Expected, e.Position)
	if e.Kind == UnexpectedEnd || e.Found == "" {
		b.WriteString(", got unexpected end of input")
	} else {
		fmt.Fprintf(&b, ", got %q", truncate(e.Found))
	}
	return b.String()
}

func truncate(s string) string {
	for i := range s {
		if i >= maxFound {
			return s[:i] + "..."
		}
	}
	return s
}
