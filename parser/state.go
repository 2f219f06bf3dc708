package parser

import "fmt"

// State is the value threaded through every parse step.
//
// States are never modified in place. Every step derives a new State from
// its input, so an earlier State remains a valid snapshot to resume from.
type State struct {
	input string

	// Index is the cursor into the input. The unconsumed remainder is
	// input[Index:].
	Index int

	// Result is the value produced by the last successful step. It is
	// meaningless when Err is set.
	Result any

	// Err is non-nil once the parse has failed.
	Err error
}

// NewState returns the initial state for input.
func NewState(input string) State {
	return State{input: input}
}

// Input returns the full text being parsed.
func (s State) Input() string {
	return s.input
}

// Remaining returns the unconsumed part of the input.
func (s State) Remaining() string {
	return s.input[s.Index:]
}

// AtEnd reports whether the whole input has been consumed.
func (s State) AtEnd() bool {
	return s.Index >= len(s.input)
}

// IsError reports whether the state carries a failure.
func (s State) IsError() bool {
	return s.Err != nil
}

// Advance returns a successful state n bytes further along with the given
// result. It panics if n is negative or runs past the end of the input.
func (s State) Advance(n int, result any) State {
	if n < 0 || s.Index+n > len(s.input) {
		panic(fmt.Sprintf("parser: cannot advance %d bytes from index %d of %d", n, s.Index, len(s.input)))
	}
	s.Index += n
	s.Result = result
	return s
}

// WithResult returns a copy of s with its result replaced.
func (s State) WithResult(result any) State {
	s.Result = result
	return s
}

// Fail returns a copy of s carrying err. The cursor is left where it is.
func (s State) Fail(err error) State {
	s.Err = err
	return s
}
