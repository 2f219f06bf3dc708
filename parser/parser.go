package parser

import "sync"

// StateFunc is a transition from one parse state to the next.
type StateFunc func(State) State

// Parser is an immutable parsing computation. The zero value is not usable;
// construct parsers with New or one of the combinators.
type Parser struct {
	name string
	fn   StateFunc
}

// New returns a Parser named name that applies fn. fn is only ever called
// with a state that does not carry an error.
func New(name string, fn StateFunc) Parser {
	return Parser{name: name, fn: fn}
}

// Name returns the name the parser was constructed with.
func (p Parser) Name() string {
	return p.name
}

// Run parses input from the beginning and returns the final state.
func (p Parser) Run(input string) State {
	return p.Parse(NewState(input))
}

// Parse applies p to s. A state that already carries an error is returned
// unchanged.
func (p Parser) Parse(s State) State {
	if s.IsError() {
		return s
	}
	return p.fn(s)
}

// Map returns a parser that replaces a successful result with f(result).
// f is never called on failure.
func (p Parser) Map(f func(any) any) Parser {
	return New(p.name, func(s State) State {
		next := p.Parse(s)
		if next.IsError() {
			return next
		}
		return next.WithResult(f(next.Result))
	})
}

// Chain runs p and, on success, passes its result to f to pick the parser
// that continues from the advanced state.
func (p Parser) Chain(f func(any) Parser) Parser {
	return New(p.name, func(s State) State {
		next := p.Parse(s)
		if next.IsError() {
			return next
		}
		return f(next.Result).Parse(next)
	})
}

// ErrorMap returns a parser that rewrites a failure with f(err, index).
// If f returns nil the original error is kept; a failure is never turned
// into a success.
func (p Parser) ErrorMap(f func(err error, index int) error) Parser {
	return New(p.name, func(s State) State {
		next := p.Parse(s)
		if !next.IsError() {
			return next
		}
		if err := f(next.Err, next.Index); err != nil {
			return next.Fail(err)
		}
		return next
	})
}

// Succeed returns a parser that consumes nothing and yields v.
func Succeed(v any) Parser {
	return New("succeed", func(s State) State {
		return s.WithResult(v)
	})
}

// Fail returns a parser that consumes nothing and fails with err.
func Fail(err error) Parser {
	return New("fail", func(s State) State {
		return s.Fail(err)
	})
}

// Lazy defers construction of a parser until it is first run, which lets
// grammars refer to themselves. f is called at most once.
func Lazy(f func() Parser) Parser {
	get := sync.OnceValue(f)
	return New("lazy", func(s State) State {
		return get().Parse(s)
	})
}
