package parser

// SequenceOf runs parsers in order, each from the state the previous one
// left behind, and yields their results as a []any. The first failure is
// returned as is and the remaining parsers are not tried.
func SequenceOf(parsers ...Parser) Parser {
	return New("sequenceOf", func(s State) State {
		results := make([]any, 0, len(parsers))
		next := s
		for _, p := range parsers {
			next = p.Parse(next)
			if next.IsError() {
				return next
			}
			results = append(results, next.Result)
		}
		return next.WithResult(results)
	})
}

// Choice tries each parser from the same starting state and returns the
// first success. When all fail, the error points at the starting index.
func Choice(parsers ...Parser) Parser {
	return New("choice", func(s State) State {
		for _, p := range parsers {
			next := p.Parse(s)
			if !next.IsError() {
				return next
			}
		}
		return s.Fail(&Error{
			Op:       "choice",
			Kind:     NoAlternative,
			Position: s.Index,
			Expected: "one of the alternatives",
			Found:    s.Remaining(),
		})
	})
}

// Many applies p as often as it succeeds and yields the results as a
// (possibly empty) []any. Many never fails.
func Many(p Parser) Parser {
	return New("many", func(s State) State {
		return repeat(p, s)
	})
}

// Many1 is like Many but fails at the starting index if p never matches.
func Many1(p Parser) Parser {
	return New("many1", func(s State) State {
		next := repeat(p, s)
		if len(next.Result.([]any)) == 0 {
			return s.Fail(&Error{
				Op:       "many1",
				Kind:     RepetitionUnmet,
				Position: s.Index,
				Expected: p.Name(),
				Found:    s.Remaining(),
			})
		}
		return next
	})
}

// repeat runs p until it fails or stops consuming input and returns the
// last successful state with the collected results.
func repeat(p Parser, s State) State {
	results := []any{}
	next := s
	for {
		attempt := p.Parse(next)
		if attempt.IsError() {
			break
		}
		results = append(results, attempt.Result)
		consumed := attempt.Index > next.Index
		next = attempt
		if !consumed {
			break
		}
	}
	return next.WithResult(results)
}

// Between returns a function that wraps a content parser with left and
// right delimiters and yields only the content's result.
func Between(left, right Parser) func(content Parser) Parser {
	return func(content Parser) Parser {
		return SequenceOf(left, content, right).Map(func(v any) any {
			return v.([]any)[1]
		})
	}
}

// Full runs p and then requires the input to be exhausted. The result is
// p's result.
func Full(p Parser) Parser {
	return SequenceOf(p, EndOfInput).Map(func(v any) any {
		return v.([]any)[0]
	})
}
