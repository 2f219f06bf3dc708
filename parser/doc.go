// Package parser provides a small parser-combinator algebra for building
// recursive-descent parsers over strings.
//
// # Overview
//
// A [Parser] wraps a transition from one [State] to the next. Grammars are
// assembled declaratively from primitives and combinators and then executed
// once per input with [Parser.Run]:
//
//	dice := parser.SequenceOf(parser.Digits, parser.Str("d"), parser.Digits).
//		Map(func(v any) any {
//			parts := v.([]any)
//			return [2]string{parts[0].(string), parts[2].(string)}
//		})
//
//	st := dice.Run("2d6")
//	if st.IsError() {
//		fmt.Println(st.Err)
//	}
//
// # Primitives
//
//   - [Str]: exact, case-sensitive literal
//   - [Letters]: one or more ASCII letters
//   - [Digits]: one or more decimal digits
//   - [Regexp]: one or more characters matched by a caller-supplied pattern
//   - [EndOfInput]: succeeds only when nothing remains
//   - [Succeed], [Fail]: consume nothing, always succeed or always fail
//
// # Combinators
//
//   - [Parser.Map], [Parser.Chain], [Parser.ErrorMap]
//   - [SequenceOf], [Choice], [Many], [Many1], [Between], [Full], [Lazy]
//
// # Errors
//
// Failures are data, not panics. A failed parse yields a [State] whose Err is
// an [*Error] carrying the failing operation, the [ErrorKind], the cursor
// position and what was expected versus found. Once a state carries an error,
// every parser passes it through untouched, so the first failure surfaces at
// the top of [Parser.Run] exactly once.
//
// # Concurrency
//
// Parsers hold no mutable data. The same [Parser] value may be run from any
// number of goroutines at once.
//
// # Repetition
//
// [Many] and [Many1] expect their sub-parser to consume input on every
// successful iteration. An iteration that succeeds without advancing the
// cursor ends the loop after its result is recorded once.
package parser
