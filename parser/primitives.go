package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Str matches literal exactly at the cursor.
func Str(literal string) Parser {
	return New("str "+strconv.Quote(literal), func(s State) State {
		rest := s.Remaining()
		if len(rest) == 0 {
			return s.Fail(&Error{
				Op:       "str",
				Kind:     UnexpectedEnd,
				Position: s.Index,
				Expected: strconv.Quote(literal),
			})
		}
		if !strings.HasPrefix(rest, literal) {
			return s.Fail(&Error{
				Op:       "str",
				Kind:     LiteralMismatch,
				Position: s.Index,
				Expected: strconv.Quote(literal),
				Found:    rest,
			})
		}
		return s.Advance(len(literal), literal)
	})
}

var (
	lettersPattern = regexp.MustCompile(`^[A-Za-z]+`)
	digitsPattern  = regexp.MustCompile(`^[0-9]+`)
)

// Letters matches the longest run of one or more ASCII letters.
var Letters = Regexp("letters", lettersPattern)

// Digits matches the longest run of one or more decimal digits.
var Digits = Regexp("digits", digitsPattern)

// Regexp returns a character-class primitive named name. re is applied to
// the remaining input and must match a non-empty prefix; the matched text
// becomes the result. Patterns should be anchored with ^ so the engine does
// not scan past the cursor.
func Regexp(name string, re *regexp.Regexp) Parser {
	return New(name, func(s State) State {
		rest := s.Remaining()
		if len(rest) == 0 {
			return s.Fail(&Error{
				Op:       name,
				Kind:     UnexpectedEnd,
				Position: s.Index,
				Expected: name,
			})
		}
		loc := re.FindStringIndex(rest)
		if loc == nil || loc[0] != 0 || loc[1] == 0 {
			return s.Fail(&Error{
				Op:       name,
				Kind:     ClassMismatch,
				Position: s.Index,
				Expected: name,
				Found:    rest,
			})
		}
		return s.Advance(loc[1], rest[:loc[1]])
	})
}

// EndOfInput succeeds with a nil result only when the input is exhausted.
var EndOfInput = New("end", func(s State) State {
	if !s.AtEnd() {
		return s.Fail(&Error{
			Op:       "end",
			Kind:     ExpectedEnd,
			Position: s.Index,
			Expected: "end of input",
			Found:    s.Remaining(),
		})
	}
	return s.WithResult(nil)
})
