// Package grammar holds small example grammars built on the parser package
// and a registry the command line tools use to look them up by name.
package grammar

import (
	"sort"
	"strconv"

	"github.com/dhamidi/parsec/parser"
)

// Node is a typed parse result.
type Node struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// DiceRoll is the value of a "diceroll" node: Count dice with Sides faces.
type DiceRoll struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// MarshalJSON renders a roll as [count, sides].
func (d DiceRoll) MarshalJSON() ([]byte, error) {
	return []byte("[" + strconv.Itoa(d.Count) + "," + strconv.Itoa(d.Sides) + "]"), nil
}

// String matches letters and yields a "string" node.
var String = parser.Letters.Map(func(v any) any {
	return Node{Type: "string", Value: v.(string)}
})

// Number matches digits and yields a "number" node. Values that do not fit
// an int are reported as parse errors.
var Number = integer.Map(func(v any) any {
	return Node{Type: "number", Value: v.(int)}
})

// Dice matches NdM and yields a "diceroll" node.
var Dice = parser.SequenceOf(integer, parser.Str("d"), integer).Map(func(v any) any {
	parts := v.([]any)
	return Node{Type: "diceroll", Value: DiceRoll{Count: parts[0].(int), Sides: parts[2].(int)}}
})

// Value matches a dice roll, a number or a string, in that order.
var Value = parser.Choice(Dice, Number, String)

// Bracketed matches a Value wrapped in parentheses.
var Bracketed = parser.Between(parser.Str("("), parser.Str(")"))(Value)

// Sized matches N:<N letters>, for example 3:abc. The letter count is only
// known once N has been parsed.
var Sized = parser.SequenceOf(integer, parser.Str(":")).Chain(func(v any) parser.Parser {
	return exactLetters(v.([]any)[0].(int))
})

// integer matches digits and converts them to an int.
var integer = parser.New("integer", func(s parser.State) parser.State {
	next := parser.Digits.Parse(s)
	if next.IsError() {
		return next
	}
	n, err := strconv.Atoi(next.Result.(string))
	if err != nil {
		return s.Fail(parser.Errorf(s.Index, "integer: %s at index %d is out of range", next.Result, s.Index))
	}
	return next.WithResult(n)
})

func exactLetters(n int) parser.Parser {
	return parser.New("sized", func(s parser.State) parser.State {
		rest := s.Remaining()
		if len(rest) < n {
			return s.Fail(parser.Errorf(s.Index, "sized: expected %d letters at index %d, got %d characters", n, s.Index, len(rest)))
		}
		for i := 0; i < n; i++ {
			if !isLetter(rest[i]) {
				return s.Fail(parser.Errorf(s.Index, "sized: expected %d letters at index %d, got %q", n, s.Index, rest[:n]))
			}
		}
		return s.Advance(n, Node{Type: "string", Value: rest[:n]})
	})
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

var registry = map[string]parser.Parser{
	"string":    String,
	"number":    Number,
	"diceroll":  Dice,
	"value":     Value,
	"bracketed": Bracketed,
	"sized":     Sized,
}

// Lookup returns the grammar registered under name.
func Lookup(name string) (parser.Parser, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the registered grammar names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
