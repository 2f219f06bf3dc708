package grammar

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dhamidi/parsec/parser"
	"github.com/google/go-cmp/cmp"
)

func TestGrammars(t *testing.T) {
	tests := []struct {
		grammar string
		input   string
		want    Node
		index   int
	}{
		{"string", "hello", Node{Type: "string", Value: "hello"}, 5},
		{"number", "42", Node{Type: "number", Value: 42}, 2},
		{"diceroll", "2d6", Node{Type: "diceroll", Value: DiceRoll{Count: 2, Sides: 6}}, 3},
		{"value", "12d20", Node{Type: "diceroll", Value: DiceRoll{Count: 12, Sides: 20}}, 5},
		{"value", "12", Node{Type: "number", Value: 12}, 2},
		{"value", "abc", Node{Type: "string", Value: "abc"}, 3},
		{"bracketed", "(hello)", Node{Type: "string", Value: "hello"}, 7},
		{"bracketed", "(3d8)", Node{Type: "diceroll", Value: DiceRoll{Count: 3, Sides: 8}}, 5},
		{"sized", "3:abc", Node{Type: "string", Value: "abc"}, 5},
		{"sized", "3:abcdef", Node{Type: "string", Value: "abc"}, 5},
		{"sized", "0:", Node{Type: "string", Value: ""}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.grammar+"/"+tt.input, func(t *testing.T) {
			p, ok := Lookup(tt.grammar)
			if !ok {
				t.Fatalf("grammar %q not registered", tt.grammar)
			}
			st := p.Run(tt.input)
			if st.IsError() {
				t.Fatalf("unexpected error: %v", st.Err)
			}
			if diff := cmp.Diff(tt.want, st.Result); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
			if st.Index != tt.index {
				t.Errorf("expected index %d, got %d", tt.index, st.Index)
			}
		})
	}
}

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		grammar  string
		input    string
		position int
		kind     parser.ErrorKind
	}{
		{"string", "123", 0, parser.ClassMismatch},
		{"diceroll", "2x6", 1, parser.LiteralMismatch},
		{"diceroll", "2d", 2, parser.UnexpectedEnd},
		{"value", "!", 0, parser.NoAlternative},
		{"bracketed", "(hello", 6, parser.UnexpectedEnd},
		{"number", "99999999999999999999999", 0, parser.Custom},
		{"sized", "4:abc", 2, parser.Custom},
		{"sized", "3:ab1", 2, parser.Custom},
	}

	for _, tt := range tests {
		t.Run(tt.grammar+"/"+tt.input, func(t *testing.T) {
			p, _ := Lookup(tt.grammar)
			st := p.Run(tt.input)
			if !st.IsError() {
				t.Fatalf("expected error, got %v", st.Result)
			}
			var perr *parser.Error
			if !errors.As(st.Err, &perr) {
				t.Fatalf("expected *parser.Error, got %T", st.Err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v (%v)", tt.kind, perr.Kind, perr)
			}
			if perr.Position != tt.position {
				t.Errorf("expected position %d, got %d", tt.position, perr.Position)
			}
			if st.Index != perr.Position {
				t.Errorf("expected state index %d to match error position %d", st.Index, perr.Position)
			}
		})
	}
}

func TestNodeJSON(t *testing.T) {
	st := Dice.Run("2d6")
	data, err := json.Marshal(st.Result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	expected := `{"type":"diceroll","value":[2,6]}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestNames(t *testing.T) {
	want := []string{"bracketed", "diceroll", "number", "sized", "string", "value"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSizedTakesExactlyN(t *testing.T) {
	st := parser.Full(Sized).Run("3:abcdef")
	if !st.IsError() {
		t.Fatalf("expected trailing letters to be rejected, got %v", st.Result)
	}
	if st.Index != 5 {
		t.Errorf("expected index 5, got %d", st.Index)
	}
}
