package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/parsec/parser"
)

// TextEncoder writes a one-line summary followed, on failure, by the input
// with a caret under the error position.
type TextEncoder struct {
	w  io.Writer
	st parser.State
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(st parser.State) error {
	e.st = st
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var b strings.Builder
	data := BuildState(e.st)

	if !data.IsError {
		result, err := json.Marshal(data.Result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintf(&b, "ok index=%d result=%s\n", data.Index, result)
		return []byte(b.String()), nil
	}

	fmt.Fprintf(&b, "error index=%d: %s\n", data.Error.Position, data.Error.Message)
	line, col := excerpt(e.st.Input(), data.Error.Position)
	fmt.Fprintf(&b, "  %s\n", line)
	fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", col))
	return []byte(b.String()), nil
}

// excerpt returns the line of input containing offset and the column of
// offset within it, counted in runes.
func excerpt(input string, offset int) (string, int) {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[offset:], '\n')
	if end < 0 {
		end = len(input)
	} else {
		end += offset
	}
	return input[start:end], len([]rune(input[start:offset]))
}
