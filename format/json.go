package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/parsec/parser"
)

type JSONEncoder struct {
	w  io.Writer
	st parser.State
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(st parser.State) error {
	e.st = st
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(BuildState(e.st), "", "  ")
}

// JSONState is the wire shape of a parse state.
type JSONState struct {
	Index   int        `json:"index"`
	Result  any        `json:"result"`
	IsError bool       `json:"isError"`
	Error   *JSONError `json:"error"`
}

type JSONError struct {
	Message  string `json:"message"`
	Kind     string `json:"kind,omitempty"`
	Op       string `json:"op,omitempty"`
	Position int    `json:"position"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
}

// BuildState converts st to its wire shape. The result of a failed state is
// dropped.
func BuildState(st parser.State) JSONState {
	data := JSONState{
		Index:   st.Index,
		IsError: st.IsError(),
	}
	if !st.IsError() {
		data.Result = st.Result
		return data
	}

	data.Error = &JSONError{
		Message:  st.Err.Error(),
		Position: st.Index,
	}
	var perr *parser.Error
	if errors.As(st.Err, &perr) {
		data.Error.Kind = perr.Kind.String()
		data.Error.Op = perr.Op
		data.Error.Position = perr.Position
		data.Error.Expected = perr.Expected
		data.Error.Found = perr.Found
	}
	return data
}
