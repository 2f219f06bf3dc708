// Package format renders parse states for people and tools.
package format

import (
	"encoding"

	"github.com/dhamidi/parsec/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(st parser.State) error
}
