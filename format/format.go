// Package format renders compiled declarations for the command line.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/netsurf-plan9/libcss/language"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(results []language.Result) error
}

// New returns the encoder registered under name: "text" or "json".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}
