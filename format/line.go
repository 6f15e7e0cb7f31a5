package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/language"
)

// LineEncoder writes one tab-separated line per declaration followed by an
// indented line per instruction:
//
//	<position>	<property>	<hex>
//		<instruction>
//
// Failed declarations are written as
//
//	<position>	error	<message>
type LineEncoder struct {
	w       io.Writer
	results []language.Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(results []language.Result) error {
	e.results = results
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, r := range e.results {
		pos := "-"
		if r.Start.Line != 0 {
			pos = r.Start.String()
		}

		if r.Err != nil {
			fmt.Fprintf(&sb, "%s\terror\t%v\n", pos, r.Err)
			continue
		}
		if r.Style == nil {
			continue
		}

		name := r.Property
		if r.Selector != "" {
			name = r.Selector + " " + name
		}
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&sb, "%s\t%s\t% x\n", pos, name, r.Style.Bytecode)

		decls, err := bytecode.DecodeAll(r.Style.Bytecode)
		if err != nil {
			return nil, err
		}
		for _, d := range decls {
			fmt.Fprintf(&sb, "\t%s\n", d)
		}
	}
	return []byte(sb.String()), nil
}
