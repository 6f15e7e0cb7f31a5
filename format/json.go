package format

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/language"
)

type JSONEncoder struct {
	w       io.Writer
	results []language.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(results []language.Result) error {
	e.results = results
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	out := make([]jsonResult, 0, len(e.results))
	for _, r := range e.results {
		out = append(out, resultToJSON(r))
	}
	return json.MarshalIndent(out, "", "  ")
}

type jsonResult struct {
	Selector     string            `json:"selector,omitempty"`
	Property     string            `json:"property,omitempty"`
	Span         *jsonSpan         `json:"span,omitempty"`
	Bytecode     string            `json:"bytecode,omitempty"`
	Instructions []jsonInstruction `json:"instructions,omitempty"`
	Error        string            `json:"error,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonInstruction struct {
	Opcode    string   `json:"opcode"`
	OPV       string   `json:"opv"`
	Important bool     `json:"important,omitempty"`
	Inherit   bool     `json:"inherit,omitempty"`
	Keyword   string   `json:"keyword,omitempty"`
	Length    *float64 `json:"length,omitempty"`
	Unit      string   `json:"unit,omitempty"`
}

func resultToJSON(r language.Result) jsonResult {
	jr := jsonResult{
		Selector: r.Selector,
		Property: r.Property,
	}
	if r.Start.Line != 0 || r.End.Line != 0 {
		jr.Span = &jsonSpan{
			Start: jsonPosition{Line: r.Start.Line, Column: r.Start.Column},
			End:   jsonPosition{Line: r.End.Line, Column: r.End.Column},
		}
	}
	if r.Err != nil {
		jr.Error = r.Err.Error()
		return jr
	}
	if r.Style == nil {
		return jr
	}

	jr.Bytecode = hex.EncodeToString(r.Style.Bytecode)
	decls, err := bytecode.DecodeAll(r.Style.Bytecode)
	if err != nil {
		jr.Error = err.Error()
		return jr
	}
	for _, d := range decls {
		ji := jsonInstruction{
			Opcode:    d.Op.String(),
			OPV:       fmt.Sprintf("0x%08x", uint32(d.OPV())),
			Important: d.Important,
		}
		switch o := d.Operand.(type) {
		case bytecode.Inherit:
			ji.Inherit = true
		case bytecode.Keyword:
			if name, ok := bytecode.KeywordName(d.Op, bytecode.Value(o)); ok {
				ji.Keyword = name
			} else {
				ji.Keyword = fmt.Sprintf("0x%04x", uint16(o))
			}
		case bytecode.Dimension:
			length := o.Length.Float64()
			ji.Length = &length
			ji.Unit = o.Unit.String()
		}
		jr.Instructions = append(jr.Instructions, ji)
	}
	return jr
}
