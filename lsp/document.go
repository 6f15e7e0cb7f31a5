package lsp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/language"
	"github.com/netsurf-plan9/libcss/properties"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

// Document is one open file and the result of compiling it.
type Document struct {
	Path    string
	Text    []byte
	Results []language.Result
	// LexErr is set when the text could not be tokenised; Results is then
	// empty.
	LexErr error
	Sheet  *stylesheet.Sheet
}

// Analyze compiles text. Files ending in .css are read as rule sets;
// anything else as a bare declaration list, the way a style attribute is.
func Analyze(path string, text []byte, opts ...stylesheet.Option) *Document {
	doc := &Document{
		Path:  path,
		Text:  text,
		Sheet: stylesheet.New(opts...),
	}

	names := intern.New()
	vec, err := token.Lex(text, path, names)
	if err != nil {
		doc.LexErr = err
		return doc
	}

	c := properties.NewLanguage(doc.Sheet, names)
	if filepath.Ext(path) == ".css" {
		doc.Results = language.ParseStylesheet(c, vec)
	} else {
		ctx := 0
		doc.Results = language.ParseDeclarations(c, vec, &ctx)
	}
	return doc
}

func toProtocolPosition(p token.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(col),
	}
}

// Diagnostics returns one error per declaration that failed to compile.
func (d *Document) Diagnostics() []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName

	diags := []protocol.Diagnostic{}
	if d.LexErr != nil {
		start := protocol.Position{}
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: start},
			Severity: &severity,
			Source:   &source,
			Message:  d.LexErr.Error(),
		})
		return diags
	}

	for _, r := range d.Results {
		if r.Err == nil {
			continue
		}
		rng := protocol.Range{
			Start: toProtocolPosition(r.Start),
			End:   toProtocolPosition(r.End),
		}
		msg := r.Err.Error()
		var serr *language.SyntaxError
		if errors.As(r.Err, &serr) {
			at := toProtocolPosition(serr.Pos)
			rng.Start = at
			if rng.End.Line < at.Line || (rng.End.Line == at.Line && rng.End.Character < at.Character) {
				rng.End = at
			}
			msg = serr.Message
			if serr.Property != "" {
				msg = serr.Property + ": " + msg
			}
		}
		diags = append(diags, protocol.Diagnostic{
			Range:    rng,
			Severity: &severity,
			Source:   &source,
			Message:  msg,
		})
	}
	return diags
}

// ResultAt returns the compiled declaration spanning the 1-based line and
// column.
func (d *Document) ResultAt(line, col int) (*language.Result, bool) {
	at := token.Position{Line: line, Column: col}
	for i := range d.Results {
		r := &d.Results[i]
		if r.Style == nil {
			continue
		}
		if !before(at, r.Start) && before(at, r.End) {
			return r, true
		}
	}
	return nil, false
}

func before(a, b token.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// Describe renders a compiled declaration as markdown: one line per
// instruction followed by the raw bytes.
func Describe(r *language.Result) string {
	var sb strings.Builder
	if r.Selector != "" {
		fmt.Fprintf(&sb, "**%s** `%s`\n\n", r.Property, r.Selector)
	} else {
		fmt.Fprintf(&sb, "**%s**\n\n", r.Property)
	}

	decls, err := bytecode.DecodeAll(r.Style.Bytecode)
	if err != nil {
		fmt.Fprintf(&sb, "%v\n", err)
		return sb.String()
	}
	sb.WriteString("```\n")
	off := 0
	for _, decl := range decls {
		size := decl.Size()
		fmt.Fprintf(&sb, "%-40s % x\n", decl.String(), r.Style.Bytecode[off:off+size])
		off += size
	}
	sb.WriteString("```\n")
	fmt.Fprintf(&sb, "%d bytes", len(r.Style.Bytecode))
	return sb.String()
}
