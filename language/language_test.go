package language

import (
	"bytes"
	"errors"
	"testing"

	"github.com/netsurf-plan9/libcss"
	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/properties"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

func setup(t *testing.T, input string, opts ...stylesheet.Option) (*properties.Language, token.Vector) {
	t.Helper()
	strings := intern.New()
	vec, err := token.Lex([]byte(input), "test.css", strings)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", input, err)
	}
	return properties.NewLanguage(stylesheet.New(opts...), strings), vec
}

func TestParseDeclaration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{
			name:  "side",
			input: "margin-top: 10px",
			want:  []byte{0x30, 0x00, 0x00, 0x02, 0x00, 0x28, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "important",
			input: "  Margin-Top :10px ! IMPORTANT ",
			want:  []byte{0x30, 0x04, 0x00, 0x02, 0x00, 0x28, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "inherit important",
			input: "margin-left: inherit!important",
			want:  []byte{0x33, 0x0c, 0x00, 0x00},
		},
		{
			name:  "shorthand",
			input: "margin: auto",
			want: []byte{
				0x30, 0x00, 0x00, 0x00,
				0x31, 0x00, 0x00, 0x00,
				0x32, 0x00, 0x00, 0x00,
				0x33, 0x00, 0x00, 0x00,
			},
		},
		{
			name:  "shorthand important",
			input: "margin: inherit !important;",
			want: []byte{
				0x30, 0x0c, 0x00, 0x00,
				0x31, 0x0c, 0x00, 0x00,
				0x32, 0x0c, 0x00, 0x00,
				0x33, 0x0c, 0x00, 0x00,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, vec := setup(t, tt.input)
			ctx := 0
			st, err := ParseDeclaration(c, vec, &ctx)
			if err != nil {
				t.Fatalf("ParseDeclaration(%q) error: %v", tt.input, err)
			}
			if !bytes.Equal(st.Bytecode, tt.want) {
				t.Errorf("Bytecode = % x, want % x", st.Bytecode, tt.want)
			}
			if tok := vec.Peek(ctx); tok != nil && tok.Kind != token.TokenSemicolon {
				t.Errorf("stopped at %v, want end or ';'", tok)
			}
		})
	}
}

func TestParseDeclarationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		property string
		column   int
	}{
		{"empty", "", "", 1},
		{"no name", ": 10px", "", 1},
		{"unknown property", "padding: 10px", "padding", 1},
		{"missing colon", "margin-top 10px", "margin-top", 12},
		{"bad value", "margin-top: 5deg", "margin-top", 13},
		{"missing value", "margin-top:", "margin-top", 12},
		{"trailing garbage", "margin-top: 10px 20px", "margin-top", 18},
		{"bad important", "margin-top: 10px !urgent", "margin-top", 19},
		{"shorthand inherit mix", "margin: 1px inherit", "margin", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, vec := setup(t, tt.input)
			ctx := 0
			_, err := ParseDeclaration(c, vec, &ctx)
			if !errors.Is(err, libcss.ErrInvalid) {
				t.Fatalf("ParseDeclaration(%q) error = %v, want ErrInvalid", tt.input, err)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("error %T is not a *SyntaxError", err)
			}
			if serr.Property != tt.property {
				t.Errorf("Property = %q, want %q", serr.Property, tt.property)
			}
			if serr.Pos.Column != tt.column {
				t.Errorf("Pos = %s, want column %d", serr.Pos, tt.column)
			}
			if ctx != 0 {
				t.Errorf("ctx = %d after failure, want 0", ctx)
			}
			if c.Sheet.Size() != 0 {
				t.Errorf("Sheet.Size() = %d after failure, want 0", c.Sheet.Size())
			}
		})
	}
}

func TestParseDeclarationOutOfMemory(t *testing.T) {
	c, vec := setup(t, "margin: 1px", stylesheet.WithMemoryLimit(16))
	ctx := 0
	_, err := ParseDeclaration(c, vec, &ctx)
	if !errors.Is(err, libcss.ErrNoMem) {
		t.Fatalf("error = %v, want ErrNoMem", err)
	}
	var serr *SyntaxError
	if errors.As(err, &serr) {
		t.Error("ErrNoMem wrapped in a SyntaxError")
	}
	if ctx != 0 {
		t.Errorf("ctx = %d after failure, want 0", ctx)
	}
}

func TestParseDeclarationKeepsQuirksOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing garbage", "margin-top: 10 garbage"},
		{"bad important", "margin-top: 10 !urgent"},
		{"shorthand trailing garbage", "margin: 1 2 3 4 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, vec := setup(t, tt.input, stylesheet.WithQuirks())
			ctx := 0
			if _, err := ParseDeclaration(c, vec, &ctx); !errors.Is(err, libcss.ErrInvalid) {
				t.Fatalf("ParseDeclaration(%q) error = %v, want ErrInvalid", tt.input, err)
			}
			if c.Sheet.QuirksUsed() {
				t.Error("QuirksUsed() = true after failed declaration")
			}
			if c.Sheet.Size() != 0 {
				t.Errorf("Sheet.Size() = %d after failure, want 0", c.Sheet.Size())
			}
		})
	}

	// A flag set by an earlier declaration survives a later failure.
	c, vec := setup(t, "margin-top: 10; margin-left: 5 garbage", stylesheet.WithQuirks())
	ctx := 0
	results := ParseDeclarations(c, vec, &ctx)
	if len(results) != 2 || results[0].Err != nil || results[1].Err == nil {
		t.Fatalf("ParseDeclarations = %+v, want one success then one failure", results)
	}
	if !c.Sheet.QuirksUsed() {
		t.Error("QuirksUsed() = false, want true from the first declaration")
	}
}

func TestSyntaxError(t *testing.T) {
	err := &SyntaxError{
		Pos:      token.Position{File: "a.css", Line: 2, Column: 5},
		Property: "margin",
		Message:  "invalid value",
		Err:      libcss.ErrInvalid,
	}
	if got, want := err.Error(), "a.css:2:5: margin: invalid value"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &SyntaxError{Pos: token.Position{Line: 1, Column: 1}, Err: libcss.ErrInvalid}
	if got, want := err.Error(), "1:1: libcss: invalid input"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseDeclarations(t *testing.T) {
	c, vec := setup(t, "margin-top: 1px; padding: 2px; ; margin-left: auto !important; margin-right: calc(1px; 2px); margin-bottom: 0 }")
	ctx := 0
	results := ParseDeclarations(c, vec, &ctx)

	want := []struct {
		property string
		ok       bool
	}{
		{"margin-top", true},
		{"padding", false},
		{"margin-left", true},
		{"margin-right", false},
		{"margin-bottom", true},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d: %+v", len(results), len(want), results)
	}
	for i, w := range want {
		r := results[i]
		if r.Property != w.property {
			t.Errorf("results[%d].Property = %q, want %q", i, r.Property, w.property)
		}
		if (r.Err == nil) != w.ok {
			t.Errorf("results[%d].Err = %v, want ok=%v", i, r.Err, w.ok)
		}
		if (r.Style != nil) != w.ok {
			t.Errorf("results[%d].Style = %v, want ok=%v", i, r.Style, w.ok)
		}
	}

	if got := len(c.Sheet.Styles()); got != 3 {
		t.Errorf("len(Styles()) = %d, want 3", got)
	}
	if tok := vec.Peek(ctx); tok == nil || tok.Kind != token.TokenRBrace {
		t.Errorf("stopped at %v, want '}'", tok)
	}

	decls, err := results[2].Style.Declarations()
	if err != nil {
		t.Fatalf("Declarations error: %v", err)
	}
	if len(decls) != 1 || !decls[0].Important || decls[0].Operand != bytecode.Keyword(bytecode.MarginAuto) {
		t.Errorf("margin-left = %v, want auto !important", decls)
	}

	if results[0].Start.Column != 1 || results[0].End.Column != 16 {
		t.Errorf("results[0] span = %s-%s, want columns 1-16", results[0].Start, results[0].End)
	}
}

func TestParseDeclarationsOutOfMemory(t *testing.T) {
	c, vec := setup(t, "margin-top: 1px; margin-left: 2px; margin-right: 3px", stylesheet.WithMemoryLimit(12))
	ctx := 0
	results := ParseDeclarations(c, vec, &ctx)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, libcss.ErrNoMem) {
		t.Errorf("results[1].Err = %v, want ErrNoMem", results[1].Err)
	}
}

func TestParseStylesheet(t *testing.T) {
	c, vec := setup(t, "p { margin: 0 auto }\n} h1.title, h2 {margin-top: 2em; margin-bottom: 5deg}\ndiv")
	results := ParseStylesheet(c, vec)

	want := []struct {
		selector string
		property string
		ok       bool
	}{
		{"p", "margin", true},
		{"", "", false},
		{"h1.title, h2", "margin-top", true},
		{"h1.title, h2", "margin-bottom", false},
		{"", "", false},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d: %+v", len(results), len(want), results)
	}
	for i, w := range want {
		r := results[i]
		if r.Selector != w.selector || r.Property != w.property || (r.Err == nil) != w.ok {
			t.Errorf("results[%d] = {%q %q %v}, want {%q %q ok=%v}", i, r.Selector, r.Property, r.Err, w.selector, w.property, w.ok)
		}
	}
	if results[3].Err != nil {
		var serr *SyntaxError
		if !errors.As(results[3].Err, &serr) || serr.Pos.Line != 2 {
			t.Errorf("results[3].Err = %v, want syntax error on line 2", results[3].Err)
		}
	}
	if got := len(c.Sheet.Styles()); got != 2 {
		t.Errorf("len(Styles()) = %d, want 2", got)
	}
}
