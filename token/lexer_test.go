package token

import (
	"testing"

	"github.com/netsurf-plan9/libcss/intern"
)

func TestLexKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		data  string
	}{
		{"auto", TokenIdent, "auto"},
		{"INHERIT", TokenIdent, "INHERIT"},
		{"10px", TokenDimension, "10px"},
		{"-1.5em", TokenDimension, "-1.5em"},
		{"5deg", TokenDimension, "5deg"},
		{"50%", TokenPercentage, "50"},
		{"0", TokenNumber, "0"},
		{"12.25", TokenNumber, "12.25"},
		{":", TokenColon, ":"},
		{";", TokenSemicolon, ";"},
		{",", TokenComma, ","},
		{"{", TokenLBrace, "{"},
		{"}", TokenRBrace, "}"},
		{"!", TokenDelim, "!"},
		{"#fff", TokenHash, "#fff"},
		{"   ", TokenWhitespace, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Lex([]byte(tt.input), "test.css", intern.New())
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}
			if len(v) != 1 {
				t.Fatalf("Lex(%q) = %d tokens, want 1", tt.input, len(v))
			}
			if v[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", v[0].Kind, tt.kind)
			}
			if v[0].Data != tt.data {
				t.Errorf("Data = %q, want %q", v[0].Data, tt.data)
			}
		})
	}
}

func TestLexInternsLowerCase(t *testing.T) {
	tab := intern.New()
	v, err := Lex([]byte("Auto AUTO auto"), "", tab)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}

	want := tab.Intern("auto")
	var n int
	for _, tok := range v {
		if tok.Kind != TokenIdent {
			continue
		}
		n++
		if tok.Lower != want {
			t.Errorf("%q Lower = %d, want %d", tok.Data, tok.Lower, want)
		}
	}
	if n != 3 {
		t.Errorf("found %d identifiers, want 3", n)
	}
}

func TestLexDropsComments(t *testing.T) {
	v, err := Lex([]byte("/* gap */10px/**/"), "", intern.New())
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if len(v) != 1 || v[0].Kind != TokenDimension {
		t.Fatalf("Lex = %v, want a single dimension", v)
	}
	if got := v[0].Pos().Column; got != 10 {
		t.Errorf("Column = %d, want 10", got)
	}
}

func TestLexPositions(t *testing.T) {
	v, err := Lex([]byte("margin-top: 10px;\nmargin-left: auto"), "a.css", intern.New())
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}

	tests := []struct {
		index  int
		data   string
		line   int
		column int
		offset int
	}{
		{0, "margin-top", 1, 1, 0},
		{1, ":", 1, 11, 10},
		{3, "10px", 1, 13, 12},
		{4, ";", 1, 17, 16},
		{6, "margin-left", 2, 1, 18},
		{9, "auto", 2, 14, 31},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			tok := v[tt.index]
			if tok.Data != tt.data {
				t.Fatalf("token %d = %q, want %q", tt.index, tok.Data, tt.data)
			}
			pos := tok.Pos()
			if pos.Line != tt.line || pos.Column != tt.column || pos.Offset != tt.offset {
				t.Errorf("Pos = %d:%d@%d, want %d:%d@%d", pos.Line, pos.Column, pos.Offset, tt.line, tt.column, tt.offset)
			}
			if pos.File != "a.css" {
				t.Errorf("File = %q, want a.css", pos.File)
			}
		})
	}

	if got := v[9].Span.End.Column; got != 18 {
		t.Errorf("auto End.Column = %d, want 18", got)
	}
}

func TestLexEmpty(t *testing.T) {
	v, err := Lex(nil, "", intern.New())
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("Lex(nil) = %d tokens, want 0", len(v))
	}
}
