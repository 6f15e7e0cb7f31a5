package token

import (
	"fmt"

	"github.com/netsurf-plan9/libcss/intern"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenIdent
	TokenFunction
	TokenAtKeyword
	TokenHash
	TokenString
	TokenURL
	TokenDelim
	TokenNumber
	TokenPercentage
	TokenDimension
	TokenWhitespace

	// Punctuation
	TokenColon
	TokenSemicolon
	TokenComma
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
)

var tokenKindNames = map[TokenKind]string{
	TokenOther:      "Other",
	TokenIdent:      "Ident",
	TokenFunction:   "Function",
	TokenAtKeyword:  "AtKeyword",
	TokenHash:       "Hash",
	TokenString:     "String",
	TokenURL:        "URL",
	TokenDelim:      "Delim",
	TokenNumber:     "Number",
	TokenPercentage: "Percentage",
	TokenDimension:  "Dimension",
	TokenWhitespace: "Whitespace",
	TokenColon:      ":",
	TokenSemicolon:  ";",
	TokenComma:      ",",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical unit of a CSS value.
//
// Data holds the token text. Percentages omit the trailing "%". For
// identifiers Lower is the interned lower-case text, so keyword tests are a
// handle comparison.
type Token struct {
	Kind  TokenKind
	Data  string
	Lower intern.Handle
	Span  Span
}

// Pos returns the start position of the token.
func (t *Token) Pos() Position {
	return t.Span.Start
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenPercentage:
		return t.Data + "%"
	case TokenWhitespace:
		return " "
	}
	return t.Data
}
