package token

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/netsurf-plan9/libcss/intern"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Lexer turns CSS text into Tokens. Tokenisation itself is done by the
// tdewolff CSS lexer; Lexer classifies the result, tracks positions and
// interns identifiers.
type Lexer struct {
	lexer   *css.Lexer
	strings *intern.Table
	pos     Position
}

func NewLexer(input []byte, file string, strings *intern.Table) *Lexer {
	return &Lexer{
		lexer:   css.NewLexer(parse.NewInputBytes(input)),
		strings: strings,
		pos: Position{
			File:   file,
			Offset: 0,
			Line:   1,
			Column: 1,
		},
	}
}

func (l *Lexer) Position() Position {
	return l.pos
}

// NextToken returns the next non-comment token. It returns io.EOF once the
// input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	for {
		tt, data := l.lexer.Next()
		if tt == css.ErrorToken {
			if err := l.lexer.Err(); err != nil && err != io.EOF {
				return Token{}, fmt.Errorf("lex %s: %w", l.pos, err)
			}
			return Token{}, io.EOF
		}

		start := l.pos
		l.advance(data)
		if tt == css.CommentToken {
			continue
		}

		tok := Token{
			Kind: classify(tt),
			Data: string(data),
			Span: Span{Start: start, End: l.pos},
		}
		switch tok.Kind {
		case TokenIdent:
			tok.Lower = l.strings.Lower(tok.Data)
		case TokenPercentage:
			tok.Data = strings.TrimSuffix(tok.Data, "%")
		}
		return tok, nil
	}
}

func (l *Lexer) advance(data []byte) {
	l.pos.Offset += len(data)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
}

func classify(tt css.TokenType) TokenKind {
	switch tt {
	case css.IdentToken:
		return TokenIdent
	case css.FunctionToken:
		return TokenFunction
	case css.AtKeywordToken:
		return TokenAtKeyword
	case css.HashToken:
		return TokenHash
	case css.StringToken:
		return TokenString
	case css.URLToken:
		return TokenURL
	case css.DelimToken:
		return TokenDelim
	case css.NumberToken:
		return TokenNumber
	case css.PercentageToken:
		return TokenPercentage
	case css.DimensionToken:
		return TokenDimension
	case css.WhitespaceToken:
		return TokenWhitespace
	case css.ColonToken:
		return TokenColon
	case css.SemicolonToken:
		return TokenSemicolon
	case css.CommaToken:
		return TokenComma
	case css.LeftBraceToken:
		return TokenLBrace
	case css.RightBraceToken:
		return TokenRBrace
	case css.LeftParenthesisToken:
		return TokenLParen
	case css.RightParenthesisToken:
		return TokenRParen
	case css.LeftBracketToken:
		return TokenLBracket
	case css.RightBracketToken:
		return TokenRBracket
	}
	return TokenOther
}

// Lex tokenizes the whole input into a Vector.
func Lex(input []byte, file string, strings *intern.Table) (Vector, error) {
	l := NewLexer(input, file, strings)
	var v Vector
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			return v, nil
		}
		if err != nil {
			return nil, err
		}
		v = append(v, tok)
	}
}
