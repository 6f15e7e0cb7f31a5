// Package language compiles declaration blocks. It finds the property
// named by each declaration, hands the value to that property's parser
// and applies !important to the result.
package language

import (
	"errors"
	"strings"

	"github.com/netsurf-plan9/libcss"
	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/properties"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

// Result is the outcome of compiling one declaration.
type Result struct {
	// Selector is the prelude of the enclosing rule, if any.
	Selector string
	Property string
	Start    token.Position
	End      token.Position
	Style    *stylesheet.Style
	Err      error
}

// positionAt returns the start of the token at ctx, or the end of the last
// token when ctx is past the end.
func positionAt(vec token.Vector, ctx int) token.Position {
	if tok := vec.Peek(ctx); tok != nil {
		return tok.Span.Start
	}
	if len(vec) > 0 {
		return vec[len(vec)-1].Span.End
	}
	return token.Position{Line: 1, Column: 1}
}

func atEnd(tok *token.Token) bool {
	return tok == nil || tok.Kind == token.TokenSemicolon || tok.Kind == token.TokenRBrace
}

func syntaxError(vec token.Vector, ctx int, property, msg string) error {
	return &SyntaxError{
		Pos:      positionAt(vec, ctx),
		Property: property,
		Message:  msg,
		Err:      libcss.ErrInvalid,
	}
}

// ParseDeclaration compiles
//
//	property ':' value [ '!' important ]
//
// surrounded by optional whitespace. The declaration ends at the end of
// the vector, a ';' or a '}', which is not consumed. Failures other than
// libcss.ErrNoMem are returned as *SyntaxError. On failure *ctx is
// unchanged and the sheet is left as it was, quirks flag included.
func ParseDeclaration(c *properties.Language, vec token.Vector, ctx *int) (*stylesheet.Style, error) {
	sp := token.Begin(ctx)
	defer sp.Rollback()

	vec.SkipWhitespace(ctx)
	tok := vec.Peek(*ctx)
	if tok == nil || tok.Kind != token.TokenIdent {
		return nil, syntaxError(vec, *ctx, "", "expected property name")
	}
	name := intern.ToLower(tok.Data)
	prop, ok := properties.Lookup(name)
	if !ok {
		return nil, syntaxError(vec, *ctx, name, "unknown property")
	}
	vec.Iterate(ctx)

	vec.SkipWhitespace(ctx)
	if tok := vec.Peek(*ctx); tok == nil || tok.Kind != token.TokenColon {
		return nil, syntaxError(vec, *ctx, name, "expected ':'")
	}
	vec.Iterate(ctx)
	vec.SkipWhitespace(ctx)

	valueStart := *ctx
	quirks := c.Sheet.QuirksUsed()
	st, err := prop.Parse(c, vec, ctx)
	if errors.Is(err, libcss.ErrNoMem) {
		return nil, err
	}
	if err != nil {
		return nil, &SyntaxError{
			Pos:      positionAt(vec, valueStart),
			Property: name,
			Message:  "invalid value",
			Err:      err,
		}
	}

	discard := func() {
		c.Sheet.DestroyStyle(st)
		c.Sheet.RestoreQuirksUsed(quirks)
	}

	important, err := parseImportant(c, vec, ctx)
	if err != nil {
		discard()
		return nil, &SyntaxError{Pos: positionAt(vec, *ctx), Property: name, Message: "expected 'important'", Err: err}
	}

	vec.SkipWhitespace(ctx)
	if !atEnd(vec.Peek(*ctx)) {
		discard()
		return nil, syntaxError(vec, *ctx, name, "unexpected "+vec.Peek(*ctx).Data)
	}

	if important {
		if err := bytecode.SetImportant(st.Bytecode); err != nil {
			discard()
			return nil, err
		}
	}

	sp.Commit()
	return st, nil
}

// parseImportant consumes an optional "! important" and reports whether it
// was present.
func parseImportant(c *properties.Language, vec token.Vector, ctx *int) (bool, error) {
	next := *ctx
	vec.SkipWhitespace(&next)
	tok := vec.Peek(next)
	if tok == nil || tok.Kind != token.TokenDelim || tok.Data != "!" {
		return false, nil
	}
	vec.Iterate(&next)
	vec.SkipWhitespace(&next)
	if _, ok := c.MatchKeyword(vec.Peek(next), properties.KeywordImportant); !ok {
		*ctx = next
		return false, libcss.ErrInvalid
	}
	vec.Iterate(&next)
	*ctx = next
	return true, nil
}

// ParseDeclarations compiles a ';' separated list of declarations, stopping
// at the end of the vector or at a '}', which is left unconsumed. A
// declaration that fails is skipped up to the next ';' at the same
// nesting level. Successful styles are added to the sheet. Running out of
// memory ends the list.
func ParseDeclarations(c *properties.Language, vec token.Vector, ctx *int) []Result {
	var results []Result
	for {
		vec.SkipWhitespace(ctx)
		tok := vec.Peek(*ctx)
		if tok == nil || tok.Kind == token.TokenRBrace {
			return results
		}
		if tok.Kind == token.TokenSemicolon {
			vec.Iterate(ctx)
			continue
		}

		r := Result{Start: tok.Span.Start}
		if tok.Kind == token.TokenIdent {
			r.Property = intern.ToLower(tok.Data)
		}

		st, err := ParseDeclaration(c, vec, ctx)
		if err != nil {
			r.Err = err
			if errors.Is(err, libcss.ErrNoMem) {
				r.End = r.Start
				return append(results, r)
			}
			skipDeclaration(vec, ctx)
		} else {
			r.Style = st
			c.Sheet.AddStyle(st)
		}
		r.End = endOf(vec, *ctx)
		results = append(results, r)
	}
}

// endOf returns the end of the last non-whitespace token before ctx.
func endOf(vec token.Vector, ctx int) token.Position {
	for i := ctx - 1; i >= 0; i-- {
		if vec[i].Kind != token.TokenWhitespace {
			return vec[i].Span.End
		}
	}
	return positionAt(vec, ctx)
}

// skipDeclaration advances *ctx to the ';' or '}' that ends the current
// declaration. Blocks opened inside the declaration are skipped whole.
func skipDeclaration(vec token.Vector, ctx *int) {
	depth := 0
	for {
		tok := vec.Peek(*ctx)
		if tok == nil {
			return
		}
		switch tok.Kind {
		case token.TokenLBrace, token.TokenLParen, token.TokenLBracket, token.TokenFunction:
			depth++
		case token.TokenRParen, token.TokenRBracket:
			if depth > 0 {
				depth--
			}
		case token.TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.TokenSemicolon:
			if depth == 0 {
				return
			}
		}
		vec.Iterate(ctx)
	}
}

// ParseStylesheet compiles a sequence of rules of the form
//
//	selector '{' declarations '}'
//
// Each result carries the selector text of its rule. A rule without a
// block is reported once and ends the sheet.
func ParseStylesheet(c *properties.Language, vec token.Vector) []Result {
	var results []Result
	ctx := 0
	for {
		vec.SkipWhitespace(&ctx)
		tok := vec.Peek(ctx)
		if tok == nil {
			return results
		}
		if tok.Kind == token.TokenRBrace || tok.Kind == token.TokenSemicolon {
			results = append(results, Result{
				Start: tok.Span.Start,
				End:   tok.Span.End,
				Err:   syntaxError(vec, ctx, "", "unexpected "+tok.Data),
			})
			vec.Iterate(&ctx)
			continue
		}

		start := ctx
		var selector strings.Builder
		for tok := vec.Peek(ctx); tok != nil && tok.Kind != token.TokenLBrace; tok = vec.Peek(ctx) {
			selector.WriteString(tok.Data)
			vec.Iterate(&ctx)
		}
		if vec.Peek(ctx) == nil {
			return append(results, Result{
				Start: positionAt(vec, start),
				End:   positionAt(vec, ctx),
				Err:   syntaxError(vec, ctx, "", "expected '{'"),
			})
		}
		vec.Iterate(&ctx)

		sel := strings.TrimSpace(selector.String())
		decls := ParseDeclarations(c, vec, &ctx)
		for i := range decls {
			decls[i].Selector = sel
		}
		results = append(results, decls...)
		if n := len(decls); n > 0 && errors.Is(decls[n-1].Err, libcss.ErrNoMem) {
			return results
		}

		if tok := vec.Peek(ctx); tok != nil && tok.Kind == token.TokenRBrace {
			vec.Iterate(&ctx)
		}
	}
}
