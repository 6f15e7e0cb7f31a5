package properties

import (
	"github.com/netsurf-plan9/libcss"
	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/token"
)

// ParseUnitSpecifier reads a dimension, number or percentage starting at
// *ctx, skipping leading whitespace.
//
// A bare number takes defaultUnit. Zero is always accepted; any other bare
// number is accepted only when the sheet allows quirks, in which case a
// following unit identifier ("10 px") is consumed with it. The quirk result
// reports whether either quirk was relied on. The caller records that on
// the sheet once its own parse commits, so a failed caller leaves no trace.
//
// On failure *ctx is unchanged and the error is libcss.ErrInvalid.
func ParseUnitSpecifier(c *Language, vec token.Vector, ctx *int, defaultUnit bytecode.Unit) (bytecode.Fixed, bytecode.Unit, bool, error) {
	sp := token.Begin(ctx)
	defer sp.Rollback()

	vec.SkipWhitespace(ctx)
	tok := vec.Iterate(ctx)
	if tok == nil {
		return 0, 0, false, libcss.ErrInvalid
	}

	var (
		length bytecode.Fixed
		unit   bytecode.Unit
		quirk  bool
	)
	switch tok.Kind {
	case token.TokenDimension:
		num, consumed := parseNumber(tok.Data, false)
		if consumed == 0 {
			return 0, 0, false, libcss.ErrInvalid
		}
		u, ok := bytecode.LookupUnit(tok.Data[consumed:])
		if !ok {
			return 0, 0, false, libcss.ErrInvalid
		}
		length, unit = num, u

	case token.TokenNumber:
		num, consumed := parseNumber(tok.Data, false)
		if consumed == 0 || consumed != len(tok.Data) {
			return 0, 0, false, libcss.ErrInvalid
		}
		if num != 0 {
			if !c.Sheet.QuirksAllowed() {
				return 0, 0, false, libcss.ErrInvalid
			}
			quirk = true
		}
		length, unit = num, defaultUnit

		if c.Sheet.QuirksAllowed() {
			next := *ctx
			vec.SkipWhitespace(&next)
			if ident := vec.Iterate(&next); ident != nil && ident.Kind == token.TokenIdent {
				if u, ok := bytecode.LookupUnit(ident.Data); ok {
					*ctx = next
					unit = u
					quirk = true
				}
			}
		}

	case token.TokenPercentage:
		num, consumed := parseNumber(tok.Data, false)
		if consumed == 0 || consumed != len(tok.Data) {
			return 0, 0, false, libcss.ErrInvalid
		}
		length, unit = num, bytecode.UnitPct

	default:
		return 0, 0, false, libcss.ErrInvalid
	}

	sp.Commit()
	return length, unit, quirk, nil
}
