package properties

import (
	"github.com/netsurf-plan9/libcss"
	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

// marginSides lists the side opcodes in shorthand order.
var marginSides = [4]bytecode.Opcode{
	bytecode.OpMarginTop,
	bytecode.OpMarginRight,
	bytecode.OpMarginBottom,
	bytecode.OpMarginLeft,
}

// nonSpatial are the unit classes the unit parser accepts but which never
// make sense as a margin.
const nonSpatial = bytecode.UnitAngle | bytecode.UnitTime | bytecode.UnitFreq

// ParseMarginSide compiles the value of margin-top, margin-right,
// margin-bottom or margin-left, selected by op:
//
//	length | percentage | IDENT(auto, inherit)
//
// Bare numbers take defaultUnit.
func ParseMarginSide(c *Language, vec token.Vector, ctx *int, op bytecode.Opcode, defaultUnit bytecode.Unit) (*stylesheet.Style, error) {
	sp := token.Begin(ctx)
	defer sp.Rollback()

	operand, quirk, err := parseMarginValue(c, vec, ctx, defaultUnit)
	if err != nil {
		return nil, err
	}

	decl := bytecode.Declaration{Op: op, Operand: operand}
	style, err := c.Sheet.CreateStyle(decl.Size())
	if err != nil {
		return nil, err
	}
	decl.Encode(style.Bytecode)

	if quirk {
		c.Sheet.MarkQuirksUsed()
	}
	sp.Commit()
	return style, nil
}

// parseMarginValue recognises a single margin value. It may advance *ctx
// even when it fails; callers hold the savepoint.
func parseMarginValue(c *Language, vec token.Vector, ctx *int, defaultUnit bytecode.Unit) (bytecode.Operand, bool, error) {
	tok := vec.Peek(*ctx)
	if tok == nil {
		return nil, false, libcss.ErrInvalid
	}

	if kw, ok := c.MatchKeyword(tok, KeywordInherit, KeywordAuto); ok {
		vec.Iterate(ctx)
		if kw == KeywordInherit {
			return bytecode.Inherit{}, false, nil
		}
		return bytecode.Keyword(bytecode.MarginAuto), false, nil
	}

	length, unit, quirk, err := ParseUnitSpecifier(c, vec, ctx, defaultUnit)
	if err != nil {
		return nil, false, err
	}
	if unit&nonSpatial != 0 {
		return nil, false, libcss.ErrInvalid
	}
	return bytecode.Dimension{Value: bytecode.MarginSet, Length: length, Unit: unit}, quirk, nil
}

// startsMarginValue reports whether tok can begin a margin value.
func startsMarginValue(c *Language, tok *token.Token) bool {
	if tok == nil {
		return false
	}
	switch tok.Kind {
	case token.TokenDimension, token.TokenNumber, token.TokenPercentage:
		return true
	}
	_, ok := c.MatchKeyword(tok, KeywordInherit, KeywordAuto)
	return ok
}

// ParseMargin compiles the margin shorthand into four side instructions,
// in top, right, bottom, left order, held in one style:
//
//	IDENT(inherit) | [ length | percentage | IDENT(auto) ]{1,4}
//
// One value applies to all sides, two give vertical then horizontal, three
// give top, horizontal, bottom.
func ParseMargin(c *Language, vec token.Vector, ctx *int, defaultUnit bytecode.Unit) (*stylesheet.Style, error) {
	sp := token.Begin(ctx)
	defer sp.Rollback()

	var (
		values [4]bytecode.Operand
		n      int
		quirk  bool
	)
	for n < len(values) {
		next := *ctx
		if n > 0 {
			vec.SkipWhitespace(&next)
		}
		if !startsMarginValue(c, vec.Peek(next)) {
			break
		}
		*ctx = next

		operand, q, err := parseMarginValue(c, vec, ctx, defaultUnit)
		if err != nil {
			return nil, err
		}
		if _, ok := operand.(bytecode.Inherit); ok {
			if n > 0 {
				return nil, libcss.ErrInvalid
			}
			values = [4]bytecode.Operand{operand, operand, operand, operand}
			n = len(values)
			break
		}
		values[n] = operand
		n++
		quirk = quirk || q
	}

	switch n {
	case 0:
		return nil, libcss.ErrInvalid
	case 1:
		values[1], values[2], values[3] = values[0], values[0], values[0]
	case 2:
		values[2], values[3] = values[0], values[1]
	case 3:
		values[3] = values[1]
	}

	var decls [4]bytecode.Declaration
	size := 0
	for i, op := range marginSides {
		decls[i] = bytecode.Declaration{Op: op, Operand: values[i]}
		size += decls[i].Size()
	}

	style, err := c.Sheet.CreateStyle(size)
	if err != nil {
		return nil, err
	}
	off := 0
	for _, d := range decls {
		off += d.Encode(style.Bytecode[off:])
	}

	if quirk {
		c.Sheet.MarkQuirksUsed()
	}
	sp.Commit()
	return style, nil
}
