package properties

import (
	"sort"

	"github.com/netsurf-plan9/libcss/bytecode"
	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

// Property describes how one CSS property is compiled.
type Property struct {
	Name string
	// Opcodes lists the instructions a successful parse emits, in order.
	Opcodes []bytecode.Opcode
	// DefaultUnit is the unit given to bare numbers.
	DefaultUnit bytecode.Unit

	// start is the grammar production the value must match.
	start   string
	grammar string
	parse   func(c *Language, vec token.Vector, ctx *int, p *Property) (*stylesheet.Style, error)
}

// Parse compiles the value at *ctx.
func (p *Property) Parse(c *Language, vec token.Vector, ctx *int) (*stylesheet.Style, error) {
	return p.parse(c, vec, ctx, p)
}

func parseSide(c *Language, vec token.Vector, ctx *int, p *Property) (*stylesheet.Style, error) {
	return ParseMarginSide(c, vec, ctx, p.Opcodes[0], p.DefaultUnit)
}

func parseShorthand(c *Language, vec token.Vector, ctx *int, p *Property) (*stylesheet.Style, error) {
	return ParseMargin(c, vec, ctx, p.DefaultUnit)
}

func side(op bytecode.Opcode) *Property {
	return &Property{
		Name:        op.String(),
		Opcodes:     []bytecode.Opcode{op},
		DefaultUnit: bytecode.UnitPx,
		start:       "MarginSide",
		grammar:     marginSideGrammar,
		parse:       parseSide,
	}
}

var table = map[string]*Property{}

func init() {
	for _, op := range marginSides {
		p := side(op)
		table[p.Name] = p
	}
	table["margin"] = &Property{
		Name:        "margin",
		Opcodes:     marginSides[:],
		DefaultUnit: bytecode.UnitPx,
		start:       "Margin",
		grammar:     marginGrammar,
		parse:       parseShorthand,
	}
}

// Lookup finds a property by name, ignoring ASCII case.
func Lookup(name string) (*Property, bool) {
	p, ok := table[intern.ToLower(name)]
	return p, ok
}

// Properties returns every known property ordered by name.
func Properties() []*Property {
	props := make([]*Property, 0, len(table))
	for _, p := range table {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return props
}
