package properties

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/netsurf-plan9/libcss/bytecode"
)

const (
	marginSideGrammar = `MarginSide = "inherit" | Value .
`
	marginGrammar = `Margin = "inherit" | Value [ Value [ Value [ Value ] ] ] .
`
	valueGrammar = `Value = Length | percentage | "auto" .
Length = number [ unit ] .

percentage = number "%" .
number = [ "+" | "-" ] ( digits [ "." digits ] | "." digits ) .
digits = digit { digit } .
digit = "0" … "9" .
`
)

// unitProduction lists the length units the unit parser accepts.
func unitProduction() string {
	names := bytecode.LengthUnitNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return "unit = " + strings.Join(quoted, " | ") + " .\n"
}

// GrammarText returns the EBNF describing the property's value as accepted
// in quirks mode. Strict mode further requires a unit on non-zero lengths,
// written without whitespace.
func (p *Property) GrammarText() string {
	return p.grammar + valueGrammar + unitProduction()
}

// Grammar parses and verifies the property's EBNF. Productions are
// reachable from the property's start production.
func (p *Property) Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(p.Name, strings.NewReader(p.GrammarText()))
	if err != nil {
		return nil, fmt.Errorf("parse grammar for %s: %w", p.Name, err)
	}
	if err := ebnf.Verify(g, p.start); err != nil {
		return nil, fmt.Errorf("verify grammar for %s: %w", p.Name, err)
	}
	return g, nil
}

// Start returns the name of the grammar's start production.
func (p *Property) Start() string {
	return p.start
}

// Grammar returns the verified grammar of the named property.
func Grammar(name string) (ebnf.Grammar, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown property %q", name)
	}
	return p.Grammar()
}
