// Package properties compiles individual CSS property values to bytecode.
//
// Every parser takes a token vector and a context index into it. On success
// the context is left after the consumed tokens and a freshly allocated
// style holding the instructions is returned. On failure the context is
// unchanged and nothing has been allocated.
package properties

import (
	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

// Keyword is an identifier the property parsers recognise.
type Keyword int

const (
	KeywordInherit Keyword = iota
	KeywordAuto
	KeywordImportant

	numKeywords
)

var keywordText = [numKeywords]string{
	KeywordInherit:   "inherit",
	KeywordAuto:      "auto",
	KeywordImportant: "important",
}

func (k Keyword) String() string {
	if k < 0 || k >= numKeywords {
		return "unknown"
	}
	return keywordText[k]
}

// Language is the context shared by the property parsers: the sheet that
// receives compiled styles and the handles of the keywords, interned in the
// same table as the tokens.
type Language struct {
	Sheet   *stylesheet.Sheet
	Strings *intern.Table

	keywords [numKeywords]intern.Handle
}

func NewLanguage(sheet *stylesheet.Sheet, strings *intern.Table) *Language {
	c := &Language{
		Sheet:   sheet,
		Strings: strings,
	}
	for k := Keyword(0); k < numKeywords; k++ {
		c.keywords[k] = strings.Intern(keywordText[k])
	}
	return c
}

// MatchKeyword reports which keyword of set tok is. Only identifiers
// match, and only by handle, so the comparison is case-insensitive and
// does not look at the text.
func (c *Language) MatchKeyword(tok *token.Token, set ...Keyword) (Keyword, bool) {
	if tok == nil || tok.Kind != token.TokenIdent {
		return 0, false
	}
	for _, k := range set {
		if tok.Lower == c.keywords[k] {
			return k, true
		}
	}
	return 0, false
}
