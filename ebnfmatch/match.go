// Package ebnfmatch matches CSS value text against an EBNF grammar.
//
// Productions whose names start with a lower case letter are lexical:
// their items must be adjacent. Between the items of any other production
// whitespace and /* */ comments are skipped. Literal tokens match
// ignoring ASCII case.
// Alternatives take the longest match and repetitions are greedy; there is
// no backtracking into a completed item.
package ebnfmatch

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/netsurf-plan9/libcss/intern"
)

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Matcher matches productions of one grammar against one input.
type Matcher struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection
}

func NewMatcher(grammar ebnf.Grammar, input []byte) *Matcher {
	return &Matcher{
		grammar:  grammar,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Match returns the length of the longest prefix of the input, after
// leading whitespace, that production start derives. It returns -1 when
// no prefix does.
func (m *Matcher) Match(start string) int {
	ws := m.skipSpace(0)
	n := m.matchName(start, ws)
	if n < 0 {
		return -1
	}
	return ws + n
}

// Matches reports whether the whole of input, ignoring surrounding
// whitespace, is derived from production start.
func Matches(grammar ebnf.Grammar, start string, input []byte) bool {
	m := NewMatcher(grammar, input)
	n := m.Match(start)
	return n >= 0 && m.skipSpace(n) == len(input)
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

// skipSpace skips whitespace and comments. An unterminated comment runs to
// the end of the input, as it does for the lexer.
func (m *Matcher) skipSpace(offset int) int {
	for offset < len(m.input) {
		switch m.input[offset] {
		case ' ', '\t', '\n', '\r', '\f':
			offset++
		case '/':
			if offset+1 >= len(m.input) || m.input[offset+1] != '*' {
				return offset
			}
			end := bytes.Index(m.input[offset+2:], []byte("*/"))
			if end < 0 {
				return len(m.input)
			}
			offset += 2 + end + 2
		default:
			return offset
		}
	}
	return offset
}

// match returns the length matched by expr at offset, or -1.
func (m *Matcher) match(expr ebnf.Expression, offset int, lexical bool) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return m.matchToken(e.String, offset)

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for i, item := range e {
			next := pos
			if !lexical && i > 0 {
				next = m.skipSpace(pos)
			}
			n := m.match(item, next, lexical)
			if n < 0 {
				return -1
			}
			if n > 0 {
				pos = next + n
			}
		}
		return pos - offset

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset, lexical); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := offset
		for {
			next := pos
			if !lexical && pos > offset {
				next = m.skipSpace(pos)
			}
			n := m.match(e.Body, next, lexical)
			if n <= 0 {
				break
			}
			pos = next + n
		}
		return pos - offset

	case *ebnf.Option:
		if n := m.match(e.Body, offset, lexical); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset, lexical)

	case *ebnf.Name:
		return m.matchName(e.String, offset)

	default:
		return -1
	}
}

// matchName matches a named production with memoization and cycle detection.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}

	// Left recursion at the same offset cannot make progress.
	if m.visiting[key] {
		return -1
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset, isLexical(name))
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}

// matchToken matches a literal, ignoring ASCII case.
func (m *Matcher) matchToken(lit string, offset int) int {
	if offset+len(lit) > len(m.input) {
		return -1
	}
	if intern.ToLower(string(m.input[offset:offset+len(lit)])) == intern.ToLower(lit) {
		return len(lit)
	}
	return -1
}

// matchRange matches one byte in a range such as "0" … "9".
func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) || len(begin) != 1 || len(end) != 1 {
		return -1
	}
	ch := m.input[offset]
	if ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return -1
}
