// Package intern maps strings to small comparable handles.
package intern

import (
	"strings"
	"sync"
)

// Handle identifies an interned string. The zero Handle is never returned
// by a Table and compares unequal to every interned string.
type Handle uint32

// Table is a string interning table. It is safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	handles map[string]Handle
	strings []string
}

func New() *Table {
	return &Table{
		handles: make(map[string]Handle),
		strings: []string{""},
	}
}

// Intern returns the handle for s, adding it to the table if needed.
// Equal strings always yield equal handles.
func (t *Table) Intern(s string) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.handles[s]; ok {
		return h
	}
	h := Handle(len(t.strings))
	t.strings = append(t.strings, s)
	t.handles[s] = h
	return h
}

// Lower interns the lower-cased form of s. Identifiers that differ only in
// ASCII case share a handle.
func (t *Table) Lower(s string) Handle {
	return t.Intern(ToLower(s))
}

// ToLower maps ASCII upper case letters in s to lower case and leaves every
// other byte alone.
func ToLower(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return 'A' <= r && r <= 'Z' })
	if i < 0 {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// String returns the text of h, or "" for handles not issued by t.
func (t *Table) String(h Handle) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(h) >= len(t.strings) {
		return ""
	}
	return t.strings[h]
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.strings) - 1
}
