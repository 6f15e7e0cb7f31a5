// Package stylesheet holds compiled styles and hands out the buffers the
// property parsers emit into.
package stylesheet

import (
	"errors"
	"fmt"

	"github.com/netsurf-plan9/libcss"
	"github.com/netsurf-plan9/libcss/bytecode"
)

// Allocator provides style buffers. Alloc returns a slice of exactly size
// bytes or libcss.ErrNoMem.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

// AllocatorFunc adapts a function to Allocator.
type AllocatorFunc func(size int) ([]byte, error)

func (f AllocatorFunc) Alloc(size int) ([]byte, error) {
	return f(size)
}

type heap struct{}

func (heap) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

type Option func(*Sheet)

// WithQuirks permits the quirks-mode value forms, such as unitless
// non-zero lengths.
func WithQuirks() Option {
	return func(s *Sheet) {
		s.quirksAllowed = true
	}
}

// WithMemoryLimit caps the total number of bytecode bytes the sheet hands
// out. Requests beyond the cap fail with libcss.ErrNoMem.
func WithMemoryLimit(n int) Option {
	return func(s *Sheet) {
		s.limit = n
	}
}

func WithAllocator(a Allocator) Option {
	return func(s *Sheet) {
		s.alloc = a
	}
}

// Style is one compiled declaration. Its Bytecode is sized exactly to the
// instructions it holds.
type Style struct {
	Bytecode []byte
}

// Declarations decodes the instructions in st.
func (st *Style) Declarations() ([]bytecode.Declaration, error) {
	return bytecode.DecodeAll(st.Bytecode)
}

// Sheet is a stylesheet under construction. It is not safe for concurrent
// use.
type Sheet struct {
	quirksAllowed bool
	quirksUsed    bool
	alloc         Allocator
	limit         int
	used          int
	styles        []*Style
}

func New(opts ...Option) *Sheet {
	s := &Sheet{
		alloc: heap{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sheet) QuirksAllowed() bool {
	return s.quirksAllowed
}

// QuirksUsed reports whether any committed value relied on quirks mode.
func (s *Sheet) QuirksUsed() bool {
	return s.quirksUsed
}

func (s *Sheet) MarkQuirksUsed() {
	s.quirksUsed = true
}

// RestoreQuirksUsed resets the quirks flag to a value previously read from
// QuirksUsed, for callers discarding a style after the value committed.
func (s *Sheet) RestoreQuirksUsed(used bool) {
	s.quirksUsed = used
}

// CreateStyle allocates a style of exactly size bytes. The style is owned
// by the caller until passed to AddStyle.
func (s *Sheet) CreateStyle(size int) (*Style, error) {
	if size <= 0 {
		return nil, fmt.Errorf("stylesheet: invalid style size %d: %w", size, libcss.ErrNoMem)
	}
	if s.limit > 0 && s.used+size > s.limit {
		return nil, libcss.ErrNoMem
	}
	buf, err := s.alloc.Alloc(size)
	if errors.Is(err, libcss.ErrNoMem) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("stylesheet: alloc %d bytes: %v: %w", size, err, libcss.ErrNoMem)
	}
	if len(buf) != size {
		return nil, fmt.Errorf("stylesheet: allocator returned %d bytes, want %d: %w", len(buf), size, libcss.ErrNoMem)
	}
	s.used += size
	return &Style{Bytecode: buf}, nil
}

// AddStyle appends a compiled style to the sheet.
func (s *Sheet) AddStyle(st *Style) {
	s.styles = append(s.styles, st)
}

// DestroyStyle returns a style that was created but never added, so its
// bytes no longer count against the memory limit.
func (s *Sheet) DestroyStyle(st *Style) {
	if st == nil {
		return
	}
	s.used -= len(st.Bytecode)
	st.Bytecode = nil
}

func (s *Sheet) Styles() []*Style {
	return s.styles
}

// Size returns the number of bytecode bytes handed out so far.
func (s *Sheet) Size() int {
	return s.used
}
