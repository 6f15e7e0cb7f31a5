// Package libcss compiles CSS property values into bytecode.
//
// The subpackages split the work the same way the compiled form is consumed:
// token produces and walks the token vector, properties recognises property
// values and emits instructions, bytecode defines the instruction layout and
// stylesheet owns the emitted buffers.
package libcss

import "errors"

// Errors returned by the compiler. Every failure reported by the property
// parsers is one of these two values; callers compare with errors.Is.
var (
	// ErrInvalid means the tokens do not form a legal value for the property.
	ErrInvalid = errors.New("libcss: invalid input")

	// ErrNoMem means the stylesheet could not provide the requested buffer.
	ErrNoMem = errors.New("libcss: insufficient memory")
)
