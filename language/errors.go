package language

import (
	"fmt"

	"github.com/netsurf-plan9/libcss/token"
)

// SyntaxError reports where a declaration stopped matching. Err is always
// libcss.ErrInvalid, possibly wrapped.
type SyntaxError struct {
	Pos      token.Position
	Property string
	Message  string
	Err      error
}

func (e *SyntaxError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Property != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Property, msg)
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
