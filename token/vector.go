package token

// Vector is an immutable sequence of tokens addressed by an integer context.
// The context is owned by the caller; Vector never stores a position.
type Vector []Token

// Peek returns the token at ctx without consuming it, or nil when ctx is
// past the end.
func (v Vector) Peek(ctx int) *Token {
	if ctx < 0 || ctx >= len(v) {
		return nil
	}
	return &v[ctx]
}

// Iterate returns the token at *ctx and advances *ctx past it. At the end
// of the vector it returns nil and leaves *ctx alone.
func (v Vector) Iterate(ctx *int) *Token {
	tok := v.Peek(*ctx)
	if tok != nil {
		*ctx++
	}
	return tok
}

// SkipWhitespace advances *ctx past any whitespace tokens.
func (v Vector) SkipWhitespace(ctx *int) {
	for {
		tok := v.Peek(*ctx)
		if tok == nil || tok.Kind != TokenWhitespace {
			return
		}
		*ctx++
	}
}

// Savepoint records a context so a failed parse can put it back.
//
//	sp := token.Begin(ctx)
//	defer sp.Rollback()
//	...
//	sp.Commit()
//
// Rollback restores the context on every return path that did not Commit.
type Savepoint struct {
	ctx       *int
	orig      int
	committed bool
}

func Begin(ctx *int) Savepoint {
	return Savepoint{ctx: ctx, orig: *ctx}
}

// Commit keeps the current context.
func (s *Savepoint) Commit() {
	s.committed = true
}

// Rollback restores the context recorded by Begin unless Commit was called.
func (s *Savepoint) Rollback() {
	if !s.committed {
		*s.ctx = s.orig
	}
}

// Origin returns the context recorded by Begin.
func (s *Savepoint) Origin() int {
	return s.orig
}
