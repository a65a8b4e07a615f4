package lexer

import (
	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// Producer recognizes and consumes one construct at the cursor position.
//
// CanProduce is lookahead only and must not consume. Produce consumes at least
// one character and emits tokens through the context. It returns false when
// the construct continues on the next line; the producer must then implement
// Resumable and must have consumed the rest of the line.
type Producer interface {
	ID() string
	CanProduce(r *cursor.Reader) bool
	Produce(ctx *Context) bool
}

// Resumable is implemented by producers of multi-line constructs.
type Resumable interface {
	Producer
	// Resume continues the construct at the start of the next line. The
	// state saved by the previous call is available through ctx.State.
	Resume(ctx *Context) bool
	// Finish is called when input ends while the construct is still open.
	// It emits the error token describing the unterminated construct.
	Finish(ctx *Context)
}

// Context is what a producer sees while it runs: the reader for the current
// line, the token sink, and the state of a construct that spans lines.
type Context struct {
	Reader *cursor.Reader

	driver *Driver
	state  any
}

// Mark returns the reader position, used as the start of the next token.
func (c *Context) Mark() int {
	return c.Reader.Pos()
}

// Emit appends a token covering the reader text from start to the current
// position.
func (c *Context) Emit(typ *token.Type, value any, start int) {
	r := c.Reader
	c.driver.emit(token.New(typ, value, r.Line(), r.ColumnAt(start), r.Text(start, r.Pos())))
}

// EmitError is Emit for error-flagged types.
func (c *Context) EmitError(typ *token.Type, value any, start int, message string) {
	r := c.Reader
	c.driver.emit(token.NewError(typ, value, r.Line(), r.ColumnAt(start), r.Text(start, r.Pos()), message))
}

// EmitAt appends a fully formed token. Multi-line constructs use it because
// their position and raw text are not on the current line.
func (c *Context) EmitAt(tok token.Token) {
	c.driver.emit(tok)
}

// Save stores the state of an open construct until the driver resumes it.
func (c *Context) Save(state any) {
	c.state = state
}

// State returns the state saved by the previous Produce or Resume call.
func (c *Context) State() any {
	return c.state
}
