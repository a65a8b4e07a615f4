package css

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// stringProducer scans quoted strings. A backslash at the end of a line
// continues the string on the next line; any other line end before the
// closing quote makes a bad string.
type stringProducer struct{}

type stringState struct {
	quote        rune
	line, column int
	value        strings.Builder
	raw          strings.Builder
}

func (stringProducer) ID() string { return "string" }

func (stringProducer) CanProduce(r *cursor.Reader) bool {
	ch := r.Peek()
	return r.CanRead() && (ch == '"' || ch == '\'')
}

func (p stringProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	st := &stringState{line: r.Line(), column: r.Column()}
	st.quote = r.Read()
	st.raw.WriteRune(st.quote)
	return p.scan(ctx, st)
}

func (p stringProducer) Resume(ctx *lexer.Context) bool {
	st := ctx.State().(*stringState)
	st.raw.WriteByte('\n')
	return p.scan(ctx, st)
}

func (stringProducer) Finish(ctx *lexer.Context) {
	st := ctx.State().(*stringState)
	ctx.EmitAt(token.NewError(BadString, st.value.String(), st.line, st.column, st.raw.String(), "unterminated string"))
}

func (stringProducer) scan(ctx *lexer.Context, st *stringState) bool {
	r := ctx.Reader
	for r.CanRead() {
		switch ch := r.Peek(); {
		case ch == st.quote:
			st.raw.WriteRune(r.Read())
			ctx.EmitAt(token.New(String, st.value.String(), st.line, st.column, st.raw.String()))
			return true
		case ch == '\\' && !r.CanRead(2):
			// Escaped line break: nothing is appended to the value.
			st.raw.WriteRune(r.Read())
			ctx.Save(st)
			return false
		case ch == '\\':
			from := r.Pos()
			st.value.WriteRune(DecodeEscape(r))
			st.raw.WriteString(r.Text(from, r.Pos()))
		default:
			st.value.WriteRune(r.Read())
			st.raw.WriteRune(ch)
		}
	}
	ctx.EmitAt(token.NewError(BadString, st.value.String(), st.line, st.column, st.raw.String(), "unterminated string"))
	return true
}
