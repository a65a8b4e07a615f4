package css

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// commentProducer scans /* ... */ and resumes across lines until the comment
// closes. A comment yields one token whatever its line count.
type commentProducer struct{}

type commentState struct {
	line, column int
	body         strings.Builder
}

func (commentProducer) ID() string { return "comment" }

func (commentProducer) CanProduce(r *cursor.Reader) bool {
	return r.PeekFor("/*")
}

func (p commentProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	st := &commentState{line: r.Line(), column: r.Column()}
	r.Advance(2)
	return p.scan(ctx, st)
}

func (p commentProducer) Resume(ctx *lexer.Context) bool {
	st := ctx.State().(*commentState)
	st.body.WriteByte('\n')
	return p.scan(ctx, st)
}

func (commentProducer) Finish(ctx *lexer.Context) {
	st := ctx.State().(*commentState)
	body := st.body.String()
	ctx.EmitAt(token.NewError(BadComment, body, st.line, st.column, "/*"+body, "unterminated comment"))
}

func (commentProducer) scan(ctx *lexer.Context, st *commentState) bool {
	r := ctx.Reader
	for r.CanRead() {
		if r.PeekFor("*/") {
			r.Advance(2)
			body := st.body.String()
			ctx.EmitAt(token.New(Comment, body, st.line, st.column, "/*"+body+"*/"))
			return true
		}
		st.body.WriteRune(r.Read())
	}
	ctx.Save(st)
	return false
}
