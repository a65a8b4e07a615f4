package css

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
)

// identProducer scans identifiers, function names and url(...) literals.
type identProducer struct{}

func (identProducer) ID() string { return "ident" }

func (identProducer) CanProduce(r *cursor.Reader) bool {
	return startsIdent(r, 0)
}

func (identProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	start := ctx.Mark()
	name := consumeName(r)

	if !r.CanRead() || r.Peek() != '(' {
		ctx.Emit(Ident, name, start)
		return true
	}
	r.Read()
	if !strings.EqualFold(name, "url") {
		ctx.Emit(Function, name, start)
		return true
	}

	// A quoted argument is left to the string producer.
	look := r.Split()
	look.SkipWhitespace()
	if ch := look.Peek(); look.CanRead() && (ch == '"' || ch == '\'') {
		ctx.Emit(Function, name, start)
		return true
	}
	scanURL(ctx, start)
	return true
}

// scanURL consumes an unquoted url body after "url(".
func scanURL(ctx *lexer.Context, start int) {
	r := ctx.Reader
	r.SkipWhitespace()

	var value strings.Builder
	for r.CanRead() {
		ch := r.Peek()
		switch {
		case ch == ')':
			r.Read()
			ctx.Emit(URL, value.String(), start)
			return
		case cursor.IsWhitespace(ch):
			r.SkipWhitespace()
			if r.CanRead() && r.Peek() == ')' {
				r.Read()
				ctx.Emit(URL, value.String(), start)
				return
			}
			if !r.CanRead() {
				badURL(ctx, start, &value, "unterminated url")
				return
			}
			badURL(ctx, start, &value, "whitespace inside url")
			return
		case ch == '"' || ch == '\'':
			badURL(ctx, start, &value, "unexpected quote in url")
			return
		case ch == '(':
			badURL(ctx, start, &value, "unexpected '(' in url")
			return
		case isNonPrintable(ch):
			badURL(ctx, start, &value, "unexpected character "+describe(ch)+" in url")
			return
		case ch == '\\':
			if !validEscape(r, 0) {
				badURL(ctx, start, &value, "escaped line break in url")
				return
			}
			value.WriteRune(DecodeEscape(r))
		default:
			value.WriteRune(r.Read())
		}
	}
	badURL(ctx, start, &value, "unterminated url")
}

// badURL consumes the remnants of a bad url up to and including the next ')'
// on the line and emits the BadURL token.
func badURL(ctx *lexer.Context, start int, value *strings.Builder, message string) {
	r := ctx.Reader
	for r.CanRead() {
		if r.Peek() == ')' {
			r.Read()
			break
		}
		if validEscape(r, 0) {
			value.WriteRune(DecodeEscape(r))
			continue
		}
		value.WriteRune(r.Read())
	}
	ctx.EmitError(BadURL, value.String(), start, message)
}
