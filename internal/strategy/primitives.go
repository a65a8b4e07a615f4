package strategy

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/queue"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// OfType consumes the next significant token when it has one of the types.
// An error token in its place fails with the token's own message.
func OfType(id string, types ...*token.Type) Strategy[token.Token] {
	match := queue.Is(types...)
	return Func(id,
		func(q *queue.Queue) bool { return NextIs(q, types...) },
		func(q *queue.Queue) Result[token.Token] {
			q.ConsumeWhitespace()
			tok, ok := q.Peek()
			switch {
			case !ok:
				return Fail[token.Token](q, "expected %s, found end of input", id)
			case match(tok):
				q.Poll()
				return Ok(tok)
			case tok.IsError():
				return FailAt[token.Token](tok, "%s", tok.Message)
			default:
				return FailAt[token.Token](tok, "expected %s, found %s", id, tok.Type)
			}
		})
}

// Value consumes a token of typ and returns its value as T.
func Value[T any](id string, typ *token.Type) Strategy[T] {
	inner := OfType(id, typ)
	return Func(id, inner.CanConsume, func(q *queue.Queue) Result[T] {
		res := inner.Consume(q)
		if !res.Valid() {
			return Cast[T](res)
		}
		v, ok := token.ValueOf[T](res.Value)
		if !ok {
			return FailAt[T](res.Value, "%s carries no %s value", res.Value.Type, id)
		}
		return Ok(v)
	})
}

// Ident consumes an identifier.
func Ident() Strategy[string] {
	return Value[string]("identifier", css.Ident)
}

// Keyword consumes an identifier equal to word, ignoring ASCII case.
func Keyword(word string) Strategy[string] {
	ident := Ident()
	return Func("keyword "+word,
		func(q *queue.Queue) bool {
			tok, ok := Next(q)
			return ok && tok.Is(css.Ident) && strings.EqualFold(tok.Value.(string), word)
		},
		func(q *queue.Queue) Result[string] {
			res := ident.Consume(q)
			if res.Valid() && !strings.EqualFold(res.Value, word) {
				return Fail[string](q, "expected %q, found %q", word, res.Value)
			}
			return res
		})
}

// String consumes a quoted string.
func String() Strategy[string] {
	return Value[string]("string", css.String)
}

// Number consumes a plain number.
func Number() Strategy[token.Number] {
	return Value[token.Number]("number", css.Number)
}

// Dimension consumes a number with a unit.
func Dimension() Strategy[token.Dimension] {
	return Value[token.Dimension]("dimension", css.Dimension)
}

// Percentage consumes a percentage.
func Percentage() Strategy[token.Number] {
	return Value[token.Number]("percentage", css.Percentage)
}

// Hash consumes a #name token and returns the name.
func Hash() Strategy[string] {
	return Value[string]("hash", css.Hash)
}
