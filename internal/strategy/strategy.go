// Package strategy composes token-level parse rules into typed values. A
// strategy either consumes what it needs and returns a valid result, or
// leaves the queue untouched and returns its problems.
package strategy

import (
	"github.com/fzzyhmstrs/fconfig-sub004/internal/queue"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// Strategy parses a T from a queue.
type Strategy[T any] interface {
	ID() string
	// CanConsume is lookahead only.
	CanConsume(q *queue.Queue) bool
	// Consume parses from q. On an invalid result q is unchanged.
	Consume(q *queue.Queue) Result[T]
}

type builderStrategy[T, B any] struct {
	id         string
	newBuilder func() B
	can        func(*queue.Queue) bool
	process    func(B, *queue.Queue) B
	build      func(B) Result[T]
}

// FromBuilder makes a strategy from an accumulator. Each Consume starts a
// fresh builder, threads it through process, and finalizes it with build.
// The whole run is an attempt, so an invalid build rolls the queue back.
func FromBuilder[T, B any](
	id string,
	newBuilder func() B,
	can func(*queue.Queue) bool,
	process func(B, *queue.Queue) B,
	build func(B) Result[T],
) Strategy[T] {
	return &builderStrategy[T, B]{id: id, newBuilder: newBuilder, can: can, process: process, build: build}
}

func (s *builderStrategy[T, B]) ID() string                     { return s.id }
func (s *builderStrategy[T, B]) CanConsume(q *queue.Queue) bool { return s.can(q) }

func (s *builderStrategy[T, B]) Consume(q *queue.Queue) Result[T] {
	return queue.Attempt(q, func(v *queue.Queue) Result[T] {
		return s.build(s.process(s.newBuilder(), v))
	})
}

type funcStrategy[T any] struct {
	id      string
	can     func(*queue.Queue) bool
	consume func(*queue.Queue) Result[T]
}

// Func makes a strategy from plain functions. consume runs as an attempt.
func Func[T any](id string, can func(*queue.Queue) bool, consume func(*queue.Queue) Result[T]) Strategy[T] {
	return &funcStrategy[T]{id: id, can: can, consume: consume}
}

func (s *funcStrategy[T]) ID() string                     { return s.id }
func (s *funcStrategy[T]) CanConsume(q *queue.Queue) bool { return s.can(q) }

func (s *funcStrategy[T]) Consume(q *queue.Queue) Result[T] {
	return queue.Attempt(q, s.consume)
}

// Next returns the next token that is not whitespace or a line marker,
// without consuming anything.
func Next(q *queue.Queue) (token.Token, bool) {
	for i := 0; ; i++ {
		tok, ok := q.PeekN(i)
		if !ok {
			return token.Token{}, false
		}
		if !tok.Type.IsWhitespace() && !tok.Type.IsSpecial() {
			return tok, true
		}
	}
}

// NextIs reports whether the next significant token has one of the types.
func NextIs(q *queue.Queue, types ...*token.Type) bool {
	tok, ok := Next(q)
	return ok && queue.Is(types...)(tok)
}
