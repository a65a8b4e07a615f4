package strategy

import (
	"fmt"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/queue"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// Problem is a positioned reason a strategy rejected its input.
type Problem struct {
	Message string
	Line    int
	Column  int
}

func (p Problem) String() string {
	return fmt.Sprintf("%d:%d: %s", p.Line, p.Column, p.Message)
}

// Result is a validated strategy output. It is valid when it carries no
// problems; an invalid result may still hold a best-effort value.
type Result[T any] struct {
	Value    T
	Problems []Problem
}

// Valid reports whether the result has no problems.
func (r Result[T]) Valid() bool {
	return len(r.Problems) == 0
}

// Ok returns a valid result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail returns an invalid result positioned at the next token of q.
func Fail[T any](q *queue.Queue, format string, args ...any) Result[T] {
	line, col := q.Position()
	return Result[T]{Problems: []Problem{{Message: fmt.Sprintf(format, args...), Line: line, Column: col}}}
}

// FailAt returns an invalid result positioned at tok.
func FailAt[T any](tok token.Token, format string, args ...any) Result[T] {
	return Result[T]{Problems: []Problem{{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}}}
}

// Map transforms the value of r and keeps its problems.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	return Result[U]{Value: fn(r.Value), Problems: r.Problems}
}

// Cast keeps the problems of r for a result of another type.
func Cast[U, T any](r Result[T]) Result[U] {
	return Result[U]{Problems: r.Problems}
}
