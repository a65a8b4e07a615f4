// Package queue provides the peekable token view that parse strategies
// consume from, with speculative (split) and bounded (slice) child views.
package queue

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/errors"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

func tracer() tracing.Trace {
	return tracing.Select("fconfig.queue")
}

// Mode says how a queue relates to its parent.
type Mode int

const (
	ModeDirect Mode = iota
	ModeSplit
	ModeSlice
)

func (m Mode) String() string {
	switch m {
	case ModeSplit:
		return "split"
	case ModeSlice:
		return "slice"
	default:
		return "direct"
	}
}

// Queue is a FIFO view over a fixed token list. Tokens are never copied or
// modified; views only move their read position.
type Queue struct {
	tokens []token.Token
	pos    int
	end    int
	begin  int // where the enclosing slice started

	mode      Mode
	bounded   bool // polling past end is a contract violation
	parent    *Queue
	committed bool
}

// New returns a direct queue over tokens.
func New(tokens []token.Token) *Queue {
	return &Queue{tokens: tokens, end: len(tokens)}
}

// Mode returns the kind of view.
func (q *Queue) Mode() Mode {
	return q.mode
}

func (q *Queue) live(op string) {
	if q.committed {
		panic(errors.CommittedView(op))
	}
}

// Peek returns the next token without consuming it.
func (q *Queue) Peek() (token.Token, bool) {
	return q.PeekN(0)
}

// PeekN returns the token n positions ahead.
func (q *Queue) PeekN(n int) (token.Token, bool) {
	q.live("peek")
	i := q.pos + n
	if n < 0 || i >= q.end {
		return token.Token{}, false
	}
	return q.tokens[i], true
}

// Poll consumes the next token. At the end of a direct or split view it
// returns false; past the bound of a slice it panics.
func (q *Queue) Poll() (token.Token, bool) {
	q.live("poll")
	if q.pos >= q.end {
		if q.bounded {
			panic(errors.SliceOverrun(q.end - q.begin))
		}
		return token.Token{}, false
	}
	tok := q.tokens[q.pos]
	q.pos++
	return tok, true
}

// Len returns the number of tokens left in the view.
func (q *Queue) Len() int {
	q.live("len")
	return q.end - q.pos
}

// Empty reports whether the view has no tokens left.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Remaining returns the unconsumed tokens.
func (q *Queue) Remaining() []token.Token {
	q.live("remaining")
	return q.tokens[q.pos:q.end]
}

// Position returns the position of the next token, or of the last token when
// the view is exhausted.
func (q *Queue) Position() (line, column int) {
	q.live("position")
	switch {
	case q.pos < q.end:
		return q.tokens[q.pos].Line, q.tokens[q.pos].Column
	case q.pos > 0 && q.pos <= len(q.tokens):
		last := q.tokens[q.pos-1]
		return last.Line, last.Column
	default:
		return 1, 1
	}
}

// Split returns a speculative child view. Its consumption reaches q only on
// Commit.
func (q *Queue) Split() *Queue {
	q.live("split")
	return &Queue{
		tokens:  q.tokens,
		pos:     q.pos,
		end:     q.end,
		begin:   q.begin,
		mode:    ModeSplit,
		bounded: q.bounded,
		parent:  q,
	}
}

// SliceBefore returns a child view ending just before the first token that
// matches boundary. It returns false when no token matches.
func (q *Queue) SliceBefore(boundary func(token.Token) bool) (*Queue, bool) {
	q.live("slice")
	for i := q.pos; i < q.end; i++ {
		if boundary(q.tokens[i]) {
			return &Queue{
				tokens:  q.tokens,
				pos:     q.pos,
				end:     i,
				begin:   q.pos,
				mode:    ModeSlice,
				bounded: true,
				parent:  q,
			}, true
		}
	}
	return nil, false
}

// Commit makes the child's consumption permanent in its parent. The child is
// unusable afterwards.
func (q *Queue) Commit() {
	q.live("commit")
	if q.parent == nil {
		return
	}
	q.parent.live("commit into")
	q.parent.pos = q.pos
	q.committed = true
}

// ConsumeWhitespace skips whitespace tokens and end-of-line/end-of-file
// markers, returning how many were skipped.
func (q *Queue) ConsumeWhitespace() int {
	q.live("consume whitespace")
	n := 0
	for q.pos < q.end && skippable(q.tokens[q.pos]) {
		q.pos++
		n++
	}
	return n
}

func skippable(tok token.Token) bool {
	return tok.Type.IsWhitespace() || tok.Is(token.EOL) || tok.Is(token.EOF)
}

// Expect consumes the next token if it has type typ.
func (q *Queue) Expect(typ *token.Type) (token.Token, bool) {
	tok, ok := q.Peek()
	if !ok || !tok.Is(typ) {
		return token.Token{}, false
	}
	return q.Poll()
}

// Attempt runs fn against a split of q and commits it only when the result is
// valid. On failure q is left exactly as it was.
func Attempt[R interface{ Valid() bool }](q *Queue, fn func(*Queue) R) R {
	s := q.Split()
	res := fn(s)
	if res.Valid() {
		s.Commit()
	} else {
		tracer().Debugf("attempt rolled back at token %d", q.pos)
	}
	return res
}

// Slice runs fn against the view of q ending before the first boundary token
// and commits its consumption whatever the result. Without a boundary token
// nothing runs and Slice returns false.
func Slice[R any](q *Queue, boundary func(token.Token) bool, fn func(*Queue) R) (R, bool) {
	s, ok := q.SliceBefore(boundary)
	if !ok {
		var zero R
		return zero, false
	}
	res := fn(s)
	s.Commit()
	return res, true
}

// Is returns a boundary predicate matching any of the given types.
func Is(types ...*token.Type) func(token.Token) bool {
	return func(tok token.Token) bool {
		for _, typ := range types {
			if tok.Is(typ) {
				return true
			}
		}
		return false
	}
}
