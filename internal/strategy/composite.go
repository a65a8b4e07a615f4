package strategy

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/queue"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

type listBuilder[T any] struct {
	items    []T
	problems []Problem
}

// ListOf consumes one or more elements. With a separator type the elements
// must be separated by it; with nil they follow each other.
func ListOf[T any](elem Strategy[T], sep *token.Type) Strategy[[]T] {
	return FromBuilder("list of "+elem.ID(),
		func() listBuilder[T] { return listBuilder[T]{} },
		elem.CanConsume,
		func(b listBuilder[T], q *queue.Queue) listBuilder[T] {
			for {
				before := q.Len()
				res := elem.Consume(q)
				if !res.Valid() {
					b.problems = append(b.problems, res.Problems...)
					return b
				}

				if sep == nil {
					// An element that consumes nothing would match forever;
					// it ends the list.
					if q.Len() == before {
						if len(b.items) == 0 {
							b.items = append(b.items, res.Value)
						}
						return b
					}
					b.items = append(b.items, res.Value)
					if !elem.CanConsume(q) {
						return b
					}
					continue
				}
				b.items = append(b.items, res.Value)
				if !NextIs(q, sep) {
					return b
				}
				q.ConsumeWhitespace()
				q.Poll()
			}
		},
		func(b listBuilder[T]) Result[[]T] {
			return Result[[]T]{Value: b.items, Problems: b.problems}
		})
}

// KV is a parsed key-value pair.
type KV[K, V any] struct {
	Key   K
	Value V
}

// Pair consumes key, a separator token, and value.
func Pair[K, V any](key Strategy[K], sep *token.Type, value Strategy[V]) Strategy[KV[K, V]] {
	return Func("pair of "+key.ID()+" and "+value.ID(), key.CanConsume,
		func(q *queue.Queue) Result[KV[K, V]] {
			k := key.Consume(q)
			if !k.Valid() {
				return Cast[KV[K, V]](k)
			}
			if !NextIs(q, sep) {
				return Fail[KV[K, V]](q, "expected %s after %s", sep, key.ID())
			}
			q.ConsumeWhitespace()
			q.Poll()
			v := value.Consume(q)
			if !v.Valid() {
				return Cast[KV[K, V]](v)
			}
			return Ok(KV[K, V]{Key: k.Value, Value: v.Value})
		})
}

// MapOf consumes separated pairs into a map. A repeated key keeps its last
// value.
func MapOf[K comparable, V any](pair Strategy[KV[K, V]], sep *token.Type) Strategy[map[K]V] {
	list := ListOf(pair, sep)
	return Func("map of "+pair.ID(), list.CanConsume, func(q *queue.Queue) Result[map[K]V] {
		return Map(list.Consume(q), func(kvs []KV[K, V]) map[K]V {
			m := make(map[K]V, len(kvs))
			for _, kv := range kvs {
				m[kv.Key] = kv.Value
			}
			return m
		})
	})
}

// Grouped consumes open, inner, close.
func Grouped[T any](open *token.Type, inner Strategy[T], closing *token.Type) Strategy[T] {
	return Func(inner.ID()+" in "+open.ID(),
		func(q *queue.Queue) bool { return NextIs(q, open) },
		func(q *queue.Queue) Result[T] {
			if !NextIs(q, open) {
				return Fail[T](q, "expected %s", open)
			}
			q.ConsumeWhitespace()
			q.Poll()
			res := inner.Consume(q)
			if !res.Valid() {
				return res
			}
			if !NextIs(q, closing) {
				return Fail[T](q, "expected %s", closing)
			}
			q.ConsumeWhitespace()
			q.Poll()
			return res
		})
}

// FirstOf tries alternatives in order and returns the first valid result.
func FirstOf[T any](alternatives ...Strategy[T]) Strategy[T] {
	ids := make([]string, len(alternatives))
	for i, alt := range alternatives {
		ids[i] = alt.ID()
	}
	id := "one of " + strings.Join(ids, ", ")

	return Func(id,
		func(q *queue.Queue) bool {
			for _, alt := range alternatives {
				if alt.CanConsume(q) {
					return true
				}
			}
			return false
		},
		func(q *queue.Queue) Result[T] {
			var problems []Problem
			for _, alt := range alternatives {
				if !alt.CanConsume(q) {
					continue
				}
				res := alt.Consume(q)
				if res.Valid() {
					return res
				}
				problems = append(problems, res.Problems...)
			}
			if len(problems) > 0 {
				return Result[T]{Problems: problems}
			}
			if tok, ok := Next(q); ok {
				return FailAt[T](tok, "expected %s, found %s", id, tok.Type)
			}
			return Fail[T](q, "expected %s, found end of input", id)
		})
}

// Optional returns fallback without consuming when s cannot start or fails.
func Optional[T any](s Strategy[T], fallback T) Strategy[T] {
	return Func("optional "+s.ID(),
		func(*queue.Queue) bool { return true },
		func(q *queue.Queue) Result[T] {
			if !s.CanConsume(q) {
				return Ok(fallback)
			}
			if res := s.Consume(q); res.Valid() {
				return res
			}
			return Ok(fallback)
		})
}

// Convert maps the value of every result s produces.
func Convert[T, U any](s Strategy[T], fn func(T) U) Strategy[U] {
	return Func(s.ID(), s.CanConsume, func(q *queue.Queue) Result[U] {
		return Map(s.Consume(q), fn)
	})
}
