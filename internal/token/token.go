// Package token defines the atomic parse unit of the theme tokenizer: a typed
// value plus the source position it started at.
package token

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/errors"
)

// Flags classify a token type.
type Flags uint8

const (
	// Error marks malformed input such as a bad number or bad string.
	Error Flags = 1 << iota
	// Whitespace marks tokens consumers usually skip.
	Whitespace
	// Special marks structural markers not drawn from source text.
	Special
)

// Type is the identity of a token kind. Two types are distinct even when their
// ids collide; tokens are matched by pointer identity, never by name.
type Type struct {
	id        string
	family    string
	flags     Flags
	valueType reflect.Type
	render    func(any) string
}

// NewType declares a token type whose tokens carry values of type T. render
// turns a value back into source-like text and may be nil.
func NewType[T any](family, id string, flags Flags, render func(T) string) *Type {
	typ := &Type{
		id:        id,
		family:    family,
		flags:     flags,
		valueType: reflect.TypeOf((*T)(nil)).Elem(),
	}
	if render != nil {
		typ.render = func(v any) string { return render(v.(T)) }
	}
	return typ
}

// ID returns the diagnostic name.
func (t *Type) ID() string { return t.id }

// Family returns the owning tokenizer family.
func (t *Type) Family() string { return t.family }

func (t *Type) IsError() bool      { return t.flags&Error != 0 }
func (t *Type) IsWhitespace() bool { return t.flags&Whitespace != 0 }
func (t *Type) IsSpecial() bool    { return t.flags&Special != 0 }

// Accepts reports whether v has the value type t declares.
func (t *Type) Accepts(v any) bool {
	if v == nil {
		return t.valueType.Kind() == reflect.Interface
	}
	vt := reflect.TypeOf(v)
	if t.valueType.Kind() == reflect.Interface {
		return vt.Implements(t.valueType)
	}
	return vt == t.valueType
}

// Render returns v as source-like text.
func (t *Type) Render(v any) string {
	if t.render != nil {
		return t.render(v)
	}
	return fmt.Sprint(v)
}

func (t *Type) String() string {
	return t.id
}

// Token is an immutable classified unit of source text.
type Token struct {
	Type    *Type
	Value   any
	Line    int    // 1-based line the token starts on
	Column  int    // 1-based column the token starts at
	Message string // empty unless Type.IsError()
	Raw     string // source text the token covers, line breaks included
}

// New creates a well-formed token. It panics when value does not match the
// value type declared by typ.
func New(typ *Type, value any, line, column int, raw string) Token {
	if !typ.Accepts(value) {
		panic(errors.ValueTypeMismatch(typ.id, value))
	}
	return Token{Type: typ, Value: value, Line: line, Column: column, Raw: raw}
}

// NewError creates a token carrying a diagnostic message.
func NewError(typ *Type, value any, line, column int, raw, message string) Token {
	tok := New(typ, value, line, column, raw)
	tok.Message = message
	return tok
}

// Is reports whether the token has type typ.
func (t Token) Is(typ *Type) bool {
	return t.Type == typ
}

// IsError reports whether the token marks malformed input.
func (t Token) IsError() bool {
	return t.Type != nil && t.Type.IsError()
}

// Equal compares tokens structurally over type identity, value, position,
// message and raw text.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type &&
		t.Line == other.Line &&
		t.Column == other.Column &&
		t.Message == other.Message &&
		t.Raw == other.Raw &&
		reflect.DeepEqual(t.Value, other.Value)
}

// Text renders the value back to source-like text.
func (t Token) Text() string {
	if t.Type == nil {
		return ""
	}
	return t.Type.Render(t.Value)
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == nil {
		return "{<nil>}"
	}
	s := fmt.Sprintf("{Type: %s, Value: %s, Line: %d, Column: %d", t.Type.id, strconv.Quote(t.Text()), t.Line, t.Column)
	if t.Message != "" {
		s += ", Message: " + strconv.Quote(t.Message)
	}
	return s + "}"
}

// ValueOf returns the token's value as T.
func ValueOf[T any](t Token) (T, bool) {
	v, ok := t.Value.(T)
	return v, ok
}

// Key is a comparable form of a token, usable as a map key.
type Key struct {
	Type    *Type
	Value   string
	Line    int
	Column  int
	Message string
	Raw     string
}

// Key returns the token's hashable key.
func (t Token) Key() Key {
	return Key{
		Type:    t.Type,
		Value:   fmt.Sprintf("%#v", t.Value),
		Line:    t.Line,
		Column:  t.Column,
		Message: t.Message,
		Raw:     t.Raw,
	}
}
