package css

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
)

// DecodeEscape consumes an escape starting at the backslash under the cursor
// and returns the character it denotes. One to six hex digits (plus one
// optional whitespace character) give a code point; zero, surrogates and
// values above U+10FFFF decode to U+FFFD. Any other character stands for
// itself. A backslash at the end of the line decodes to U+FFFD; callers that
// give the escaped line break a meaning check for it first.
func DecodeEscape(r *cursor.Reader) rune {
	r.Read()
	if !r.CanRead() {
		return utf8.RuneError
	}
	if !isHex(r.Peek()) {
		return r.Read()
	}

	var v rune
	for n := 0; n < 6 && r.CanRead() && isHex(r.Peek()); n++ {
		v = v*16 + hexValue(r.Read())
	}
	if r.CanRead() && cursor.IsWhitespace(r.Peek()) {
		r.Read()
	}
	if v == 0 || v > unicode.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return utf8.RuneError
	}
	return v
}

// validEscape reports whether the reader is at a backslash that starts an
// escape, which requires a character after it on the same line.
func validEscape(r *cursor.Reader, offset int) bool {
	return r.Peek(offset) == '\\' && r.CanRead(offset+2)
}

// startsIdent reports whether an identifier starts at offset.
func startsIdent(r *cursor.Reader, offset int) bool {
	if !r.CanRead(offset + 1) {
		return false
	}
	switch ch := r.Peek(offset); {
	case ch == '-':
		next := r.Peek(offset + 1)
		return r.CanRead(offset+2) && (isNameStart(next) || next == '-' || validEscape(r, offset+1))
	case isNameStart(ch):
		return true
	default:
		return validEscape(r, offset)
	}
}

// consumeName reads name characters and escapes.
func consumeName(r *cursor.Reader) string {
	var sb strings.Builder
	for r.CanRead() {
		ch := r.Peek()
		switch {
		case isName(ch):
			sb.WriteRune(r.Read())
		case validEscape(r, 0):
			sb.WriteRune(DecodeEscape(r))
		default:
			return sb.String()
		}
	}
	return sb.String()
}

func isNameStart(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= utf8.RuneSelf
}

func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHex(ch rune) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func hexValue(ch rune) rune {
	switch {
	case isDigit(ch):
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}

// isNonPrintable matches the control characters a bare url may not contain.
func isNonPrintable(ch rune) bool {
	return ch <= 0x08 || ch == 0x0B || ch >= 0x0E && ch <= 0x1F || ch == 0x7F
}
