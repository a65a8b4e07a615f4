// Package cursor implements the character cursor the theme producers read
// from. A Reader covers exactly one line of normalized input; line breaks are
// never part of its text.
package cursor

import (
	"strings"
	"unicode/utf8"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/errors"
)

// Reader is a cursor over the runes of a single line.
type Reader struct {
	text   []rune
	pos    int // index of the next rune to read
	end    int // exclusive bound of readable runes
	line   int // 1-based line number
	offset int // column offset of text[0], so Column() reports source columns
}

// New returns a reader over text. line is the 1-based source line and
// columnOffset the number of columns that precede text on that line.
func New(text string, line, columnOffset int) *Reader {
	runes := []rune(text)
	return &Reader{
		text:   runes,
		end:    len(runes),
		line:   line,
		offset: columnOffset,
	}
}

// CanRead reports whether at least n more runes remain. Without an argument
// it checks for a single rune.
func (r *Reader) CanRead(n ...int) bool {
	want := 1
	if len(n) > 0 {
		want = n[0]
	}
	return r.pos+want <= r.end
}

// Peek returns the rune at offset from the current position without
// consuming it, or utf8.RuneError when that position is out of range.
func (r *Reader) Peek(offset ...int) rune {
	i := r.pos
	if len(offset) > 0 {
		i += offset[0]
	}
	if i < 0 || i >= r.end {
		return utf8.RuneError
	}
	return r.text[i]
}

// Read consumes and returns the next rune. Callers must gate with CanRead.
func (r *Reader) Read() rune {
	if r.pos >= r.end {
		panic(errors.ReadPastEnd(r.line, r.Column()))
	}
	ch := r.text[r.pos]
	r.pos++
	return ch
}

// Advance consumes n runes.
func (r *Reader) Advance(n int) {
	if n < 0 || r.pos+n > r.end {
		panic(errors.ReadPastEnd(r.line, r.Column()+n))
	}
	r.pos += n
}

// PeekFor reports whether the remaining input starts with seq.
func (r *Reader) PeekFor(seq string) bool {
	i := r.pos
	for _, ch := range seq {
		if i >= r.end || r.text[i] != ch {
			return false
		}
		i++
	}
	return true
}

// PeekCandidate returns the longest candidate the remaining input starts
// with.
func (r *Reader) PeekCandidate(candidates []string) (string, bool) {
	return r.peekCandidate(candidates, false)
}

// PeekCandidateFold is PeekCandidate with ASCII case folding, used for
// keywords and units.
func (r *Reader) PeekCandidateFold(candidates []string) (string, bool) {
	return r.peekCandidate(candidates, true)
}

func (r *Reader) peekCandidate(candidates []string, fold bool) (string, bool) {
	best, found := "", false
	for _, c := range candidates {
		n := utf8.RuneCountInString(c)
		if !r.CanRead(n) || (found && n <= utf8.RuneCountInString(best)) {
			continue
		}
		s := string(r.text[r.pos : r.pos+n])
		if s == c || (fold && strings.EqualFold(s, c)) {
			best, found = c, true
		}
	}
	return best, found
}

// SkipWhitespace consumes spaces and tabs and returns how many were skipped.
func (r *Reader) SkipWhitespace() int {
	return r.SkipIf(IsWhitespace)
}

// SkipIf consumes runes while pred holds and returns how many were skipped.
func (r *Reader) SkipIf(pred func(rune) bool) int {
	start := r.pos
	for r.pos < r.end && pred(r.text[r.pos]) {
		r.pos++
	}
	return r.pos - start
}

// SubReader borrows the runes from the current position up to end (an index
// relative to the current position). The parent moves past the borrowed
// region immediately; the child reports true source columns.
func (r *Reader) SubReader(end int) *Reader {
	if end < 0 || r.pos+end > r.end {
		panic(errors.InvalidSubReader(end, r.pos, r.end))
	}
	child := &Reader{
		text:   r.text,
		pos:    r.pos,
		end:    r.pos + end,
		line:   r.line,
		offset: r.offset,
	}
	r.pos += end
	return child
}

// Split returns an independent reader positioned where r is. Reading from the
// split never moves r.
func (r *Reader) Split() *Reader {
	cp := *r
	return &cp
}

// Line returns the 1-based line number.
func (r *Reader) Line() int {
	return r.line
}

// Column returns the 1-based source column of the next rune.
func (r *Reader) Column() int {
	return r.offset + r.pos + 1
}

// ColumnAt returns the source column of the rune at index i.
func (r *Reader) ColumnAt(i int) int {
	return r.offset + i + 1
}

// Pos returns the index of the next rune within the line.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the number of runes left to read.
func (r *Reader) Len() int {
	return r.end - r.pos
}

// Text returns the runes between two absolute indices as a string.
func (r *Reader) Text(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > r.end {
		to = r.end
	}
	if from >= to {
		return ""
	}
	return string(r.text[from:to])
}

// Remaining returns the unread part of the line.
func (r *Reader) Remaining() string {
	return r.Text(r.pos, r.end)
}

// IsWhitespace reports whether ch is in-line whitespace. Line breaks never
// reach a Reader.
func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}
