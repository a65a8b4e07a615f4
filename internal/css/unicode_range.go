package css

import (
	"fmt"
	"unicode"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
)

// unicodeRangeProducer scans U+ ranges: U+26, U+0-7F, U+4??.
type unicodeRangeProducer struct{}

func (unicodeRangeProducer) ID() string { return "unicode-range" }

func (unicodeRangeProducer) CanProduce(r *cursor.Reader) bool {
	ch := r.Peek()
	next := r.Peek(2)
	return r.CanRead(3) && (ch == 'u' || ch == 'U') && r.Peek(1) == '+' && (isHex(next) || next == '?')
}

func (unicodeRangeProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	start := ctx.Mark()
	r.Advance(2)

	var lo, hi rune
	n, wild := 0, 0
	for n < 6 && r.CanRead() && isHex(r.Peek()) {
		v := hexValue(r.Read())
		lo, hi = lo*16+v, hi*16+v
		n++
	}
	for n < 6 && r.CanRead() && r.Peek() == '?' {
		r.Read()
		lo, hi = lo*16, hi*16+0xF
		n++
		wild++
	}

	if wild == 0 && r.CanRead(2) && r.Peek() == '-' && isHex(r.Peek(1)) {
		r.Read()
		hi = 0
		for n := 0; n < 6 && r.CanRead() && isHex(r.Peek()); n++ {
			hi = hi*16 + hexValue(r.Read())
		}
	}

	rng := Range{Start: lo, End: hi}
	switch {
	case hi > unicode.MaxRune:
		ctx.EmitError(BadUnicodeRange, rng, start, fmt.Sprintf("unicode range end %X is above U+10FFFF", hi))
	case lo > hi:
		ctx.EmitError(BadUnicodeRange, rng, start, fmt.Sprintf("unicode range start %X is after end %X", lo, hi))
	default:
		ctx.Emit(UnicodeRange, rng, start)
	}
	return true
}
