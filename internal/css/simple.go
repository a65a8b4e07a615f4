package css

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

type whitespaceProducer struct{}

func (whitespaceProducer) ID() string { return "whitespace" }

func (whitespaceProducer) CanProduce(r *cursor.Reader) bool {
	return cursor.IsWhitespace(r.Peek())
}

func (whitespaceProducer) Produce(ctx *lexer.Context) bool {
	start := ctx.Mark()
	ctx.Reader.SkipWhitespace()
	ctx.Emit(Whitespace, ctx.Reader.Text(start, ctx.Reader.Pos()), start)
	return true
}

// hashProducer handles #name and the bare # delimiter.
type hashProducer struct{}

func (hashProducer) ID() string { return "hash" }

func (hashProducer) CanProduce(r *cursor.Reader) bool {
	return r.Peek() == '#'
}

func (hashProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	start := ctx.Mark()
	r.Read()
	if r.CanRead() && (isName(r.Peek()) || validEscape(r, 0)) {
		ctx.Emit(Hash, consumeName(r), start)
		return true
	}
	ctx.Emit(Delim, '#', start)
	return true
}

// atProducer handles @keyword and the bare @ delimiter.
type atProducer struct{}

func (atProducer) ID() string { return "at" }

func (atProducer) CanProduce(r *cursor.Reader) bool {
	return r.Peek() == '@'
}

func (atProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	start := ctx.Mark()
	r.Read()
	if startsIdent(r, 0) {
		ctx.Emit(AtKeyword, consumeName(r), start)
		return true
	}
	ctx.Emit(Delim, '@', start)
	return true
}

// fixedProducer emits a unit token for one of a set of literal sequences,
// longest match first.
type fixedProducer struct {
	id    string
	types map[string]*token.Type
	seqs  []string
}

func newFixedProducer(id string, types map[string]*token.Type) *fixedProducer {
	p := &fixedProducer{id: id, types: types}
	for seq := range types {
		p.seqs = append(p.seqs, seq)
	}
	return p
}

func (p *fixedProducer) ID() string { return p.id }

func (p *fixedProducer) CanProduce(r *cursor.Reader) bool {
	_, ok := r.PeekCandidate(p.seqs)
	return ok
}

func (p *fixedProducer) Produce(ctx *lexer.Context) bool {
	seq, _ := ctx.Reader.PeekCandidate(p.seqs)
	start := ctx.Mark()
	ctx.Reader.Advance(len([]rune(seq)))
	ctx.Emit(p.types[seq], token.Unit{}, start)
	return true
}

var (
	cdcProducer = newFixedProducer("cdc", map[string]*token.Type{"-->": CDC})
	cdoProducer = newFixedProducer("cdo", map[string]*token.Type{"<!--": CDO})

	matchProducer = newFixedProducer("match", map[string]*token.Type{
		"~=": IncludeMatch,
		"|=": DashMatch,
		"^=": PrefixMatch,
		"$=": SuffixMatch,
		"*=": SubstringMatch,
		"||": Column,
	})

	punctuationProducer = newFixedProducer("punctuation", map[string]*token.Type{
		":": Colon,
		";": Semicolon,
		",": Comma,
		"{": LBrace,
		"}": RBrace,
		"[": LBracket,
		"]": RBracket,
		"(": LParen,
		")": RParen,
	})
)

// delimiters are the characters with a meaning in selectors and values.
const delimiters = ".!+>~*/<=&$^|?%-"

type delimProducer struct{}

func (delimProducer) ID() string { return "delim" }

func (delimProducer) CanProduce(r *cursor.Reader) bool {
	return r.CanRead() && strings.ContainsRune(delimiters, r.Peek())
}

func (delimProducer) Produce(ctx *lexer.Context) bool {
	start := ctx.Mark()
	ctx.Emit(Delim, ctx.Reader.Read(), start)
	return true
}

// catchAllProducer takes any remaining character, so the theme family never
// leaves input to the driver's unknown runs.
type catchAllProducer struct{}

func (catchAllProducer) ID() string { return "catch-all" }

func (catchAllProducer) CanProduce(r *cursor.Reader) bool {
	return r.CanRead()
}

func (catchAllProducer) Produce(ctx *lexer.Context) bool {
	start := ctx.Mark()
	ch := ctx.Reader.Read()
	ctx.EmitError(BadChar, ch, start, "unexpected character "+describe(ch))
	return true
}
