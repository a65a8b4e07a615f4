// Package lexer drives tokenizer producers over lines of input. The producers
// themselves live with their language (see package css); this package owns
// the line loop, cross-line continuation, unknown-run folding and the
// registry of tokenizer families.
package lexer

import (
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/errors"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

func tracer() tracing.Trace {
	return tracing.Select("fconfig.lexer")
}

// Options tune the driver.
type Options struct {
	// EmitEOL appends an end-of-line marker after every line that does not
	// end inside an open construct. The final marker becomes end-of-file.
	EmitEOL bool
}

// Output is the result of a complete tokenization run.
type Output struct {
	Tokens []token.Token
	// Incomplete is set when input ended inside a multi-line construct.
	Incomplete bool
	// Pending names the producer that was still open.
	Pending string
}

// driverState is either stateIdle or statePending.
type driverState interface {
	isDriverState()
}

type stateIdle struct{}

// statePending carries an unfinished construct over a line boundary.
type statePending struct {
	producer Resumable
	data     any
}

func (stateIdle) isDriverState()    {}
func (statePending) isDriverState() {}

// Driver tokenizes input line by line. A driver is not safe for concurrent
// use; each document gets its own.
type Driver struct {
	producers []Producer
	opts      Options

	state   driverState
	tokens  []token.Token
	line    int
	lastLen int
	closed  bool
}

// NewDriver returns a driver trying producers in the given order.
func NewDriver(producers []Producer, opts Options) *Driver {
	return &Driver{
		producers: producers,
		opts:      opts,
		state:     stateIdle{},
	}
}

// Tokenize runs producers over already normalized lines.
func Tokenize(producers []Producer, lines []string, opts Options) Output {
	d := NewDriver(producers, opts)
	for _, line := range lines {
		d.Feed(line)
	}
	return d.Close()
}

// TokenizeString normalizes text and tokenizes it.
func TokenizeString(producers []Producer, text string, opts Options) Output {
	return Tokenize(producers, SplitLines(Normalize(text)), opts)
}

// TokenizeReader normalizes and tokenizes everything r yields.
func TokenizeReader(producers []Producer, r io.Reader, opts Options) (Output, error) {
	text, err := ReadNormalized(r)
	if err != nil {
		return Output{}, err
	}
	return Tokenize(producers, SplitLines(text), opts), nil
}

// Pending reports the producer holding an open construct, if any.
func (d *Driver) Pending() (string, bool) {
	if p, ok := d.state.(statePending); ok {
		return p.producer.ID(), true
	}
	return "", false
}

// Line returns the number of lines fed so far.
func (d *Driver) Line() int {
	return d.line
}

// Feed tokenizes the next line, which must not contain a line break, and
// returns the tokens it completed.
func (d *Driver) Feed(text string) []token.Token {
	d.line++
	d.lastLen = len([]rune(text))
	first := len(d.tokens)

	r := cursor.New(text, d.line, 0)
	ctx := &Context{Reader: r, driver: d}

	if p, ok := d.state.(statePending); ok {
		ctx.state = p.data
		if p.producer.Resume(ctx) {
			d.state = stateIdle{}
		} else {
			d.suspend(p.producer, ctx)
		}
	}

	if _, idle := d.state.(stateIdle); idle {
		d.scan(ctx)
	}

	if _, idle := d.state.(stateIdle); idle && d.opts.EmitEOL {
		d.emit(token.New(token.EOL, token.Unit{}, d.line, d.lastLen+1, "\n"))
	}
	return d.tokens[first:]
}

func (d *Driver) scan(ctx *Context) {
	r := ctx.Reader
	unknown := -1

	for r.CanRead() {
		p := d.match(r)
		if p == nil {
			if unknown < 0 {
				unknown = r.Pos()
			}
			r.Read()
			continue
		}
		if unknown >= 0 {
			d.flushUnknown(r, unknown)
			unknown = -1
		}

		col := r.Column()
		ctx.state = nil
		done := p.Produce(ctx)
		if r.Column() <= col {
			panic(errors.NoProgress(p.ID(), r.Line(), col))
		}
		if !done {
			rp, ok := p.(Resumable)
			if !ok {
				panic(errors.NotResumable(p.ID()))
			}
			d.suspend(rp, ctx)
			return
		}
	}
	if unknown >= 0 {
		d.flushUnknown(r, unknown)
	}
}

func (d *Driver) match(r *cursor.Reader) Producer {
	for _, p := range d.producers {
		if p.CanProduce(r) {
			return p
		}
	}
	return nil
}

func (d *Driver) suspend(p Resumable, ctx *Context) {
	if ctx.Reader.CanRead() {
		panic(errors.IncompleteMidLine(p.ID(), ctx.Reader.Line(), ctx.Reader.Column()))
	}
	tracer().Debugf("line %d: %s continues on the next line", d.line, p.ID())
	d.state = statePending{producer: p, data: ctx.state}
}

func (d *Driver) flushUnknown(r *cursor.Reader, start int) {
	raw := r.Text(start, r.Pos())
	d.emit(token.NewError(token.Unknown, raw, r.Line(), r.ColumnAt(start), raw, "unrecognized input "+quoteRun(raw)))
}

func (d *Driver) emit(tok token.Token) {
	d.tokens = append(d.tokens, tok)
}

// Close finishes the run. An open construct is finished as an error token
// and the output is marked incomplete.
func (d *Driver) Close() Output {
	if d.closed {
		return Output{Tokens: d.tokens}
	}
	d.closed = true

	out := Output{}
	if p, ok := d.state.(statePending); ok {
		ctx := &Context{Reader: cursor.New("", d.line, d.lastLen), driver: d, state: p.data}
		p.producer.Finish(ctx)
		out.Incomplete = true
		out.Pending = p.producer.ID()
		d.state = stateIdle{}
		tracer().Infof("input ended inside %s", p.producer.ID())
	}

	if d.opts.EmitEOL {
		if n := len(d.tokens); n > 0 && d.tokens[n-1].Is(token.EOL) {
			last := d.tokens[n-1]
			d.tokens[n-1] = token.New(token.EOF, token.Unit{}, last.Line, last.Column, "")
		} else {
			line := d.line
			if line == 0 {
				line = 1
			}
			d.emit(token.New(token.EOF, token.Unit{}, line, d.lastLen+1, ""))
		}
	}

	out.Tokens = d.tokens
	return out
}

func quoteRun(s string) string {
	if r := []rune(s); len(r) > 20 {
		s = string(r[:17]) + "..."
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
