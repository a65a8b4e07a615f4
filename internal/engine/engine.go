// Package engine runs a complete pass: tokenize input with a registered
// family, hand the stream to a consumer strategy, and collect the side
// channels the flags ask for.
package engine

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/queue"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/strategy"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

func tracer() tracing.Trace {
	return tracing.Select("fconfig.engine")
}

// Options select the family and flags of a run.
type Options struct {
	Family   lexer.Family
	Flags    Flags
	Out      io.Writer       // token stream output; nil discards it
	Registry *lexer.Registry // nil means lexer.DefaultRegistry
}

// Timing is the breakdown recorded under the timing flag.
type Timing struct {
	Normalize time.Duration
	Tokenize  time.Duration
	Consume   time.Duration
}

// Total is the sum of all phases.
func (t *Timing) Total() time.Duration {
	return t.Normalize + t.Tokenize + t.Consume
}

func (t *Timing) String() string {
	return fmt.Sprintf("normalize %v, tokenize %v, consume %v, total %v",
		t.Normalize, t.Tokenize, t.Consume, t.Total())
}

// Frequency counts tokens per type.
type Frequency map[*token.Type]int

// Count is one row of a frequency table.
type Count struct {
	Type  *token.Type
	Count int
}

// Sorted returns the rows by descending count, ties broken by type id.
func (f Frequency) Sorted() []Count {
	rows := make([]Count, 0, len(f))
	for typ, n := range f {
		rows = append(rows, Count{Type: typ, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Type.ID() < rows[j].Type.ID()
	})
	return rows
}

// Write prints the table, one "TYPE count" row per line.
func (f Frequency) Write(w io.Writer) error {
	for _, row := range f.Sorted() {
		if _, err := fmt.Fprintf(w, "%-20s %d\n", row.Type.ID(), row.Count); err != nil {
			return err
		}
	}
	return nil
}

// Result is everything a run produced.
type Result[T any] struct {
	Value      strategy.Result[T]
	TokenCount int
	Tokens     []token.Token
	// Incomplete is set when input ended inside a multi-line construct.
	Incomplete bool
	Pending    string
	Timing     *Timing   // nil unless the timing flag is set
	Frequency  Frequency // nil unless the frequency flag is set
}

// Valid reports whether the consumer produced a valid value.
func (r Result[T]) Valid() bool {
	return r.Value.Valid()
}

// Run tokenizes already normalized lines and hands the stream to consumer.
// A nil consumer only tokenizes.
func Run[T any](lines []string, opts Options, consumer strategy.Strategy[T]) Result[T] {
	return run(lines, opts, consumer, 0)
}

// RunString normalizes text and runs it.
func RunString[T any](text string, opts Options, consumer strategy.Strategy[T]) Result[T] {
	start := time.Now()
	lines := lexer.SplitLines(lexer.Normalize(text))
	return run(lines, opts, consumer, time.Since(start))
}

// RunReader normalizes everything r yields and runs it.
func RunReader[T any](r io.Reader, opts Options, consumer strategy.Strategy[T]) (Result[T], error) {
	start := time.Now()
	text, err := lexer.ReadNormalized(r)
	if err != nil {
		return Result[T]{}, fmt.Errorf("reading input: %w", err)
	}
	return run(lexer.SplitLines(text), opts, consumer, time.Since(start)), nil
}

func run[T any](lines []string, opts Options, consumer strategy.Strategy[T], normalize time.Duration) Result[T] {
	reg := opts.Registry
	if reg == nil {
		reg = lexer.DefaultRegistry
	}

	start := time.Now()
	d := reg.NewDriver(opts.Family, lexer.Options{EmitEOL: opts.Flags.EOL})
	for _, line := range lines {
		d.Feed(line)
	}
	out := d.Close()
	tokenize := time.Since(start)

	res := Result[T]{
		TokenCount: len(out.Tokens),
		Tokens:     out.Tokens,
		Incomplete: out.Incomplete,
		Pending:    out.Pending,
	}
	tracer().Debugf("%s: %d lines, %d tokens", opts.Family, len(lines), len(out.Tokens))

	if opts.Flags.Print && opts.Out != nil {
		if err := PrintTokens(opts.Out, out.Tokens); err != nil {
			tracer().Errorf("printing tokens: %v", err)
		}
	}
	if opts.Flags.Frequency {
		res.Frequency = make(Frequency)
		for _, tok := range out.Tokens {
			res.Frequency[tok.Type]++
		}
	}

	start = time.Now()
	if consumer != nil {
		q := queue.New(out.Tokens)
		if consumer.CanConsume(q) {
			res.Value = consumer.Consume(q)
		} else {
			res.Value = strategy.Fail[T](q, "input does not start a %s", consumer.ID())
		}
	}
	consume := time.Since(start)

	if opts.Flags.Timing {
		res.Timing = &Timing{Normalize: normalize, Tokenize: tokenize, Consume: consume}
		tracer().Infof("%s: %v", opts.Family, res.Timing)
	}
	return res
}

// PrintTokens writes one "line:col TYPE value [message]" line per token.
func PrintTokens(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		if _, err := io.WriteString(w, FormatToken(tok)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FormatToken renders a token the way PrintTokens does.
func FormatToken(tok token.Token) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d %s %s", tok.Line, tok.Column, tok.Type.ID(), strconv.Quote(tok.Text()))
	if tok.Message != "" {
		fmt.Fprintf(&sb, " [%s]", tok.Message)
	}
	return sb.String()
}
