package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/engine"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/highlight"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// session is the state behind the prompt: one driver fed line by line.
type session struct {
	opts   engine.Options
	driver *lexer.Driver
	hl     *highlight.Highlighter
	freq   engine.Frequency
	seen   int // tokens already shown
}

func newSession(opts engine.Options, color bool) *session {
	s := &session{opts: opts, hl: highlight.ForWriter(io.Discard, color)}
	s.reset()
	return s
}

func (s *session) reset() {
	reg := s.opts.Registry
	if reg == nil {
		reg = lexer.DefaultRegistry
	}
	s.driver = reg.NewDriver(s.opts.Family, lexer.Options{EmitEOL: s.opts.Flags.EOL})
	s.freq = make(engine.Frequency)
	s.seen = 0
}

func (s *session) pending() bool {
	_, ok := s.driver.Pending()
	return ok
}

// handle runs one input line: a :command, or text for the driver.
func (s *session) handle(line string) (string, bool) {
	if strings.HasPrefix(line, ":") && !s.pending() {
		return s.command(strings.Fields(line))
	}
	// A form feed normalizes to a line break, so one input line may feed
	// several driver lines.
	var out strings.Builder
	for _, text := range lexer.SplitLines(lexer.Normalize(line)) {
		toks := s.driver.Feed(text)
		s.seen += len(toks)
		out.WriteString(s.render(toks))
	}
	return out.String(), false
}

// close finishes the document and returns the closing tokens.
func (s *session) close() string {
	out := s.driver.Close()
	var sb strings.Builder
	if out.Incomplete {
		fmt.Fprintf(&sb, "input ended inside an open %s\n", out.Pending)
	}
	// The last end-of-line marker is rewritten to end-of-file on close.
	start := s.seen
	if start > 0 && out.Tokens[start-1].Is(token.EOF) {
		start--
	}
	sb.WriteString(s.render(out.Tokens[start:]))
	s.seen = len(out.Tokens)
	return sb.String()
}

func (s *session) render(toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		s.freq[tok.Type]++
		line := engine.FormatToken(tok)
		if tok.IsError() {
			line = s.hl.Token(token.Token{Type: tok.Type, Raw: line})
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (s *session) command(parts []string) (string, bool) {
	switch parts[0] {
	case ":help", ":h":
		return helpText, false
	case ":quit", ":q", ":exit":
		return s.close(), true
	case ":reset":
		s.reset()
		return "driver reset\n", false
	case ":flags":
		if len(parts) == 1 {
			return fmt.Sprintf("flags: %s\n", s.opts.Flags), false
		}
		flags, err := engine.ParseFlags(strings.Join(parts[1:], ","))
		if err != nil {
			return fmt.Sprintf("Error: %v\n", err), false
		}
		s.opts.Flags = flags
		s.reset()
		return fmt.Sprintf("flags: %s (driver reset)\n", flags), false
	case ":freq":
		var sb strings.Builder
		s.freq.Write(&sb)
		return sb.String(), false
	default:
		return fmt.Sprintf("Unknown command: %s\nType :help for available commands\n", parts[0]), false
	}
}

const helpText = `REPL Commands:
  :help, :h          Show this help
  :quit, :q, :exit   Finish the document and exit
  :reset             Start a new document
  :flags [f,...]     Show or set driver flags (eol)
  :freq              Show token frequencies so far

Any other line is tokenized. While a comment or string is open the
continuation prompt is shown and commands are treated as text.
`
