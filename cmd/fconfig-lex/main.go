// Command fconfig-lex tokenizes theme documents and prints the token stream.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/batch"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/cli"
	_ "github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/engine"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/highlight"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/watch"
)

const toolName = "fconfig-lex"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// lexer holds the resolved settings of one invocation.
type lexer struct {
	opts      engine.Options
	jsonOut   bool
	highlight bool
	color     bool
	jobs      int
	log       *cli.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := cli.RegisterCommonFlags(fs)
	useStdin := fs.Bool("stdin", false, "read a document from standard input")
	watchMode := fs.Bool("watch", false, "re-tokenize files when they change")
	hl := fs.Bool("highlight", false, "print the highlighted source instead of the token list")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [OPTIONS] [FILES...]\n\n", toolName)
		fmt.Fprintf(stderr, "Tokenize theme documents and print one line per token.\n\n")
		fmt.Fprintf(stderr, "OPTIONS:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(stderr, "  %s theme.css                       # Print the token stream\n", toolName)
		fmt.Fprintf(stderr, "  %s -flags eol,frequency a.css b.css # Token streams plus frequency tables\n", toolName)
		fmt.Fprintf(stderr, "  cat theme.css | %s -stdin -json      # Token stream as JSON lines\n", toolName)
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.Version {
		cli.PrintVersion(stdout, toolName, common.JSON)
		return 0
	}

	cfg, err := common.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	log := cli.NewLogger(cfg.Verbose, cfg.Debug)
	log.Out = stderr

	opts, err := cfg.EngineOptions(nil, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	color := false
	if f, ok := stdout.(*os.File); ok {
		color = cfg.UseColor(f)
	} else {
		color = cfg.Color == "always"
	}
	lx := &lexer{opts: opts, jsonOut: common.JSON, highlight: *hl, color: color, jobs: cfg.Jobs, log: log}

	if *useStdin {
		out, err := lx.document("<stdin>", stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		io.WriteString(stdout, out)
		return 0
	}

	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return 2
	}
	if err := lx.files(context.Background(), files, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *watchMode {
		return lx.watch(files, stdout, stderr)
	}
	return 0
}

// files tokenizes files concurrently and prints the results in order.
func (lx *lexer) files(ctx context.Context, files []string, stdout io.Writer) error {
	outs, err := batch.Process(ctx, files, lx.jobs, func(_ context.Context, path string) (string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return lx.document(path, f)
	})
	if err != nil {
		return err
	}
	for i, out := range outs {
		if len(files) > 1 && !lx.jsonOut {
			fmt.Fprintf(stdout, "==> %s <==\n", files[i])
		}
		io.WriteString(stdout, out)
	}
	return nil
}

// document tokenizes one input and renders everything the flags ask for.
func (lx *lexer) document(name string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	opts := lx.opts
	opts.Out = nil
	res, err := engine.RunReader[any](r, opts, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	lx.log.Info("%s: %d tokens", name, res.TokenCount)
	if res.Incomplete {
		lx.log.Warn("%s: input ended inside an open %s", name, res.Pending)
	}

	switch {
	case lx.jsonOut:
		enc := json.NewEncoder(&buf)
		for _, tok := range res.Tokens {
			if err := enc.Encode(jsonToken(name, tok)); err != nil {
				return "", err
			}
		}
	case lx.highlight:
		buf.WriteString(highlight.ForWriter(&buf, lx.color).Render(res.Tokens))
		if !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteByte('\n')
		}
	default:
		if err := engine.PrintTokens(&buf, res.Tokens); err != nil {
			return "", err
		}
	}

	if res.Frequency != nil {
		fmt.Fprintf(&buf, "-- frequency (%d tokens)\n", res.TokenCount)
		if err := res.Frequency.Write(&buf); err != nil {
			return "", err
		}
	}
	if res.Timing != nil {
		fmt.Fprintf(&buf, "-- timing: %v\n", res.Timing)
	}
	return buf.String(), nil
}

type tokenJSON struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Type    string `json:"type"`
	Text    string `json:"text"`
	Raw     string `json:"raw"`
	Error   bool   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func jsonToken(file string, tok token.Token) tokenJSON {
	return tokenJSON{
		File:    file,
		Line:    tok.Line,
		Column:  tok.Column,
		Type:    tok.Type.ID(),
		Text:    tok.Text(),
		Raw:     tok.Raw,
		Error:   tok.IsError(),
		Message: tok.Message,
	}
}

func (lx *lexer) watch(files []string, stdout, stderr io.Writer) int {
	w, err := watch.NewFSWatcher()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lx.log.Info("watching %d file(s)", len(files))
	err = watch.Run(ctx, w, files, 100*time.Millisecond, func(path string) {
		if err := lx.files(ctx, []string{path}, stdout); err != nil {
			lx.log.Error("%v", err)
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
