// Command fconfig-check parses theme stylesheets and reports every problem
// with its source position. It exits with status 1 when any error is found.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/batch"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/cli"
	_ "github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/diagnostics"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/engine"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/position"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/stylesheet"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/watch"
)

const toolName = "fconfig-check"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// report is the outcome for one document.
type report struct {
	Path         string `json:"path"`
	Rules        int    `json:"rules"`
	Declarations int    `json:"declarations"`
	Errors       int    `json:"errors"`

	source      *position.SourceFile
	diagnostics []diagnostics.Diagnostic
}

type checker struct {
	opts      engine.Options
	jobs      int
	maxErrors int
	color     bool
	summary   bool
	jsonOut   bool
	log       *cli.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := cli.RegisterCommonFlags(fs)
	useStdin := fs.Bool("stdin", false, "read a stylesheet from standard input")
	summary := fs.Bool("summary", false, "print rule and declaration counts per file")
	watchMode := fs.Bool("watch", false, "re-check files when they change")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [OPTIONS] [FILES...]\n\n", toolName)
		fmt.Fprintf(stderr, "Parse theme stylesheets and print diagnostics.\n\n")
		fmt.Fprintf(stderr, "OPTIONS:\n")
		fs.PrintDefaults()
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
	opts, err := cfg.EngineOptions(nil, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	// Positions in diagnostics need line markers.
	opts.Flags.EOL = true
	opts.Flags.Print = false

	log := cli.NewLogger(cfg.Verbose, cfg.Debug)
	log.Out = stderr
	color := cfg.Color == "always"
	if f, ok := stdout.(*os.File); ok {
		color = cfg.UseColor(f)
	}
	c := &checker{
		opts:      opts,
		jobs:      cfg.Jobs,
		maxErrors: cfg.MaxErrors,
		color:     color,
		summary:   *summary,
		jsonOut:   common.JSON,
		log:       log,
	}

	var reports []report
	var files []string
	if *useStdin {
		rep, err := c.check("<stdin>", stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		reports = []report{rep}
	} else {
		files = fs.Args()
		if len(files) == 0 {
			fs.Usage()
			return 2
		}
		reports, err = c.checkFiles(context.Background(), files)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	failed := c.print(reports, stdout)
	if *watchMode && len(files) > 0 {
		return c.watch(files, stdout, stderr)
	}
	if failed {
		return 1
	}
	return 0
}

func (c *checker) checkFiles(ctx context.Context, files []string) ([]report, error) {
	return batch.Process(ctx, files, c.jobs, func(_ context.Context, path string) (report, error) {
		f, err := os.Open(path)
		if err != nil {
			return report{}, err
		}
		defer f.Close()
		return c.check(path, f)
	})
}

// check parses one stylesheet and collects its diagnostics.
func (c *checker) check(name string, r io.Reader) (report, error) {
	text, err := lexer.ReadNormalized(r)
	if err != nil {
		return report{}, fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	res := engine.Run(lexer.SplitLines(text), c.opts, stylesheet.Strategy())
	c.log.Debug("%s: %d tokens in %v", name, res.TokenCount, time.Since(start))
	if res.Timing != nil {
		c.log.Info("%s: %v", name, res.Timing)
	}

	rep := report{Path: name, source: position.NewSourceFile(name, text)}
	rep.diagnostics = append(rep.diagnostics, diagnostics.FromTokens(name, res.Tokens)...)
	rep.diagnostics = append(rep.diagnostics, diagnostics.FromProblems(name, res.Value.Problems)...)
	if res.Incomplete {
		rep.diagnostics = append(rep.diagnostics, diagnostics.Incomplete(name, res.Pending, len(rep.source.Lines)))
	}
	if sheet := res.Value.Value; sheet != nil {
		rep.Rules, rep.Declarations = sheet.Counts()
	}
	return rep, nil
}

// print renders the reports in order and reports whether any error was
// found.
func (c *checker) print(reports []report, stdout io.Writer) bool {
	dm := diagnostics.NewDiagnosticManager()
	dm.SetErrorLimit(c.maxErrors)
	for i := range reports {
		dm.AddSource(reports[i].source)
		before := dm.GetErrorCount() + dm.Dropped()
		dm.AddAll(reports[i].diagnostics)
		reports[i].Errors = dm.GetErrorCount() + dm.Dropped() - before
	}

	if c.jsonOut {
		enc := json.NewEncoder(stdout)
		for _, rep := range reports {
			enc.Encode(rep)
		}
		return dm.HasErrors()
	}

	dm.Render(stdout, c.color)
	if c.summary {
		for _, rep := range reports {
			fmt.Fprintf(stdout, "%s: %d rule(s), %d declaration(s), %d error(s)\n",
				rep.Path, rep.Rules, rep.Declarations, rep.Errors)
		}
		fmt.Fprintln(stdout, dm.FormatSummary())
	}
	return dm.HasErrors()
}

func (c *checker) watch(files []string, stdout, stderr io.Writer) int {
	w, err := watch.NewFSWatcher()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = watch.Run(ctx, w, files, 100*time.Millisecond, func(path string) {
		reports, err := c.checkFiles(ctx, []string{path})
		if err != nil {
			c.log.Error("%v", err)
			return
		}
		if !c.print(reports, stdout) {
			fmt.Fprintf(stdout, "%s: ok\n", path)
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
