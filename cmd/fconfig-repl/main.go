// Command fconfig-repl tokenizes theme text interactively. Every line is fed
// to one long-lived driver, so comments and strings may span lines; the
// continuation prompt shows while a construct is open.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/peterh/liner"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cli"
	_ "github.com/fzzyhmstrs/fconfig-sub004/internal/css"
)

const (
	toolName    = "fconfig-repl"
	historyFile = ".fconfig_history"
	promptMain  = "theme> "
	promptCont  = "  ...> "
)

func main() {
	fs := flag.NewFlagSet(toolName, flag.ExitOnError)
	common := cli.RegisterCommonFlags(fs)
	histPath := fs.String("history", "", "history file (default ~/"+historyFile+")")
	fs.Parse(os.Args[1:])

	if common.Version {
		cli.PrintVersion(os.Stdout, toolName, common.JSON)
		return
	}

	cfg, err := common.Load(fs)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	opts, err := cfg.EngineOptions(nil, nil)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	s := newSession(opts, cfg.UseColor(os.Stdout))

	if *histPath == "" {
		home, _ := os.UserHomeDir()
		*histPath = filepath.Join(home, historyFile)
	}
	os.Exit(interact(s, *histPath))
}

func interact(s *session, histPath string) int {
	fmt.Printf("%s v%s (%s)\n", toolName, cli.Version, s.opts.Family)
	fmt.Println("Type :help for help, :quit to exit")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		prompt := promptMain
		if s.pending() {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			fmt.Print(s.close())
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		out, quit := s.handle(line)
		fmt.Print(out)
		if quit {
			return 0
		}
		if line != "" {
			ln.AppendHistory(line)
		}
	}
}
