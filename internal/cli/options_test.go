package cli

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
)

func TestCommonFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"flags": "eol,timing", "jobs": 3, "color": "never"}`), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := RegisterCommonFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-j", "5", "-verbose"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.Load(fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Jobs != 5 || !cfg.Verbose {
		t.Fatalf("explicit flags should win: %+v", cfg)
	}
	if cfg.Flags != "eol,timing" || cfg.Color != "never" {
		t.Fatalf("config values should survive when flags are not set: %+v", cfg)
	}
}

func TestEngineOptions(t *testing.T) {
	reg := lexer.NewRegistry()
	reg.Register(lexer.Family{Name: "theme", Version: "1.0.0"})
	reg.Register(lexer.Family{Name: "theme", Version: "1.4.2"})
	reg.Register(lexer.Family{Name: "theme", Version: "2.0.0"})

	cfg := DefaultConfig()
	cfg.Family = "theme@^1"
	cfg.Flags = "eol,frequency"
	opts, err := cfg.EngineOptions(reg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Family.Version != "1.4.2" || !opts.Flags.EOL || !opts.Flags.Frequency || opts.Flags.Timing {
		t.Fatalf("options wrong: %+v", opts)
	}

	cfg.Flags = "eol,sparkles"
	if _, err := cfg.EngineOptions(reg, nil); err == nil || !strings.Contains(err.Error(), "sparkles") {
		t.Fatalf("expected flag error, got %v", err)
	}
	cfg.Flags = "eol"
	cfg.Family = "nope"
	if _, err := cfg.EngineOptions(reg, nil); err == nil {
		t.Fatalf("expected unknown family error")
	}
}
