package main

import (
	"strings"
	"testing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/engine"
)

func newTestSession() *session {
	return newSession(engine.Options{Family: css.Family, Flags: engine.Flags{EOL: true}}, false)
}

func TestSessionFeedsLines(t *testing.T) {
	s := newTestSession()

	out, quit := s.handle("a { b: 1 }")
	if quit {
		t.Fatalf("unexpected quit")
	}
	if !strings.HasPrefix(out, `1:1 Ident "a"`) || !strings.HasSuffix(out, "1:11 End of Line \"\\n\"\n") {
		t.Fatalf("first line output wrong:\n%s", out)
	}

	out, _ = s.handle("/* spans")
	if out != "" || !s.pending() {
		t.Fatalf("open comment should produce nothing yet, got %q", out)
	}
	out, _ = s.handle(":quit")
	if out != "" || !s.pending() {
		t.Fatalf("commands inside a comment are text, got %q", out)
	}
	out, _ = s.handle("lines */ c")
	if !strings.HasPrefix(out, "2:1 Comment") || !strings.Contains(out, `4:10 Ident "c"`) {
		t.Fatalf("closed comment output wrong:\n%s", out)
	}
	if s.pending() {
		t.Fatalf("comment should be closed")
	}
}

func TestSessionCommands(t *testing.T) {
	s := newTestSession()

	if out, _ := s.handle(":help"); !strings.Contains(out, ":flags") {
		t.Fatalf("help wrong: %s", out)
	}
	if out, _ := s.handle(":flags"); out != "flags: eol\n" {
		t.Fatalf("flags wrong: %q", out)
	}
	if out, _ := s.handle(":flags nope"); !strings.Contains(out, "unknown flag") {
		t.Fatalf("expected flag error, got %q", out)
	}
	if out, _ := s.handle(":flags eol timing"); out != "flags: eol,timing (driver reset)\n" {
		t.Fatalf("setting flags wrong: %q", out)
	}
	s.handle("a")
	if out, _ := s.handle(":freq"); !strings.Contains(out, "Ident") {
		t.Fatalf("frequency wrong: %q", out)
	}
	if out, _ := s.handle(":bogus"); !strings.HasPrefix(out, "Unknown command: :bogus") {
		t.Fatalf("unknown command wrong: %q", out)
	}
}

func TestSessionQuitClosesOpenConstruct(t *testing.T) {
	s := newTestSession()
	s.handle(`"abc\`)
	if !s.pending() {
		t.Fatalf("escaped line end should keep the string open")
	}
	out := s.close()
	if !strings.HasPrefix(out, "input ended inside an open string\n") || !strings.Contains(out, "Bad String") {
		t.Fatalf("close output wrong:\n%s", out)
	}
}

func TestSessionNormalizesInput(t *testing.T) {
	s := newTestSession()

	out, _ := s.handle("a\x00b")
	if !strings.HasPrefix(out, "1:1 Ident \"a\uFFFDb\"\n") {
		t.Fatalf("NUL should normalize into the identifier, got:\n%s", out)
	}
	out, _ = s.handle("x\fy")
	if !strings.Contains(out, `2:1 Ident "x"`) || !strings.Contains(out, `3:1 Ident "y"`) {
		t.Fatalf("form feed should split the line, got:\n%s", out)
	}
}
