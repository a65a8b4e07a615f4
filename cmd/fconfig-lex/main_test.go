package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLexStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-stdin", "-flags", "eol,frequency"}, strings.NewReader("a{b:1}"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{`1:1 Ident "a"`, `1:5 Number "1"`, `1:7 End of File ""`, "-- frequency (7 tokens)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLexFilesJSON(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	b := filepath.Join(dir, "b.css")
	if err := os.WriteFile(a, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("10..5px"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-json", "-j", "2", a, b}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}

	var toks []tokenJSON
	for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
		var tok tokenJSON
		if err := json.Unmarshal([]byte(line), &tok); err != nil {
			t.Fatalf("bad json line %q: %v", line, err)
		}
		toks = append(toks, tok)
	}
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %+v", toks)
	}
	if toks[0].File != a || toks[0].Type != "Ident" {
		t.Fatalf("first token wrong: %+v", toks[0])
	}
	bad := toks[2]
	if bad.File != b || !bad.Error || bad.Message != "duplicate decimal point at column 4" || bad.Raw != "10..5px" {
		t.Fatalf("bad number token wrong: %+v", bad)
	}
}

func TestLexHighlightPlain(t *testing.T) {
	var stdout, stderr bytes.Buffer
	src := "a { b: c }\n"
	if code := run([]string{"-stdin", "-highlight", "-color", "never"}, strings.NewReader(src), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	if stdout.String() != src {
		t.Fatalf("expected=%q, got=%q", src, stdout.String())
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		args []string
		code int
		msg  string
	}{
		{[]string{}, 2, "Usage"},
		{[]string{"-flags", "bogus", "x.css"}, 2, "unknown flag"},
		{[]string{"-family", "nope", "x.css"}, 2, "unknown tokenizer family"},
		{[]string{filepath.Join(os.TempDir(), "fconfig-missing.css")}, 1, "no such file"},
	}
	for i, tt := range tests {
		var stdout, stderr bytes.Buffer
		code := run(tt.args, nil, &stdout, &stderr)
		if code != tt.code || !strings.Contains(stderr.String(), tt.msg) {
			t.Errorf("tests[%d] - expected code %d with %q, got %d: %s", i, tt.code, tt.msg, code, stderr.String())
		}
	}
}

func TestLexVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "fconfig-lex v") {
		t.Fatalf("version output wrong: %s", stdout.String())
	}
}
