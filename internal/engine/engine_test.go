package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/stylesheet"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		input    string
		expected Flags
		err      bool
	}{
		{"", Flags{}, false},
		{"eol", Flags{EOL: true}, false},
		{" EOL , timing,", Flags{EOL: true, Timing: true}, false},
		{"eol,print,frequency,timing", Flags{EOL: true, Print: true, Frequency: true, Timing: true}, false},
		{"eol,colour", Flags{}, true},
	}

	for i, tt := range tests {
		got, err := ParseFlags(tt.input)
		if (err != nil) != tt.err {
			t.Fatalf("tests[%d] - %q: error expected=%v, got=%v", i, tt.input, tt.err, err)
		}
		if got != tt.expected {
			t.Fatalf("tests[%d] - %q: expected=%+v, got=%+v", i, tt.input, tt.expected, got)
		}
	}

	_, err := ParseFlags("bogus")
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("error should name the flag, got %v", err)
	}
	f := Flags{EOL: true, Timing: true}
	if f.String() != "eol,timing" {
		t.Fatalf("String() = %q", f.String())
	}
}

func TestRunStylesheet(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		Family: css.Family,
		Flags:  Flags{EOL: true, Print: true, Frequency: true, Timing: true},
		Out:    &out,
	}
	res := RunString("a { b: 1 }", opts, stylesheet.Strategy())

	if !res.Valid() {
		t.Fatalf("unexpected problems: %v", res.Value.Problems)
	}
	if len(res.Value.Value.Rules) != 1 {
		t.Fatalf("expected 1 rule")
	}
	if res.TokenCount != 11 || len(res.Tokens) != 11 {
		t.Fatalf("token count wrong: %d", res.TokenCount)
	}
	if res.Timing == nil || res.Timing.Total() < res.Timing.Tokenize {
		t.Fatalf("timing missing or inconsistent: %v", res.Timing)
	}
	if res.Frequency[css.Whitespace] != 4 || res.Frequency[token.EOF] != 1 {
		t.Fatalf("frequency wrong: %v", res.Frequency)
	}
	rows := res.Frequency.Sorted()
	if rows[0].Type != css.Whitespace {
		t.Fatalf("most frequent type should be whitespace, got %s", rows[0].Type)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 11 printed tokens, got %d", len(lines))
	}
	if lines[0] != `1:1 Ident "a"` || lines[7] != `1:8 Number "1"` || lines[10] != `1:11 End of File ""` {
		t.Fatalf("printed stream wrong:\n%s", out.String())
	}
}

func TestRunWithoutFlags(t *testing.T) {
	res := RunString("a { b: 1 }", Options{Family: css.Family}, stylesheet.Strategy())
	if res.Timing != nil || res.Frequency != nil {
		t.Fatalf("side channels should be off")
	}
	for _, tok := range res.Tokens {
		if tok.Is(token.EOL) || tok.Is(token.EOF) {
			t.Fatalf("no line markers expected without eol")
		}
	}
}

func TestRunTokenizeOnly(t *testing.T) {
	res := Run[any]([]string{"/* open", "still open"}, Options{Family: css.Family, Flags: Flags{EOL: true}}, nil)
	if !res.Incomplete || res.Pending != "comment" {
		t.Fatalf("expected incomplete comment, got incomplete=%v pending=%q", res.Incomplete, res.Pending)
	}
	if !res.Tokens[0].Is(css.BadComment) || res.Tokens[0].Message != "unterminated comment" {
		t.Fatalf("expected bad comment, got %v", res.Tokens[0])
	}
}

func TestRunReaderNormalizes(t *testing.T) {
	var out bytes.Buffer
	opts := Options{Family: css.Family, Flags: Flags{EOL: true, Print: true}, Out: &out}
	res, err := RunReader(strings.NewReader("a{}\r\nb{}\r"), opts, stylesheet.Strategy())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Value.Value.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(res.Value.Value.Rules))
	}
	if !strings.Contains(out.String(), "2:1 Ident \"b\"") {
		t.Fatalf("second line not tokenized on line 2:\n%s", out.String())
	}
}

func TestFormatToken(t *testing.T) {
	tok := token.NewError(css.BadChar, '`', 3, 7, "`", "unexpected character '`' (U+0060)")
	expected := "3:7 Bad Char \"`\" [unexpected character '`' (U+0060)]"
	if got := FormatToken(tok); got != expected {
		t.Fatalf("expected=%q, got=%q", expected, got)
	}
}
