package lexer

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\r\r\nb", "a\n\nb"},
		{"a\fb", "a\nb"},
		{"a\x00b", "a�b"},
		{"\xed\xa0\x80", "�"},
		{"a\xed\xbf\xbfb", "a�b"},
		{"\xed\xa0", "�"},
		{"\xed\xa0z", "�z"},
		{"\xed\x9f\xbf", "\xed\x9f\xbf"},
		{"\xff", "�"},
		{"café ☃", "café ☃"},
		{"end\r", "end\n"},
	}

	for i, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("tests[%d] - Normalize(%q) expected=%q, got=%q", i, tt.input, tt.expected, got)
		}
	}
}

func TestReadNormalizedChunked(t *testing.T) {
	input := "a\r\nb☃\xed\xa0\x80\r"
	got, err := ReadNormalized(iotest.OneByteReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\nb☃�\n" {
		t.Fatalf("expected=%q, got=%q", "a\nb☃�\n", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a", ""}},
		{"a\n\nb", []string{"a", "", "b"}},
	}

	for i, tt := range tests {
		got := SplitLines(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
			t.Errorf("tests[%d] - SplitLines(%q) expected=%q, got=%q", i, tt.input, tt.expected, got)
		}
	}
}

func TestTokenizeReader(t *testing.T) {
	out, err := TokenizeReader(testProducers, strings.NewReader("ab\r\ncd"), Options{EmitEOL: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkTokens(t, "ab\r\ncd", out.Tokens, []expectedToken{
		{testWord, "ab", 1, 1},
		{token.EOL, "\n", 1, 3},
		{testWord, "cd", 2, 1},
		{token.EOF, "", 2, 3},
	})
}
