package position

import (
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		isValid  bool
		expected string
	}{
		{name: "with filename", pos: Position{Filename: "themes/dark.css", Line: 10, Column: 5}, isValid: true, expected: "dark.css:10:5"},
		{name: "without filename", pos: Position{Line: 1, Column: 1}, isValid: true, expected: "1:1"},
		{name: "zero line", pos: Position{Line: 0, Column: 1}, isValid: false, expected: "0:1"},
		{name: "zero column", pos: Position{Line: 1, Column: 0}, isValid: false, expected: "1:0"},
	}

	for i, tt := range tests {
		if got := tt.pos.IsValid(); got != tt.isValid {
			t.Errorf("tests[%d] %s - IsValid wrong. expected=%v, got=%v", i, tt.name, tt.isValid, got)
		}
		if got := tt.pos.String(); got != tt.expected {
			t.Errorf("tests[%d] %s - String wrong. expected=%q, got=%q", i, tt.name, tt.expected, got)
		}
	}
}

func TestPositionBefore(t *testing.T) {
	a := Position{Line: 1, Column: 9}
	b := Position{Line: 2, Column: 1}
	c := Position{Line: 2, Column: 4}

	if !a.Before(b) || !b.Before(c) || !a.Before(c) {
		t.Fatalf("expected %v < %v < %v", a, b, c)
	}
	if c.Before(a) || b.Before(b) {
		t.Fatalf("Before is not a strict order")
	}
}

func TestSpanOf(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{raw: "color", expected: "1:3-8"},
		{raw: "/* a\nbc */", expected: "1:3-2:6"},
		{raw: "", expected: "1:3-3"},
	}

	for i, tt := range tests {
		span := SpanOf(Position{Line: 1, Column: 3}, tt.raw)
		if !span.IsValid() {
			t.Fatalf("tests[%d] - span %v should be valid", i, span)
		}
		if span.String() != tt.expected {
			t.Fatalf("tests[%d] - span wrong. expected=%q, got=%q", i, tt.expected, span.String())
		}
	}
}

func TestSourceFileHighlight(t *testing.T) {
	sf := NewSourceFile("theme.css", "a {\n\twidth: 10..5px;\n}")

	if got := sf.GetLine(2); got != "\twidth: 10..5px;" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := sf.GetLine(4); got != "" {
		t.Fatalf("GetLine(4) = %q, want empty", got)
	}

	span := SpanOf(sf.Position(2, 9), "10..5px")
	expected := "   2 | \twidth: 10..5px;\n" +
		"     | \t       ^~~~~~~\n"
	if got := sf.Highlight(span); got != expected {
		t.Fatalf("Highlight wrong.\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}
