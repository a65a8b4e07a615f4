package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/position"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/stylesheet"
)

const source = `.a {
  width: 10..5px;
  color: red
}`

func TestFromTokensAndProblems(t *testing.T) {
	out := css.Tokenize(source, lexer.Options{EmitEOL: true})
	lexical := FromTokens("theme.css", out.Tokens)
	if len(lexical) != 1 {
		t.Fatalf("expected 1 lexical diagnostic, got %v", lexical)
	}
	d := lexical[0]
	if d.Code != "bad-number" || d.Category != CategoryLexical || d.Level != DiagnosticError {
		t.Fatalf("diagnostic wrong: %+v", d)
	}
	if d.Span.Start.Line != 2 || d.Span.Start.Column != 10 || d.Span.End.Column != 17 {
		t.Fatalf("span wrong: %v", d.Span)
	}

	res := stylesheet.Parse(source)
	syntax := FromProblems("theme.css", res.Problems)
	if len(syntax) != 1 || syntax[0].Message != d.Message {
		t.Fatalf("parser should report the same problem, got %v", syntax)
	}

	dm := NewDiagnosticManager()
	dm.AddAll(lexical)
	dm.AddAll(syntax)
	if len(dm.GetDiagnostics()) != 1 || dm.GetErrorCount() != 1 {
		t.Fatalf("duplicate diagnostic should be dropped, got %v", dm.GetDiagnostics())
	}
}

func TestRender(t *testing.T) {
	dm := NewDiagnosticManager()
	dm.AddSource(position.NewSourceFile("theme.css", source))
	dm.AddAll(FromTokens("theme.css", css.Tokenize(source, lexer.Options{}).Tokens))

	var buf bytes.Buffer
	if err := dm.Render(&buf, false); err != nil {
		t.Fatal(err)
	}
	expected := "theme.css:2:10: error: duplicate decimal point at column 13 [bad-number]\n" +
		"   2 |   width: 10..5px;\n" +
		"     |          ^~~~~~~\n"
	if buf.String() != expected {
		t.Fatalf("render wrong.\nexpected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestErrorLimitAndSort(t *testing.T) {
	dm := NewDiagnosticManager()
	dm.SetErrorLimit(2)
	for _, line := range []int{5, 1, 3} {
		dm.AddDiagnostic(NewDiagnosticBuilder().Error().WithMessagef("problem on %d", line).
			WithSpan(position.Span{Start: position.Position{Line: line, Column: 1}}).Build())
	}
	dm.AddDiagnostic(Incomplete("", "comment", 9))

	if dm.GetErrorCount() != 2 || dm.Dropped() != 1 || dm.GetWarningCount() != 1 {
		t.Fatalf("counts wrong: errors=%d dropped=%d warnings=%d", dm.GetErrorCount(), dm.Dropped(), dm.GetWarningCount())
	}

	var buf bytes.Buffer
	if err := dm.Render(&buf, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"1:1: error: problem on 1",
		"5:1: error: problem on 5",
		"9:1: warning: input ended inside an open comment [incomplete]",
		"too many errors: 1 more not shown",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("render wrong:\n%s", buf.String())
	}

	summary := dm.FormatSummary()
	if !strings.HasPrefix(summary, "Found 3 error(s) and 1 warning(s).") || !strings.Contains(summary, "incomplete: 1") {
		t.Fatalf("summary wrong:\n%s", summary)
	}
}

func TestNoDiagnostics(t *testing.T) {
	dm := NewDiagnosticManager()
	if dm.HasErrors() || dm.FormatSummary() != "No diagnostics." {
		t.Fatalf("empty manager wrong")
	}
}
