package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/position"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/strategy"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// DiagnosticBuilder provides a fluent interface for building diagnostics.
type DiagnosticBuilder struct {
	diagnostic Diagnostic
}

// NewDiagnosticBuilder creates a new diagnostic builder.
func NewDiagnosticBuilder() *DiagnosticBuilder {
	return &DiagnosticBuilder{}
}

// Error creates an error-level diagnostic.
func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

// Warning creates a warning-level diagnostic.
func (db *DiagnosticBuilder) Warning() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticWarning

	return db
}

// WithCode sets the error code.
func (db *DiagnosticBuilder) WithCode(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code

	return db
}

// WithCategory sets the diagnostic category.
func (db *DiagnosticBuilder) WithCategory(category DiagnosticCategory) *DiagnosticBuilder {
	db.diagnostic.Category = category

	return db
}

// WithMessage sets the main diagnostic message.
func (db *DiagnosticBuilder) WithMessage(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

// WithMessagef sets the main diagnostic message with formatting.
func (db *DiagnosticBuilder) WithMessagef(format string, args ...interface{}) *DiagnosticBuilder {
	db.diagnostic.Message = fmt.Sprintf(format, args...)

	return db
}

// WithSpan sets the source location span.
func (db *DiagnosticBuilder) WithSpan(span position.Span) *DiagnosticBuilder {
	db.diagnostic.Span = span

	return db
}

// WithSourceFile sets the source file.
func (db *DiagnosticBuilder) WithSourceFile(filename string) *DiagnosticBuilder {
	db.diagnostic.SourceFile = filename

	return db
}

// Build returns the constructed diagnostic.
func (db *DiagnosticBuilder) Build() Diagnostic {
	return db.diagnostic
}

// FromTokens reports every error token. The span covers the token's raw text.
func FromTokens(file string, tokens []token.Token) []Diagnostic {
	var out []Diagnostic
	for _, tok := range tokens {
		if !tok.IsError() {
			continue
		}
		start := position.Position{Line: tok.Line, Column: tok.Column}
		out = append(out, NewDiagnosticBuilder().
			Error().
			WithCategory(CategoryLexical).
			WithCode(codeOf(tok.Type)).
			WithMessage(tok.Message).
			WithSpan(position.SpanOf(start, tok.Raw)).
			WithSourceFile(file).
			Build())
	}
	return out
}

// FromProblems reports strategy problems. Problems carry a start position
// only, so the span covers one column.
func FromProblems(file string, problems []strategy.Problem) []Diagnostic {
	out := make([]Diagnostic, 0, len(problems))
	for _, p := range problems {
		start := position.Position{Line: p.Line, Column: p.Column}
		end := start
		end.Column++
		out = append(out, NewDiagnosticBuilder().
			Error().
			WithCategory(CategorySyntax).
			WithCode("syntax").
			WithMessage(p.Message).
			WithSpan(position.Span{Start: start, End: end}).
			WithSourceFile(file).
			Build())
	}
	return out
}

// Incomplete reports input that ended while producer still held an open
// construct. The construct itself is already reported as an error token.
func Incomplete(file, producer string, lines int) Diagnostic {
	pos := position.Position{Line: lines, Column: 1}
	return NewDiagnosticBuilder().
		Warning().
		WithCategory(CategoryIncomplete).
		WithCode("incomplete").
		WithMessagef("input ended inside an open %s", producer).
		WithSpan(position.Span{Start: pos, End: pos}).
		WithSourceFile(file).
		Build()
}

// codeOf turns a type id such as "Bad Number" into "bad-number".
func codeOf(typ *token.Type) string {
	return strings.ToLower(strings.ReplaceAll(typ.ID(), " ", "-"))
}
