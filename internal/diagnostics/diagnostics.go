// Package diagnostics collects the problems found in a theme document (error
// tokens from the tokenizer and problems reported by the stylesheet
// strategies) and renders them with source context.
package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
	DiagnosticInfo
	DiagnosticHint
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticInfo:
		return "info"
	case DiagnosticHint:
		return "hint"
	default:
		return "unknown"
	}
}

// DiagnosticCategory represents the category of diagnostic
type DiagnosticCategory int

const (
	// CategoryLexical covers error tokens.
	CategoryLexical DiagnosticCategory = iota
	// CategorySyntax covers problems found while assembling rules.
	CategorySyntax
	// CategoryIncomplete marks input that ended inside an open construct.
	CategoryIncomplete
)

func (dc DiagnosticCategory) String() string {
	switch dc {
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategoryIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Diagnostic is a single positioned message.
type Diagnostic struct {
	Level      DiagnosticLevel
	Category   DiagnosticCategory
	Code       string // token type or problem kind, e.g. "bad-number"
	Message    string
	Span       position.Span
	SourceFile string
}

func (d Diagnostic) String() string {
	pos := d.Span.Start
	pos.Filename = d.SourceFile
	return fmt.Sprintf("%s: %s: %s", pos, d.Level, d.Message)
}

// DiagnosticManager manages all diagnostics for a run over one or more
// documents. It is not safe for concurrent use.
type DiagnosticManager struct {
	diagnostics  []Diagnostic
	errorCount   int
	warningCount int
	maxErrors    int
	dropped      int
	seen         map[string]bool
	sources      map[string]*position.SourceFile
}

// NewDiagnosticManager creates a new diagnostic manager
func NewDiagnosticManager() *DiagnosticManager {
	return &DiagnosticManager{
		maxErrors: 100,
		seen:      make(map[string]bool),
		sources:   make(map[string]*position.SourceFile),
	}
}

// SetErrorLimit sets the maximum number of errors kept. Zero or less means
// no limit.
func (dm *DiagnosticManager) SetErrorLimit(limit int) {
	dm.maxErrors = limit
}

// AddSource registers the text of a document so diagnostics in it can be
// rendered with context.
func (dm *DiagnosticManager) AddSource(sf *position.SourceFile) {
	dm.sources[sf.Filename] = sf
}

// AddDiagnostic adds a diagnostic. A second diagnostic with the same file,
// position and message is ignored, as are errors past the limit.
func (dm *DiagnosticManager) AddDiagnostic(d Diagnostic) {
	key := fmt.Sprintf("%s\x00%d\x00%d\x00%s", d.SourceFile, d.Span.Start.Line, d.Span.Start.Column, d.Message)
	if dm.seen[key] {
		return
	}
	dm.seen[key] = true

	if d.Level == DiagnosticError && dm.maxErrors > 0 && dm.errorCount >= dm.maxErrors {
		dm.dropped++
		return
	}

	switch d.Level {
	case DiagnosticError:
		dm.errorCount++
	case DiagnosticWarning:
		dm.warningCount++
	}
	dm.diagnostics = append(dm.diagnostics, d)
}

// AddAll adds each diagnostic in order.
func (dm *DiagnosticManager) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		dm.AddDiagnostic(d)
	}
}

// GetDiagnostics returns all diagnostics
func (dm *DiagnosticManager) GetDiagnostics() []Diagnostic {
	return dm.diagnostics
}

// GetErrorCount returns the number of errors
func (dm *DiagnosticManager) GetErrorCount() int {
	return dm.errorCount
}

// GetWarningCount returns the number of warnings
func (dm *DiagnosticManager) GetWarningCount() int {
	return dm.warningCount
}

// Dropped returns how many errors were discarded by the error limit.
func (dm *DiagnosticManager) Dropped() int {
	return dm.dropped
}

// HasErrors returns true if there are any errors
func (dm *DiagnosticManager) HasErrors() bool {
	return dm.errorCount > 0
}

// SortDiagnostics sorts diagnostics by location and severity
func (dm *DiagnosticManager) SortDiagnostics() {
	sort.SliceStable(dm.diagnostics, func(i, j int) bool {
		a, b := dm.diagnostics[i], dm.diagnostics[j]

		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		if a.Span.Start.Line != b.Span.Start.Line {
			return a.Span.Start.Line < b.Span.Start.Line
		}
		if a.Span.Start.Column != b.Span.Start.Column {
			return a.Span.Start.Column < b.Span.Start.Column
		}
		return a.Level < b.Level
	})
}

var levelStyles = map[DiagnosticLevel]lipgloss.Style{
	DiagnosticError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	DiagnosticWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	DiagnosticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	DiagnosticHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// FormatDiagnostic formats a diagnostic as "file:line:col: level: message"
// followed by the highlighted source line when the source is known.
func (dm *DiagnosticManager) FormatDiagnostic(d Diagnostic, colorize bool) string {
	var result strings.Builder

	pos := d.Span.Start
	pos.Filename = d.SourceFile
	level := d.Level.String()
	if colorize {
		level = levelStyles[d.Level].Render(level)
	}
	fmt.Fprintf(&result, "%s: %s: %s", pos, level, d.Message)
	if d.Code != "" {
		fmt.Fprintf(&result, " [%s]", d.Code)
	}
	result.WriteString("\n")

	if sf, ok := dm.sources[d.SourceFile]; ok {
		result.WriteString(sf.Highlight(d.Span))
	}
	return result.String()
}

// Render writes every diagnostic, sorted, to w.
func (dm *DiagnosticManager) Render(w io.Writer, colorize bool) error {
	dm.SortDiagnostics()
	for _, d := range dm.diagnostics {
		if _, err := io.WriteString(w, dm.FormatDiagnostic(d, colorize)); err != nil {
			return err
		}
	}
	if dm.dropped > 0 {
		if _, err := fmt.Fprintf(w, "too many errors: %d more not shown\n", dm.dropped); err != nil {
			return err
		}
	}
	return nil
}

// FormatSummary formats a summary of all diagnostics
func (dm *DiagnosticManager) FormatSummary() string {
	if len(dm.diagnostics) == 0 {
		return "No diagnostics."
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Found %d error(s) and %d warning(s).",
		dm.errorCount+dm.dropped, dm.warningCount))

	categoryCount := make(map[DiagnosticCategory]int)
	for _, d := range dm.diagnostics {
		categoryCount[d.Category]++
	}
	result.WriteString("\n\nBreakdown by category:")
	for _, category := range []DiagnosticCategory{CategoryLexical, CategorySyntax, CategoryIncomplete} {
		if count := categoryCount[category]; count > 0 {
			result.WriteString(fmt.Sprintf("\n  %s: %d", category.String(), count))
		}
	}

	return result.String()
}
