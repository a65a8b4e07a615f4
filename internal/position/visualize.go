package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Highlight renders the line containing span.Start with a caret marker under
// the highlighted columns. Spans that continue onto later lines are marked
// up to the end of the first line.
func (sf *SourceFile) Highlight(span Span) string {
	if !span.Start.IsValid() {
		return ""
	}

	line := sf.GetLine(span.Start.Line)
	var result strings.Builder
	result.WriteString(fmt.Sprintf("%4d | %s\n", span.Start.Line, line))
	result.WriteString("     | ")

	endCol := span.End.Column
	if span.End.Line != span.Start.Line || endCol <= span.Start.Column {
		endCol = utf8.RuneCountInString(line) + 1
	}
	addMarker(&result, line, span.Start.Column, endCol)
	result.WriteString("\n")
	return result.String()
}

// addMarker writes "^~~~" between the given columns, keeping tabs aligned.
func addMarker(result *strings.Builder, line string, startCol, endCol int) {
	runes := []rune(line)

	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			result.WriteString("\t")
		} else {
			result.WriteString(" ")
		}
	}

	result.WriteString("^")
	if n := endCol - startCol - 1; n > 0 {
		result.WriteString(strings.Repeat("~", n))
	}
}
