// Package highlight renders theme token streams with terminal styles.
package highlight

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// Category groups token types that share a style.
type Category int

const (
	Plain Category = iota
	Comment
	String
	Number
	Ident
	Keyword
	Function
	Hash
	Punctuation
	Error
)

// CategoryOf maps a token type to its style category.
func CategoryOf(typ *token.Type) Category {
	switch {
	case typ.IsError():
		return Error
	case typ == css.Comment:
		return Comment
	case typ.IsWhitespace(), typ.IsSpecial():
		return Plain
	}
	switch typ {
	case css.String, css.URL:
		return String
	case css.Number, css.Percentage, css.Dimension, css.UnicodeRange:
		return Number
	case css.Ident:
		return Ident
	case css.AtKeyword, css.CDO, css.CDC:
		return Keyword
	case css.Function:
		return Function
	case css.Hash:
		return Hash
	case css.Colon, css.Semicolon, css.Comma, css.LBrace, css.RBrace,
		css.LBracket, css.RBracket, css.LParen, css.RParen, css.Delim,
		css.IncludeMatch, css.DashMatch, css.PrefixMatch, css.SuffixMatch,
		css.SubstringMatch, css.Column:
		return Punctuation
	}
	return Plain
}

// Highlighter styles tokens by category.
type Highlighter struct {
	styles map[Category]lipgloss.Style
}

// New returns a highlighter using the default palette on r.
func New(r *lipgloss.Renderer) *Highlighter {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Highlighter{styles: map[Category]lipgloss.Style{
		Comment:     base.Foreground(lipgloss.Color("8")).Italic(true),
		String:      base.Foreground(lipgloss.Color("2")),
		Number:      base.Foreground(lipgloss.Color("5")),
		Ident:       base.Foreground(lipgloss.Color("6")),
		Keyword:     base.Foreground(lipgloss.Color("4")).Bold(true),
		Function:    base.Foreground(lipgloss.Color("3")),
		Hash:        base.Foreground(lipgloss.Color("13")),
		Punctuation: base.Foreground(lipgloss.Color("7")),
		Error:       base.Foreground(lipgloss.Color("9")).Underline(true),
	}}
}

// ForWriter returns a highlighter for w with color forced on or off.
func ForWriter(w io.Writer, color bool) *Highlighter {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return New(r)
}

// Token renders the raw text of tok. Multi-line tokens are styled line by
// line so the line breaks survive untouched.
func (h *Highlighter) Token(tok token.Token) string {
	style, ok := h.styles[CategoryOf(tok.Type)]
	if !ok || tok.Raw == "" {
		return tok.Raw
	}
	lines := strings.Split(tok.Raw, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Render renders a whole stream. Without color the result is the source
// text the tokens cover.
func (h *Highlighter) Render(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(h.Token(tok))
	}
	return sb.String()
}
