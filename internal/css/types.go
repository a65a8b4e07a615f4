// Package css implements the "theme" tokenizer family: the token types and
// producers for the CSS-like styling language used to describe visual
// themes. Producers are registered with lexer.DefaultRegistry from init.
package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// FamilyName is the registry name of the theme tokenizer.
const FamilyName = "theme"

// Range is the value of a unicode-range token.
type Range struct {
	Start rune
	End   rune
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("U+%X", r.Start)
	}
	return fmt.Sprintf("U+%X-%X", r.Start, r.End)
}

func text(s string) string { return s }

func unit(s string) func(token.Unit) string {
	return func(token.Unit) string { return s }
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// Token types of the theme family.
var (
	Whitespace = token.NewType[string](FamilyName, "Whitespace", token.Whitespace, text)
	Comment    = token.NewType[string](FamilyName, "Comment", token.Whitespace, func(s string) string { return "/*" + s + "*/" })
	BadComment = token.NewType[string](FamilyName, "Bad Comment", token.Error, func(s string) string { return "/*" + s })

	String    = token.NewType[string](FamilyName, "String", 0, quote)
	BadString = token.NewType[string](FamilyName, "Bad String", token.Error, func(s string) string { return `"` + s })
	URL       = token.NewType[string](FamilyName, "URL", 0, func(s string) string { return "url(" + s + ")" })
	BadURL    = token.NewType[string](FamilyName, "Bad URL", token.Error, func(s string) string { return "url(" + s })

	Ident     = token.NewType[string](FamilyName, "Ident", 0, text)
	Function  = token.NewType[string](FamilyName, "Function", 0, func(s string) string { return s + "(" })
	AtKeyword = token.NewType[string](FamilyName, "At Keyword", 0, func(s string) string { return "@" + s })
	Hash      = token.NewType[string](FamilyName, "Hash", 0, func(s string) string { return "#" + s })

	Number     = token.NewType[token.Number](FamilyName, "Number", 0, token.Number.String)
	Percentage = token.NewType[token.Number](FamilyName, "Percentage", 0, func(n token.Number) string { return n.String() + "%" })
	Dimension  = token.NewType[token.Dimension](FamilyName, "Dimension", 0, token.Dimension.String)
	BadNumber  = token.NewType[token.BadNumber](FamilyName, "Bad Number", token.Error, token.BadNumber.String)

	UnicodeRange    = token.NewType[Range](FamilyName, "Unicode Range", 0, Range.String)
	BadUnicodeRange = token.NewType[Range](FamilyName, "Bad Unicode Range", token.Error, Range.String)

	CDO = token.NewType[token.Unit](FamilyName, "CDO", 0, unit("<!--"))
	CDC = token.NewType[token.Unit](FamilyName, "CDC", 0, unit("-->"))

	Colon     = token.NewType[token.Unit](FamilyName, "Colon", 0, unit(":"))
	Semicolon = token.NewType[token.Unit](FamilyName, "Semicolon", 0, unit(";"))
	Comma     = token.NewType[token.Unit](FamilyName, "Comma", 0, unit(","))
	LBrace    = token.NewType[token.Unit](FamilyName, "Left Brace", 0, unit("{"))
	RBrace    = token.NewType[token.Unit](FamilyName, "Right Brace", 0, unit("}"))
	LBracket  = token.NewType[token.Unit](FamilyName, "Left Bracket", 0, unit("["))
	RBracket  = token.NewType[token.Unit](FamilyName, "Right Bracket", 0, unit("]"))
	LParen    = token.NewType[token.Unit](FamilyName, "Left Paren", 0, unit("("))
	RParen    = token.NewType[token.Unit](FamilyName, "Right Paren", 0, unit(")"))

	IncludeMatch   = token.NewType[token.Unit](FamilyName, "Include Match", 0, unit("~="))
	DashMatch      = token.NewType[token.Unit](FamilyName, "Dash Match", 0, unit("|="))
	PrefixMatch    = token.NewType[token.Unit](FamilyName, "Prefix Match", 0, unit("^="))
	SuffixMatch    = token.NewType[token.Unit](FamilyName, "Suffix Match", 0, unit("$="))
	SubstringMatch = token.NewType[token.Unit](FamilyName, "Substring Match", 0, unit("*="))
	Column         = token.NewType[token.Unit](FamilyName, "Column", 0, unit("||"))

	Delim   = token.NewType[rune](FamilyName, "Delim", 0, func(r rune) string { return string(r) })
	BadChar = token.NewType[rune](FamilyName, "Bad Char", token.Error, func(r rune) string { return string(r) })
)

// Types lists every theme token type, for frequency tables and highlighting.
var Types = []*token.Type{
	Whitespace, Comment, BadComment,
	String, BadString, URL, BadURL,
	Ident, Function, AtKeyword, Hash,
	Number, Percentage, Dimension, BadNumber,
	UnicodeRange, BadUnicodeRange, CDO, CDC,
	Colon, Semicolon, Comma, LBrace, RBrace, LBracket, RBracket, LParen, RParen,
	IncludeMatch, DashMatch, PrefixMatch, SuffixMatch, SubstringMatch, Column,
	Delim, BadChar,
}

func describe(ch rune) string {
	return fmt.Sprintf("%s (U+%04X)", strconv.QuoteRune(ch), ch)
}
