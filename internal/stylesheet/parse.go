package stylesheet

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/queue"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/strategy"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// sheetBuilder accumulates one stylesheet parse.
type sheetBuilder struct {
	sheet    *StyleSheet
	problems []strategy.Problem
}

func (b *sheetBuilder) report(res []strategy.Problem) {
	b.problems = append(b.problems, res...)
}

func (b *sheetBuilder) reportAt(tok token.Token, msg string) {
	b.problems = append(b.problems, strategy.Problem{Message: msg, Line: tok.Line, Column: tok.Column})
}

// Strategy returns the stylesheet strategy. It consumes the whole queue.
// Invalid rules and declarations are skipped; the result then carries the
// remaining stylesheet together with the problems found.
func Strategy() strategy.Strategy[*StyleSheet] {
	return strategy.FromBuilder("stylesheet",
		func() *sheetBuilder { return &sheetBuilder{sheet: &StyleSheet{}} },
		func(*queue.Queue) bool { return true },
		func(b *sheetBuilder, q *queue.Queue) *sheetBuilder {
			parseTopLevel(b, q)
			return b
		},
		func(b *sheetBuilder) strategy.Result[*StyleSheet] {
			return strategy.Result[*StyleSheet]{Value: b.sheet, Problems: b.problems}
		})
}

// Parse tokenizes text with the theme family and parses it.
func Parse(text string) strategy.Result[*StyleSheet] {
	out := css.Tokenize(text, lexer.Options{EmitEOL: true})
	return Strategy().Consume(queue.New(out.Tokens))
}

func parseTopLevel(b *sheetBuilder, q *queue.Queue) {
	for {
		q.ConsumeWhitespace()
		tok, ok := q.Peek()
		if !ok {
			return
		}
		switch {
		case tok.Is(css.CDO) || tok.Is(css.CDC):
			q.Poll()
		case tok.IsError() && !startsConstruct(q):
			b.reportAt(tok, tok.Message)
			q.Poll()
		case tok.Is(css.AtKeyword):
			if at := parseAtRule(b, q); at != nil {
				b.sheet.AtRules = append(b.sheet.AtRules, at)
			}
		case tok.Is(css.Semicolon) || tok.Is(css.RBrace):
			b.reportAt(tok, "unexpected "+tok.Text())
			q.Poll()
		case nextBoundary(q) == css.LBrace:
			if r := parseRule(b, q); r != nil {
				b.sheet.Rules = append(b.sheet.Rules, r)
			}
		default:
			b.reportAt(tok, "expected a rule or at-rule")
			skipStatement(q)
		}
	}
}

// parseBlock reads the contents of a {} block: declarations and nested
// rules. q is already bounded to the block.
func parseBlock(b *sheetBuilder, q *queue.Queue) (decls []Declaration, rules []*Rule) {
	for {
		q.ConsumeWhitespace()
		tok, ok := q.Peek()
		if !ok {
			return decls, rules
		}
		switch {
		case tok.Is(css.Semicolon):
			q.Poll()
		case tok.IsError() && !startsConstruct(q):
			b.reportAt(tok, tok.Message)
			q.Poll()
		case tok.Is(css.AtKeyword):
			b.reportAt(tok, "@"+tok.Value.(string)+" is not allowed inside a block")
			skipStatement(q)
		case nextBoundary(q) == css.LBrace:
			if r := parseRule(b, q); r != nil {
				rules = append(rules, r)
			}
		case tok.Is(css.Ident):
			if d, ok := parseDeclaration(b, q); ok {
				decls = append(decls, d)
			}
		default:
			b.reportAt(tok, "expected a declaration, found "+tok.Type.ID())
			skipStatement(q)
		}
	}
}

// startsConstruct reports whether the error token under the cursor is the
// start of a rule prelude, which reports it itself.
func startsConstruct(q *queue.Queue) bool {
	return nextBoundary(q) == css.LBrace
}

// nextBoundary returns the type of the first ';', '{' or '}' ahead, or nil.
func nextBoundary(q *queue.Queue) *token.Type {
	for _, tok := range q.Remaining() {
		switch {
		case tok.Is(css.Semicolon), tok.Is(css.LBrace), tok.Is(css.RBrace):
			return tok.Type
		}
	}
	return nil
}

// skipStatement drops tokens through the next ';' or a whole {} block.
func skipStatement(q *queue.Queue) {
	for !q.Empty() {
		tok, _ := q.Poll()
		switch {
		case tok.Is(css.Semicolon), tok.Is(css.RBrace):
			return
		case tok.Is(css.LBrace):
			if _, closed := queue.Slice(q, blockEnd(), drain); closed {
				q.Poll()
			} else {
				drain(q)
			}
			return
		}
	}
}

// drain consumes everything left in the view.
func drain(q *queue.Queue) int {
	n := 0
	for !q.Empty() {
		q.Poll()
		n++
	}
	return n
}

// blockEnd matches the '}' closing the current block, skipping nested ones.
func blockEnd() func(token.Token) bool {
	depth := 0
	return func(tok token.Token) bool {
		switch {
		case tok.Is(css.LBrace):
			depth++
		case tok.Is(css.RBrace):
			if depth == 0 {
				return true
			}
			depth--
		}
		return false
	}
}

// consumeBlock reads a block whose '{' is the next token.
func consumeBlock(b *sheetBuilder, q *queue.Queue) ([]Declaration, []*Rule) {
	open, _ := q.Poll()

	type body struct {
		decls []Declaration
		rules []*Rule
	}
	res, closed := queue.Slice(q, blockEnd(), func(inner *queue.Queue) body {
		d, r := parseBlock(b, inner)
		return body{d, r}
	})
	if closed {
		q.Poll()
		return res.decls, res.rules
	}

	b.reportAt(open, "unclosed block")
	d, r := parseBlock(b, q)
	return d, r
}

func parseRule(b *sheetBuilder, q *queue.Queue) *Rule {
	first, _ := q.Peek()
	selector, ok := queue.Slice(q, queue.Is(css.LBrace), func(p *queue.Queue) strategy.Result[string] {
		return selectorText(p)
	})
	if !ok {
		return nil
	}
	decls, rules := consumeBlock(b, q)
	if !selector.Valid() {
		b.report(selector.Problems)
		return nil
	}
	return &Rule{
		Selector:     selector.Value,
		Declarations: decls,
		Rules:        rules,
		Line:         first.Line,
		Column:       first.Column,
	}
}

// selectorText renders a prelude back to text with whitespace collapsed. It
// always uses up the view so the block that follows can be read.
func selectorText(q *queue.Queue) strategy.Result[string] {
	var sb strings.Builder
	var problems []strategy.Problem
	space := false
	for !q.Empty() {
		tok, _ := q.Poll()
		switch {
		case tok.IsError():
			problems = append(problems, strategy.Problem{Message: tok.Message, Line: tok.Line, Column: tok.Column})
			continue
		case tok.Type.IsWhitespace() || tok.Type.IsSpecial():
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteString(tok.Raw)
	}
	if len(problems) > 0 {
		return strategy.Result[string]{Problems: problems}
	}
	if sb.Len() == 0 {
		return strategy.Fail[string](q, "empty selector")
	}
	return strategy.Ok(sb.String())
}

func parseAtRule(b *sheetBuilder, q *queue.Queue) *AtRule {
	kw, _ := q.Poll()
	at := &AtRule{Name: kw.Value.(string), Line: kw.Line, Column: kw.Column}

	boundary := nextBoundary(q)
	if boundary == nil {
		// A statement at-rule may end with the input.
		prelude := allValues(q)
		if !prelude.Valid() {
			b.report(prelude.Problems)
			return nil
		}
		at.Prelude = prelude.Value
		return at
	}

	prelude, _ := queue.Slice(q, queue.Is(boundary), allValues)
	if !prelude.Valid() {
		b.report(prelude.Problems)
		skipStatement(q)
		return nil
	}
	at.Prelude = prelude.Value

	switch boundary {
	case css.Semicolon:
		q.Poll()
	case css.LBrace:
		at.HasBlock = true
		at.Declarations, at.Rules = consumeBlock(b, q)
	}
	return at
}

// allValues reads component values and requires the view to be used up.
func allValues(q *queue.Queue) strategy.Result[[]Value] {
	res := componentValues(q)
	if !res.Valid() {
		return res
	}
	q.ConsumeWhitespace()
	if tok, ok := q.Peek(); ok {
		return strategy.Result[[]Value]{Problems: []strategy.Problem{unexpected(tok)}}
	}
	return res
}

// parseDeclaration reads "property: values [!important]" up to ';' or the
// end of the block. Invalid declarations are reported and dropped.
func parseDeclaration(b *sheetBuilder, q *queue.Queue) (Declaration, bool) {
	end := queue.Is(css.Semicolon)
	if nextBoundary(q) != css.Semicolon {
		end = func(token.Token) bool { return false }
	}

	var res strategy.Result[Declaration]
	// A failed declaration rolls its view back; draining makes the slice
	// commit past it either way.
	run := func(d *queue.Queue) strategy.Result[Declaration] {
		r := declaration.Consume(d)
		drain(d)
		return r
	}
	if r, ok := queue.Slice(q, end, run); ok {
		res = r
		q.Poll()
	} else {
		res = run(q)
	}

	if !res.Valid() {
		b.report(res.Problems)
		return Declaration{}, false
	}
	return res.Value, true
}

type declBuilder struct {
	decl     Declaration
	problems []strategy.Problem
}

// declaration consumes a whole bounded declaration.
var declaration = strategy.FromBuilder("declaration",
	func() declBuilder { return declBuilder{} },
	func(q *queue.Queue) bool { return strategy.NextIs(q, css.Ident) },
	func(b declBuilder, q *queue.Queue) declBuilder {
		if first, ok := strategy.Next(q); ok {
			b.decl.Line, b.decl.Column = first.Line, first.Column
		}
		prop := strategy.Pair(strategy.Ident(), css.Colon, strategy.Func("value", anyValue, componentValues)).Consume(q)
		if !prop.Valid() {
			b.problems = prop.Problems
			return b
		}
		b.decl.Property, b.decl.Values = prop.Value.Key, prop.Value.Value

		if strategy.NextIs(q, css.Delim) {
			bang := bangImportant.Consume(q)
			if !bang.Valid() {
				b.problems = bang.Problems
				return b
			}
			b.decl.Important = true
		}
		q.ConsumeWhitespace()
		if tok, ok := q.Peek(); ok {
			b.problems = append(b.problems, unexpected(tok))
		}
		return b
	},
	func(b declBuilder) strategy.Result[Declaration] {
		if len(b.decl.Values) == 0 && len(b.problems) == 0 {
			b.problems = append(b.problems, strategy.Problem{
				Message: "missing value for " + b.decl.Property,
				Line:    b.decl.Line,
				Column:  b.decl.Column,
			})
		}
		return strategy.Result[Declaration]{Value: b.decl, Problems: b.problems}
	})

var bangImportant = strategy.Func("!important",
	func(q *queue.Queue) bool {
		tok, ok := strategy.Next(q)
		return ok && tok.Is(css.Delim) && tok.Value == '!'
	},
	func(q *queue.Queue) strategy.Result[bool] {
		bang := strategy.OfType("'!'", css.Delim).Consume(q)
		if !bang.Valid() || bang.Value.Value != '!' {
			return strategy.Fail[bool](q, "expected !important")
		}
		if res := strategy.Keyword("important").Consume(q); !res.Valid() {
			return strategy.FailAt[bool](bang.Value, "expected important after '!'")
		}
		return strategy.Ok(true)
	})

func unexpected(tok token.Token) strategy.Problem {
	msg := "unexpected " + tok.Type.ID() + " in value"
	if tok.IsError() {
		msg = tok.Message
	}
	return strategy.Problem{Message: msg, Line: tok.Line, Column: tok.Column}
}

// anyValue reports whether a component value starts here. The declaration
// always has a value strategy; emptiness is reported by build.
func anyValue(*queue.Queue) bool { return true }

// componentValues reads values until the view ends or a token that cannot be
// a value ('!' or an error token).
func componentValues(q *queue.Queue) strategy.Result[[]Value] {
	var values []Value
	for value.CanConsume(q) {
		res := value.Consume(q)
		if !res.Valid() {
			return strategy.Cast[[]Value](res)
		}
		values = append(values, res.Value)
	}
	q.ConsumeWhitespace()
	if tok, ok := q.Peek(); ok && tok.IsError() {
		return strategy.FailAt[[]Value](tok, "%s", tok.Message)
	}
	return strategy.Ok(values)
}

// value is a function call or a single plain token.
var value strategy.Strategy[Value]

func init() {
	value = strategy.FirstOf(functionValue(), plainValue())
}

func plainValue() strategy.Strategy[Value] {
	return strategy.Func("value",
		func(q *queue.Queue) bool {
			tok, ok := strategy.Next(q)
			return ok && isPlainValue(tok)
		},
		func(q *queue.Queue) strategy.Result[Value] {
			q.ConsumeWhitespace()
			tok, _ := q.Poll()
			return strategy.Ok(Value{Token: tok})
		})
}

func isPlainValue(tok token.Token) bool {
	switch {
	case tok.IsError(), tok.Is(css.Function),
		tok.Is(css.LBrace), tok.Is(css.RBrace), tok.Is(css.Semicolon):
		return false
	case tok.Is(css.Delim):
		return tok.Value != '!'
	}
	return true
}

func functionValue() strategy.Strategy[Value] {
	return strategy.Func("function",
		func(q *queue.Queue) bool { return strategy.NextIs(q, css.Function) },
		func(q *queue.Queue) strategy.Result[Value] {
			q.ConsumeWhitespace()
			fn, _ := q.Poll()
			v := Value{Token: fn}
			for {
				q.ConsumeWhitespace()
				tok, ok := q.Peek()
				switch {
				case !ok:
					return strategy.FailAt[Value](fn, "unclosed function %s(", v.Name())
				case tok.Is(css.RParen):
					q.Poll()
					return strategy.Ok(v)
				case tok.Is(css.Comma):
					q.Poll()
				case value.CanConsume(q):
					arg := value.Consume(q)
					if !arg.Valid() {
						return arg
					}
					v.Args = append(v.Args, arg.Value)
				case tok.IsError():
					return strategy.FailAt[Value](tok, "%s", tok.Message)
				default:
					return strategy.FailAt[Value](tok, "unexpected %s in %s()", tok.Type.ID(), v.Name())
				}
			}
		})
}
