// Package stylesheet assembles theme token streams into rules and
// declarations using the strategy combinators.
package stylesheet

import (
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// StyleSheet is a parsed theme document.
type StyleSheet struct {
	Rules   []*Rule
	AtRules []*AtRule
}

// Rule is a selector with its declarations. Nested rules appear when a rule
// block contains rules of its own.
type Rule struct {
	Selector     string
	Declarations []Declaration
	Rules        []*Rule
	Line         int
	Column       int
}

// AtRule is an @keyword statement or block.
type AtRule struct {
	Name         string
	Prelude      []Value
	HasBlock     bool
	Declarations []Declaration
	Rules        []*Rule
	Line         int
	Column       int
}

// Declaration is a property assignment.
type Declaration struct {
	Property  string
	Values    []Value
	Important bool
	Line      int
	Column    int
}

// Value is a single component value: a token, or a function token with its
// arguments.
type Value struct {
	Token token.Token
	Args  []Value
}

// IsFunction reports whether v is a function call.
func (v Value) IsFunction() bool {
	return v.Token.Is(css.Function)
}

// Name returns the function name or identifier text.
func (v Value) Name() string {
	s, _ := token.ValueOf[string](v.Token)
	return s
}

func (v Value) String() string {
	if !v.IsFunction() {
		return v.Token.Text()
	}
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = a.String()
	}
	return v.Name() + "(" + strings.Join(args, ", ") + ")"
}

// Lookup returns the last declaration of property, ignoring case.
func (r *Rule) Lookup(property string) (Declaration, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if strings.EqualFold(r.Declarations[i].Property, property) {
			return r.Declarations[i], true
		}
	}
	return Declaration{}, false
}

// Find returns the rules whose selector equals selector.
func (s *StyleSheet) Find(selector string) []*Rule {
	var out []*Rule
	for _, r := range s.Rules {
		if r.Selector == selector {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns the number of rules (nested included) and declarations.
func (s *StyleSheet) Counts() (rules, declarations int) {
	var walk func([]*Rule)
	walk = func(rs []*Rule) {
		for _, r := range rs {
			rules++
			declarations += len(r.Declarations)
			walk(r.Rules)
		}
	}
	walk(s.Rules)
	for _, a := range s.AtRules {
		declarations += len(a.Declarations)
		walk(a.Rules)
	}
	return rules, declarations
}
