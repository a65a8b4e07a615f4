package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/cursor"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// numberProducer implements the numeric literal grammar: signs, digits, one
// decimal point, one exponent, then an optional unit or percent sign.
// Malformed literals become a single BadNumber token carrying the best-effort
// value and the first problem found.
type numberProducer struct{}

func (numberProducer) ID() string { return "number" }

func (numberProducer) CanProduce(r *cursor.Reader) bool {
	i := 0
	for r.CanRead(i+1) && isSign(r.Peek(i)) {
		i++
	}
	if !r.CanRead(i + 1) {
		return false
	}
	return isDigit(r.Peek(i)) || r.Peek(i) == '.' && r.CanRead(i+2) && isDigit(r.Peek(i+1))
}

// numberScan accumulates the parts of a literal.
type numberScan struct {
	negative bool
	mantissa strings.Builder
	point    bool

	exponent    bool
	expNegative bool
	expDigits   strings.Builder
	expFraction bool

	problem string
	column  int
}

func (s *numberScan) fail(problem string, column int) {
	if s.problem == "" {
		s.problem, s.column = problem, column
	}
}

func (p numberProducer) Produce(ctx *lexer.Context) bool {
	r := ctx.Reader
	start := ctx.Mark()
	s := &numberScan{}

	s.negative = readSigns(r, s)
	for r.CanRead() {
		ch := r.Peek()
		switch {
		case isDigit(ch):
			r.Read()
			switch {
			case !s.exponent:
				s.mantissa.WriteRune(ch)
			case !s.expFraction:
				s.expDigits.WriteRune(ch)
			}
		case ch == '.' && pointContinues(r):
			switch {
			case s.exponent:
				s.fail("decimal point in exponent", r.Column())
				s.expFraction = true
			case s.point:
				s.fail("duplicate decimal point", r.Column())
			default:
				s.point = true
				s.mantissa.WriteRune('.')
			}
			r.Read()
		case (ch == 'e' || ch == 'E') && exponentFollows(r):
			if s.exponent {
				s.fail("multiple exponent markers", r.Column())
				s.expFraction = true
			}
			s.exponent = true
			r.Read()
			if isSign(r.Peek()) && r.CanRead() {
				neg := readSigns(r, s)
				if s.expDigits.Len() == 0 && !s.expFraction {
					s.expNegative = neg
				}
				if !isDigit(r.Peek()) || !r.CanRead() {
					s.fail("exponent has no digits", r.Column())
				}
			}
		default:
			return p.finish(ctx, start, s)
		}
	}
	return p.finish(ctx, start, s)
}

func (numberProducer) finish(ctx *lexer.Context, start int, s *numberScan) bool {
	r := ctx.Reader
	value, problem := s.value()
	if s.problem == "" && problem != "" {
		s.fail(problem, r.ColumnAt(start))
	}

	var unitName string
	percent := false
	switch {
	case startsIdent(r, 0):
		unitName = consumeName(r)
	case r.CanRead() && r.Peek() == '%':
		r.Read()
		percent = true
	}

	if s.problem != "" {
		bad := token.BadNumber{Number: value, Unit: unitName, Percent: percent, ProblemColumn: s.column}
		ctx.EmitError(BadNumber, bad, start, fmt.Sprintf("%s at column %d", s.problem, s.column))
		return true
	}
	switch {
	case unitName != "":
		ctx.Emit(Dimension, token.Dimension{Number: value, Unit: unitName}, start)
	case percent:
		ctx.Emit(Percentage, value, start)
	default:
		ctx.Emit(Number, value, start)
	}
	return true
}

// value computes sign × mantissa × 10^exponent. Integer literals stay exact.
func (s *numberScan) value() (token.Number, string) {
	mantissa := s.mantissa.String()
	if !s.point && !s.exponent {
		digits := mantissa
		if s.negative {
			digits = "-" + digits
		}
		if v, err := strconv.ParseInt(digits, 10, 64); err == nil {
			return token.Int64(v), ""
		}
		f, _ := strconv.ParseFloat(digits, 64)
		return token.Float(f), "integer out of range"
	}

	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if strings.HasSuffix(mantissa, ".") {
		mantissa += "0"
	}
	lit := mantissa
	if exp := s.expDigits.String(); exp != "" {
		if s.expNegative {
			exp = "-" + exp
		}
		lit += "e" + exp
	}
	if s.negative {
		lit = "-" + lit
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(f, 0) {
		return token.Float(f), "number out of range"
	}
	return token.Float(f), ""
}

// readSigns consumes a run of signs, reporting every sign after the first.
// It returns whether the product of the signs is negative.
func readSigns(r *cursor.Reader, s *numberScan) bool {
	negative, n := false, 0
	for r.CanRead() && isSign(r.Peek()) {
		if n > 0 {
			s.fail("multiple signs", r.Column())
		}
		if r.Read() == '-' {
			negative = !negative
		}
		n++
	}
	return negative
}

// pointContinues reports whether the '.' under the cursor belongs to the
// literal: a run of points must end in a digit.
func pointContinues(r *cursor.Reader) bool {
	i := 0
	for r.CanRead(i+1) && r.Peek(i) == '.' {
		i++
	}
	return r.CanRead(i+1) && isDigit(r.Peek(i))
}

// exponentFollows reports whether the e or E under the cursor is an exponent
// marker rather than the start of a unit such as em.
func exponentFollows(r *cursor.Reader) bool {
	return r.CanRead(2) && (isDigit(r.Peek(1)) || isSign(r.Peek(1)))
}

func isSign(ch rune) bool {
	return ch == '+' || ch == '-'
}
