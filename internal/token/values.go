package token

import (
	"math"
	"strconv"
)

// CoreFamily owns the structural types every tokenizer family shares.
const CoreFamily = "core"

// Unit is the value of tokens whose type says everything, such as punctuation.
type Unit struct{}

// Number is a decoded numeric literal. Integer literals keep their exact
// value in Int; literals with a decimal point or exponent use Float.
type Number struct {
	Integer bool
	Int     int64
	Float   float64
}

// Int64 returns an integer number.
func Int64(v int64) Number {
	return Number{Integer: true, Int: v}
}

// Float returns a floating point number.
func Float(v float64) Number {
	return Number{Float: v}
}

// Float64 returns the value as a float64 regardless of kind.
func (n Number) Float64() float64 {
	if n.Integer {
		return float64(n.Int)
	}
	return n.Float
}

func (n Number) String() string {
	if n.Integer {
		return strconv.FormatInt(n.Int, 10)
	}
	if n.Float == math.Trunc(n.Float) && math.Abs(n.Float) < 1e15 {
		return strconv.FormatFloat(n.Float, 'f', 1, 64)
	}
	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

// Dimension is a number followed by a unit, such as 10.5px.
type Dimension struct {
	Number Number
	Unit   string
}

func (d Dimension) String() string {
	return d.Number.String() + d.Unit
}

// BadNumber is the best-effort payload of a malformed numeric literal.
type BadNumber struct {
	Number  Number
	Unit    string
	Percent bool
	// ProblemColumn is the source column of the first problem found.
	ProblemColumn int
}

func (b BadNumber) String() string {
	s := b.Number.String() + b.Unit
	if b.Percent {
		s += "%"
	}
	return s
}

// Structural markers produced by the driver rather than by producers.
var (
	EOL = NewType[Unit](CoreFamily, "End of Line", Special, func(Unit) string { return "\n" })
	EOF = NewType[Unit](CoreFamily, "End of File", Special, func(Unit) string { return "" })

	// Unknown wraps a run of input no producer recognized.
	Unknown = NewType[string](CoreFamily, "Unknown", Error, func(s string) string { return s })
)
