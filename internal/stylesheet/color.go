package stylesheet

import (
	"image/color"
	"math"
	"strings"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/css"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/token"
)

// Color decodes #rgb, #rgba, #rrggbb, #rrggbbaa and rgb()/rgba() values.
func (v Value) Color() (color.NRGBA, bool) {
	switch {
	case v.Token.Is(css.Hash):
		return hexColor(v.Name())
	case v.IsFunction():
		name := strings.ToLower(v.Name())
		if name == "rgb" || name == "rgba" {
			return rgbColor(v.Args)
		}
	}
	return color.NRGBA{}, false
}

func hexColor(s string) (color.NRGBA, bool) {
	var digits []uint8
	for _, ch := range s {
		d, ok := hexDigit(ch)
		if !ok {
			return color.NRGBA{}, false
		}
		digits = append(digits, d)
	}

	c := color.NRGBA{A: 0xFF}
	switch len(digits) {
	case 3, 4:
		c.R, c.G, c.B = digits[0]*0x11, digits[1]*0x11, digits[2]*0x11
		if len(digits) == 4 {
			c.A = digits[3] * 0x11
		}
	case 6, 8:
		c.R, c.G, c.B = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	default:
		return color.NRGBA{}, false
	}
	return c, true
}

func hexDigit(ch rune) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return uint8(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return uint8(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return uint8(ch-'A') + 10, true
	}
	return 0, false
}

// rgbColor takes three channels as numbers (0-255) or percentages, and an
// optional alpha as a number (0-1) or percentage. A '/' before the alpha is
// accepted.
func rgbColor(args []Value) (color.NRGBA, bool) {
	var parts []token.Token
	for _, a := range args {
		if a.Token.Is(css.Delim) && a.Token.Value == '/' {
			continue
		}
		parts = append(parts, a.Token)
	}
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}

	var ch [4]uint8
	ch[3] = 0xFF
	for i, p := range parts {
		n, ok := token.ValueOf[token.Number](p)
		if !ok {
			return color.NRGBA{}, false
		}
		f := n.Float64()
		switch {
		case p.Is(css.Percentage):
			f = f / 100 * 255
		case p.Is(css.Number) && i == 3:
			f *= 255
		case !p.Is(css.Number):
			return color.NRGBA{}, false
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, f))))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}
