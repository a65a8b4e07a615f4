package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

var (
	newline     = []byte{'\n'}
	replacement = []byte(string(utf8.RuneError))
)

// Normalizer canonicalizes raw input before tokenization: CRLF, CR and FF
// become LF, NUL becomes U+FFFD, an encoded surrogate becomes one U+FFFD, and
// other bytes that do not form valid UTF-8 become U+FFFD each.
type Normalizer struct {
	transform.NopResetter
}

// Transform implements transform.Transformer.
func (Normalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		out, n := src[nSrc:nSrc+1], 1

		switch {
		case c == '\r':
			if nSrc+1 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				n = 2
			}
			out = newline
		case c == '\f':
			out = newline
		case c == 0:
			out = replacement
		case c == 0xED && nSrc+1 < len(src) && src[nSrc+1] >= 0xA0 && src[nSrc+1] <= 0xBF:
			// An encoded surrogate is one code point and gets one replacement.
			if nSrc+2 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			out, n = replacement, 2
			if nSrc+2 < len(src) && isContinuation(src[nSrc+2]) {
				n = 3
			}
		case c >= utf8.RuneSelf:
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, size := utf8.DecodeRune(src[nSrc:])
			if r == utf8.RuneError && size <= 1 {
				out, n = replacement, 1
			} else {
				out, n = src[nSrc:nSrc+size], size
			}
		}

		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += n
	}
	return nDst, nSrc, nil
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// Normalize applies Normalizer to a string.
func Normalize(text string) string {
	out, _, err := transform.String(Normalizer{}, text)
	if err != nil {
		// Normalizer never fails on complete input.
		return text
	}
	return out
}

// ReadNormalized reads r to the end through a Normalizer.
func ReadNormalized(r io.Reader) (string, error) {
	b, err := io.ReadAll(transform.NewReader(r, Normalizer{}))
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(b), nil
}

// SplitLines splits normalized text on LF. Text ending in a line break yields
// a final empty line, and empty text yields a single empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}
