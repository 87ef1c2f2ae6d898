package text

import (
	"strings"
	"unicode"
)

// CleanASCII lower-cases s and replaces every rune that is not an ASCII
// letter, an ASCII digit or whitespace with a single space. Digits are kept.
func CleanASCII(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case unicode.IsSpace(c):
			b.WriteRune(c)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
