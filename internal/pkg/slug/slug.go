// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases s, keeps letters and digits, and collapses every other
// run of characters into a single hyphen. Leading and trailing hyphens are
// trimmed.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		case !prevHyphen && b.Len() > 0:
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Truncate shortens a slug to at most n bytes without splitting a word,
// trimming any trailing hyphen left behind.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}
