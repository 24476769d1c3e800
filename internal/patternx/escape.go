// Package patternx builds safe pattern-matching expressions from untrusted
// user input.
package patternx

import "strings"

// metachars is the set of characters that carry meaning in POSIX regular
// expressions (the pattern primitive our text search compiles into).
const metachars = `-[]/{}()*+?.\^$|`

// Escape prefixes every pattern metacharacter in s with a backslash so the
// result matches s literally. Search input is arbitrary caller-supplied text;
// compiling it unescaped would let callers inject their own patterns.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(metachars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
