package keyboard

import "github.com/rivo/uniseg"

// A "character" in the buffer is a user-perceived character (an extended
// grapheme cluster). Every Ethiopic syllable is a single code point, but
// layouts for other scripts may produce base+combining sequences that must
// be erased and replaced as one unit.

// Len returns the number of characters in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// dropLast removes the last character of s. Empty input stays empty.
func dropLast(s string) string {
	if s == "" {
		return ""
	}
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

// replaceLast swaps the last character of s for c.
func replaceLast(s, c string) string {
	return dropLast(s) + c
}
