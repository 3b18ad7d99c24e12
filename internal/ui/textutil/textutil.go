// Package textutil measures and fits text to terminal columns without
// splitting a character from its combining marks.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending it with an
// ellipsis when anything was cut. Characters are kept or dropped whole.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - VisualWidth(TruncateEllipsis)
	if avail < 0 {
		return TruncateEllipsis
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := VisualWidth(g.Str())
		if used+w > avail {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String() + TruncateEllipsis
}

// PadRightVisual pads s with spaces to width columns, truncating it when it
// is wider.
func PadRightVisual(s string, width int) string {
	w := VisualWidth(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
