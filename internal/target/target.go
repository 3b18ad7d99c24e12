// Package target provides keyboard.Target implementations that live outside
// the keyboard's own UI: an in-memory buffer, a tmux pane, and a child
// process behind a PTY.
//
// tmux panes and PTYs cannot be read back or overwritten, so the remote
// targets keep the last value they were given and replay only the edit: a
// run of erases followed by the new suffix.
package target

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Diff returns how to turn prev into next by erasing characters from the end
// of prev and typing insert. Characters are grapheme clusters, matching how
// terminals erase with backspace.
func Diff(prev, next string) (erase int, insert string) {
	og := uniseg.NewGraphemes(prev)
	ng := uniseg.NewGraphemes(next)
	common := 0 // bytes of shared prefix
	for og.Next() {
		if !ng.Next() || og.Str() != ng.Str() {
			break
		}
		_, common = og.Positions()
	}
	return uniseg.GraphemeClusterCount(prev[common:]), next[common:]
}

// Memory is a target backed by a string. It is used for headless operation
// and by tests.
type Memory struct {
	Name    string
	value   string
	Focuses int
}

// NewMemory returns a Memory target holding value.
func NewMemory(name, value string) *Memory {
	return &Memory{Name: name, value: value}
}

func (m *Memory) Value() string     { return m.value }
func (m *Memory) SetValue(v string) { m.value = v }
func (m *Memory) Focus()            { m.Focuses++ }
func (m *Memory) String() string    { return m.Name }

// crlf maps newlines to carriage returns, which is what the Enter key sends
// to a terminal.
func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r")
}
