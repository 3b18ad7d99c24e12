package ui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Overlay is a popup drawn over the whole screen.
type Overlay struct {
	View    View
	Dismiss []string // keys that close it, as tea.KeyMsg.String() reports them
}

// OverlayStack holds the open overlays. Only the top one receives keys.
type OverlayStack struct {
	stack []Overlay
}

// Push opens o above any open overlay.
func (s *OverlayStack) Push(o Overlay) {
	s.stack = append(s.stack, o)
}

// Pop closes the top overlay. Returns false if none was open.
func (s *OverlayStack) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Top returns the view of the top overlay.
func (s *OverlayStack) Top() (View, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	return s.stack[len(s.stack)-1].View, true
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int { return len(s.stack) }

// HandleKey closes the top overlay on one of its dismiss keys and otherwise
// passes msg to it. It reports false when no overlay is open, leaving msg
// for the screen underneath.
func (s *OverlayStack) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	top := &s.stack[len(s.stack)-1]
	if slices.Contains(top.Dismiss, msg.String()) {
		s.Pop()
		return nil, true
	}
	var cmd tea.Cmd
	top.View, cmd = top.View.Update(msg)
	return cmd, true
}
