package ui

import "fidel/internal/layout"

// LayoutReloadedMsg carries a layout re-read from disk, or the error that
// kept it from loading. On error the current layout stays.
type LayoutReloadedMsg struct {
	Layout *layout.Layout
	Err    error
}

// DispatchMsg runs Fn on the update loop and closes Done afterwards.
type DispatchMsg struct {
	Fn   func()
	Done chan struct{}
}

// NewFieldMsg adds a text field (C-k n).
type NewFieldMsg struct{}

// CloseFieldMsg removes the focused field (C-k x).
type CloseFieldMsg struct{}

// FocusNextMsg and FocusPrevMsg rotate focus (tab, shift+tab).
type FocusNextMsg struct{}

type FocusPrevMsg struct{}

// FocusKeyboardMsg moves focus to the keyboard panel (C-k f).
type FocusKeyboardMsg struct{}

// ToggleKeyboardMsg shows or hides the keyboard panel (C-k k).
type ToggleKeyboardMsg struct{}

// ToggleMinimizeMsg collapses the keyboard to a badge (C-k m).
type ToggleMinimizeMsg struct{}

// ResizeKeyboardMsg widens or narrows the keyboard panel (C-k + / C-k -).
type ResizeKeyboardMsg struct {
	Delta int
}

// ShowHelpMsg opens the help overlay (C-k ?).
type ShowHelpMsg struct{}

// DismissOverlayMsg closes the top overlay.
type DismissOverlayMsg struct{}

// StatusMsg replaces the status line.
type StatusMsg struct {
	Text  string
	Error bool
}
