package ui

// FocusMode says what kind of panel has focus. Leader bindings can be
// limited to some modes.
type FocusMode int

const (
	ModeField FocusMode = iota
	ModeRemote
	ModeKeyboard
)

func (m FocusMode) String() string {
	switch m {
	case ModeField:
		return "Field"
	case ModeRemote:
		return "Remote"
	case ModeKeyboard:
		return "Keyboard"
	default:
		return "Unknown"
	}
}
