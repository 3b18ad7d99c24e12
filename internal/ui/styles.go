package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, the active target
	ColorHighlight = "205" // Magenta - focus, key cursor
	ColorDanger    = "196" // Red - errors
	ColorMuted     = "241" // Gray - hints, dimmed keyboard
	ColorText      = "252" // Light gray - key labels
	ColorDim       = "243" // Darker gray - empty slots
	ColorWarning   = "208" // Orange - shift, open family
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Hint    lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Empty   lipgloss.Style
	Section lipgloss.Style

	// Panel boxes. Focused is the panel receiving keys; Active marks the
	// target the keyboard writes into.
	Box        lipgloss.Style
	BoxFocused lipgloss.Style
	BoxActive  lipgloss.Style
	Overlay    lipgloss.Style

	// Keyboard cells
	Key       lipgloss.Style
	KeyCursor lipgloss.Style
	KeyShift  lipgloss.Style
	KeyDimmed lipgloss.Style
	Slot      lipgloss.Style
	SlotEmpty lipgloss.Style
	SlotIndex lipgloss.Style
	Badge     lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDim)).
		Padding(0, 1),
	BoxFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	BoxActive: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	Overlay: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),

	Key: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Padding(0, 1),
	KeyCursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Reverse(true).
		Padding(0, 1),
	KeyShift: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Bold(true).
		Padding(0, 1),
	KeyDimmed: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Slot: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Bold(true),
	SlotEmpty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
	SlotIndex: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Badge: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Foreground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
}
