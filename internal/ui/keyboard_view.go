package ui

import (
	"strconv"
	"strings"

	"fidel/internal/keyboard"
	"fidel/internal/layout"
	"fidel/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// KeyboardView is the on-screen keyboard: the family selector row above the
// layout's key rows.
//
// When focused, arrow keys move the key cursor, enter presses the key under
// it, 1-8 choose a selector slot, and backspace and space press the
// matching keys. Characters typed on the physical keyboard are looked up in
// the layout and pressed as well.
type KeyboardView struct {
	kb     *keyboard.Keyboard
	layout *layout.Layout

	Row, Col  int
	Visible   bool
	Minimized bool
	Focused   bool

	MinWidth, MaxWidth int
	width              int // requested width, before the terminal limit
	termWidth          int
}

var _ View = (*KeyboardView)(nil)

// NewKeyboardView returns a visible keyboard for kb showing l.
func NewKeyboardView(kb *keyboard.Keyboard, l *layout.Layout, minWidth, maxWidth int) *KeyboardView {
	v := &KeyboardView{
		kb:       kb,
		layout:   l,
		Visible:  true,
		MinWidth: minWidth,
		MaxWidth: maxWidth,
		width:    maxWidth,
	}
	return v
}

// Layout returns the layout on display.
func (v *KeyboardView) Layout() *layout.Layout { return v.layout }

// SetLayout swaps the layout, keeping the cursor inside it.
func (v *KeyboardView) SetLayout(l *layout.Layout) {
	v.layout = l
	v.move(0, 0)
}

// Width returns the rendered width: the requested width clamped to
// [MinWidth, MaxWidth], and to the terminal once its size is known.
func (v *KeyboardView) Width() int {
	w := clamp(v.width, v.MinWidth, v.MaxWidth)
	if v.termWidth > 0 && w > v.termWidth {
		w = v.termWidth
	}
	return w
}

// Resize changes the requested width by delta columns, clamped to
// [MinWidth, MaxWidth].
func (v *KeyboardView) Resize(delta int) int {
	v.width = clamp(v.width+delta, v.MinWidth, v.MaxWidth)
	return v.Width()
}

// SetTerminalWidth records the terminal width.
func (v *KeyboardView) SetTerminalWidth(w int) { v.termWidth = w }

// Current returns the key under the cursor.
func (v *KeyboardView) Current() (layout.Key, bool) {
	if v.Row < 0 || v.Row >= len(v.layout.Rows) {
		return layout.Key{}, false
	}
	row := v.layout.Rows[v.Row]
	if v.Col < 0 || v.Col >= len(row) {
		return layout.Key{}, false
	}
	return row[v.Col], true
}

func (v *KeyboardView) move(dRow, dCol int) {
	rows := v.layout.Rows
	if len(rows) == 0 {
		v.Row, v.Col = 0, 0
		return
	}
	v.Row = clamp(v.Row+dRow, 0, len(rows)-1)
	v.Col = clamp(v.Col+dCol, 0, len(rows[v.Row])-1)
}

// Init implements View.
func (v *KeyboardView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *KeyboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch km.Type {
	case tea.KeyLeft:
		v.move(0, -1)
	case tea.KeyRight:
		v.move(0, 1)
	case tea.KeyUp:
		v.move(-1, 0)
	case tea.KeyDown:
		v.move(1, 0)
	case tea.KeyEnter:
		if k, ok := v.Current(); ok {
			v.kb.Press(k)
		}
	case tea.KeyBackspace:
		v.pressKind(layout.KindBackspace)
	case tea.KeySpace:
		v.pressKind(layout.KindSpace)
	case tea.KeyRunes:
		s := string(km.Runes)
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= keyboard.SlotCount {
			v.kb.PressSlot(n - 1)
			break
		}
		v.TypeText(s)
	}
	return v, nil
}

// pressKind presses the layout's first key of kind k, so that it carries
// the layout's label and value.
func (v *KeyboardView) pressKind(k layout.Kind) bool {
	for _, row := range v.layout.Rows {
		for _, key := range row {
			if key.Kind == k {
				return v.kb.Press(key)
			}
		}
	}
	return v.kb.Press(layout.Key{Kind: k})
}

// TypeText enters s one character at a time as if the matching keys had
// been pressed. A character that is a member of the open family replaces
// its base; a character belonging to some key's family presses that key
// and then chooses the member. Characters the layout lacks are skipped.
// Returns the number of characters entered.
func (v *KeyboardView) TypeText(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if v.typeChar(g.Str()) {
			n++
		}
	}
	return n
}

func (v *KeyboardView) typeChar(c string) bool {
	switch c {
	case " ":
		return v.pressKind(layout.KindSpace)
	case "\n", "\r":
		return v.pressKind(layout.KindEnter)
	}
	if f, ok := v.kb.Family(); ok && f.Contains(c) && c != f.Base {
		return v.kb.PressFamilyMember(c)
	}
	if k, ok := v.layout.FindValue(c); ok {
		return v.kb.Press(k)
	}
	for _, row := range v.layout.Rows {
		for _, k := range row {
			if !k.HasFamily() {
				continue
			}
			for _, m := range k.Family {
				if m == c {
					return v.kb.Press(k) && v.kb.PressFamilyMember(c)
				}
			}
		}
	}
	return false
}

// View implements View.
func (v *KeyboardView) View() string {
	if !v.Visible {
		return ""
	}
	if v.Minimized {
		badge := "⌨ " + v.layout.Name
		if f, ok := v.kb.Family(); ok {
			badge += " " + Styles.Slot.Render(f.Base)
		}
		return Styles.Badge.Render(badge)
	}

	box := Styles.Box
	if v.Focused {
		box = Styles.BoxFocused
	}
	inner := v.Width() - box.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	cw := v.cellWidth()
	lines := []string{v.renderSlots()}
	for r, row := range v.layout.Rows {
		cells := make([]string, len(row))
		for c, k := range row {
			cells[c] = v.renderKey(k, cw, r == v.Row && c == v.Col)
		}
		lines = append(lines, wrapCells(cells, inner)...)
	}
	return box.Width(v.Width() - box.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func (v *KeyboardView) renderSlots() string {
	slots := v.kb.Slots()
	parts := make([]string, len(slots))
	for i, s := range slots {
		idx := Styles.SlotIndex.Render(strconv.Itoa(i + 1))
		if s == "" {
			parts[i] = idx + Styles.SlotEmpty.Render("·")
		} else {
			parts[i] = idx + Styles.Slot.Render(s)
		}
	}
	return strings.Join(parts, " ")
}

// cellWidth is the widest key label, so that keys line up in columns.
func (v *KeyboardView) cellWidth() int {
	w := 1
	for _, row := range v.layout.Rows {
		for _, k := range row {
			if lw := textutil.VisualWidth(keyLabel(k)); lw > w {
				w = lw
			}
		}
	}
	return w
}

func keyLabel(k layout.Key) string {
	if strings.TrimSpace(k.Label) == "" {
		return "␣"
	}
	return k.Label
}

func (v *KeyboardView) renderKey(k layout.Key, width int, cursor bool) string {
	label := textutil.PadRightVisual(keyLabel(k), width)
	switch {
	case !v.Focused:
		if k.Kind == layout.KindShift && v.kb.Shifted() {
			return Styles.KeyShift.Render(label)
		}
		return Styles.KeyDimmed.Render(label)
	case cursor:
		return Styles.KeyCursor.Render(label)
	case k.Kind == layout.KindShift && v.kb.Shifted():
		return Styles.KeyShift.Render(label)
	default:
		return Styles.Key.Render(label)
	}
}

// wrapCells joins cells into lines no wider than width.
func wrapCells(cells []string, width int) []string {
	var lines []string
	var line []string
	used := 0
	for _, c := range cells {
		w := lipgloss.Width(c)
		if len(line) > 0 && used+w > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, used = nil, 0
		}
		line = append(line, c)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lines
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
