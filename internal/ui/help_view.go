package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// helpView lists every key the app understands.
type helpView struct {
	keys *KeyHandler
}

var _ View = (*helpView)(nil)

func newHelpView(keys *KeyHandler) *helpView {
	return &helpView{keys: keys}
}

func (h *helpView) Init() tea.Cmd { return nil }

// Update closes the help on enter, in addition to the overlay's dismiss
// keys.
func (h *helpView) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEnter {
		return h, msgCmd(DismissOverlayMsg{})
	}
	return h, nil
}

var (
	navigationKeys = []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous panel")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	keyboardKeys = []key.Binding{
		key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press key")),
		key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "choose form")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "space")),
	}
)

func (h *helpView) View() string {
	m := newHelpModel()
	columns := [][]key.Binding{navigationKeys, keyboardKeys}
	columns = append(columns, NewKeyMap(h.keys).FullHelp()...)

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Keys") + "\n\n")
	b.WriteString(m.FullHelpView(columns) + "\n\n")
	b.WriteString(Styles.Hint.Render("On the keyboard panel, typing a character presses its key. Esc closes this help."))
	return Styles.Overlay.Render(b.String())
}
