package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func newHelpModel() help.Model {
	m := help.New()
	m.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	m.Styles.ShortDesc = Styles.Hint
	m.Styles.ShortSeparator = Styles.Hint
	m.Styles.FullKey = m.Styles.ShortKey
	m.Styles.FullDesc = Styles.Hint
	m.Styles.FullSeparator = Styles.Hint
	return m
}

// RenderKeybindHelp produces the transient hint bar shown after the leader
// key, listing what may follow the sequence typed so far.
func RenderKeybindHelp(keyHandler *KeyHandler) string {
	if keyHandler == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)

	content := Styles.Muted.Render(keyHandler.CurrentSeq()) + " " + newHelpModel().ShortHelpView(bindings)
	return boxStyle.Render(content)
}
