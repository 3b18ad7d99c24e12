package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", tea.Quit)
	reg.Bind("C-k q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("ctrl+c", ModeField) == nil {
		t.Error("expected ctrl+c to be bound")
	}
	if reg.Lookup("C-k  q", ModeField) == nil {
		t.Error("expected C-k q to be bound (whitespace normalized)")
	}
	if reg.Lookup("unknown", ModeField) != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeybindRegistry_ModeFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("C-k x", tea.Quit, "Close field", []FocusMode{ModeField})

	if reg.Lookup("C-k x", ModeField) == nil {
		t.Error("expected C-k x bound in field mode")
	}
	if reg.Lookup("C-k x", ModeKeyboard) != nil {
		t.Error("expected C-k x unbound in keyboard mode")
	}
	if _, ok := reg.LeaderHints("C-k", ModeKeyboard)["x"]; ok {
		t.Error("hint for C-k x shown in keyboard mode")
	}
	if got := reg.LeaderHints("C-k", ModeField)["x"]; got != "Close field" {
		t.Errorf("hint for C-k x: got %q", got)
	}
}

func TestKeybindRegistry_LeaderHintsNested(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("C-k l r", tea.Quit, "Reload layout")
	reg.BindWithDesc("C-k n", tea.Quit, "New field")

	hints := reg.LeaderHints("C-k", ModeField)
	if hints["l"] != "l…" {
		t.Errorf("submenu hint: got %q", hints["l"])
	}
	if hints["n"] != "New field" {
		t.Errorf("leaf hint: got %q", hints["n"])
	}
	if got := reg.LeaderHints("C-k l", ModeField)["r"]; got != "Reload layout" {
		t.Errorf("second level hint: got %q", got)
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("C-k x", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("ctrl+k"))
	if !consumed || cmd != nil {
		t.Errorf("ctrl+k: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after ctrl+k")
	}

	consumed, cmd = h.Handle(keyMsg("x"))
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd == nil {
		t.Fatal("x: expected command")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("C-k x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg("ctrl+k"))
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}

	// Outside leader mode esc belongs to the views.
	if consumed, _ := h.Handle(keyMsg("esc")); consumed {
		t.Error("esc outside leader mode should fall through")
	}
}

func TestKeyHandler_UnknownSequenceLeavesLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("C-k x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg("ctrl+k"))
	consumed, cmd := h.Handle(keyMsg("z"))
	if !consumed || cmd != nil {
		t.Errorf("z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("unknown key should end leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("ctrl+c"))
	if !consumed || cmd == nil {
		t.Errorf("ctrl+c: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", tea.Quit)
	h := NewKeyHandler(reg)

	for _, k := range []string{"j", "ሀ", " "} {
		if consumed, _ := h.Handle(keyMsg(k)); consumed {
			t.Errorf("unbound %q should not be consumed", k)
		}
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("C-k n", tea.Quit, "New field")
	h := NewKeyHandler(reg)

	h.Handle(keyMsg("ctrl+k"))
	out := RenderKeybindHelp(h)
	for _, want := range []string{"C-k", "New field", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("help bar missing %q:\n%s", want, out)
		}
	}
}

func TestKeyMapFullHelpPrefixesLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("C-k q", tea.Quit, "Quit")
	km := NewKeyMap(NewKeyHandler(reg))

	cols := km.FullHelp()
	if len(cols) != 1 || len(cols[0]) != 1 {
		t.Fatalf("FullHelp: got %v", cols)
	}
	if got := cols[0][0].Help().Key; got != "ctrl+k q" {
		t.Errorf("FullHelp key: got %q", got)
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+v":
		return tea.KeyMsg{Type: tea.KeyCtrlV}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
