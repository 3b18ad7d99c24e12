package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultFieldWidth  = 60
	defaultFieldHeight = 3
)

// FieldView is an editable text field. It is a keyboard target: the
// keyboard writes whole values into it, and the user can also type, paste
// and delete directly.
type FieldView struct {
	Name string
	ta   textarea.Model
}

var _ View = (*FieldView)(nil)

// NewFieldView returns an empty field.
func NewFieldView(name string) *FieldView {
	ta := textarea.New()
	ta.Placeholder = name
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetWidth(defaultFieldWidth)
	ta.SetHeight(defaultFieldHeight)
	return &FieldView{Name: name, ta: ta}
}

// Value implements keyboard.Target.
func (f *FieldView) Value() string { return f.ta.Value() }

// SetValue implements keyboard.Target. The cursor ends up after the text.
func (f *FieldView) SetValue(v string) { f.ta.SetValue(v) }

// Focus implements keyboard.Target by showing the field's cursor.
func (f *FieldView) Focus() { f.ta.Focus() }

// Blur hides the field's cursor.
func (f *FieldView) Blur() { f.ta.Blur() }

// Focused reports whether the cursor is shown.
func (f *FieldView) Focused() bool { return f.ta.Focused() }

func (f *FieldView) String() string { return f.Name }

// SetWidth resizes the field to w columns.
func (f *FieldView) SetWidth(w int) { f.ta.SetWidth(w) }

// Init implements View.
func (f *FieldView) Init() tea.Cmd { return nil }

// Update implements View by passing input to the text area.
func (f *FieldView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	f.ta, cmd = f.ta.Update(msg)
	return f, cmd
}

// View implements View.
func (f *FieldView) View() string { return f.ta.View() }
