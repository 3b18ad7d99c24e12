package ui

import (
	"fmt"
	"log"
	"strings"

	"fidel/internal/keyboard"
	"fidel/internal/layout"
	"fidel/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	keyboardID = "keyboard"
	resizeStep = 10
	maxFieldW  = 100
)

// Options configures the initial screen.
type Options struct {
	Layout    *layout.Layout
	Fields    []string // names of the text fields to create
	Remotes   []Remote
	Visible   bool
	Minimized bool
	MinWidth  int
	MaxWidth  int
	// Liveness, if set, is polled to drop tmux remotes whose pane closed.
	Liveness  LivenessChecker
}

// AppModel is the root model: text fields and remote targets stacked above
// the keyboard panel.
type AppModel struct {
	Keyboard   *keyboard.Keyboard
	Panel      *KeyboardView
	Fields     []*FieldView
	Remotes    []*RemoteView
	Focus      *FocusManager
	KeyHandler *KeyHandler
	Overlays   OverlayStack

	Status    string
	StatusErr bool

	width, height int
	fieldSeq      int
	ids           map[string]View
	liveness      LivenessChecker
}

// NewAppModel builds the screen around kb, registering every field and
// remote with it. Focus starts on the first target.
func NewAppModel(kb *keyboard.Keyboard, opts Options) *AppModel {
	if opts.Layout == nil {
		opts.Layout = layout.Amharic()
	}
	a := &AppModel{
		Keyboard:   kb,
		Panel:      NewKeyboardView(kb, opts.Layout, opts.MinWidth, opts.MaxWidth),
		KeyHandler: NewKeyHandler(newRegistry()),
		ids:        make(map[string]View),
		liveness:   opts.Liveness,
	}
	a.Panel.Visible = opts.Visible
	a.Panel.Minimized = opts.Minimized
	a.Focus = &FocusManager{OnChange: a.focusChanged}

	for _, name := range opts.Fields {
		a.addField(name)
	}
	for i, r := range opts.Remotes {
		rv := NewRemoteView(r)
		id := fmt.Sprintf("remote:%d", i)
		a.ids[id] = rv
		a.Remotes = append(a.Remotes, rv)
		kb.Register(r)
		a.Focus.Insert(id, "")
	}
	if a.Panel.Visible {
		a.Focus.Insert(keyboardID, "")
	}
	if len(a.Focus.Order) > 0 {
		a.Focus.SetFocus(a.Focus.Order[0])
	}
	return a
}

func newRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("tab", msgCmd(FocusNextMsg{}), "Next panel")
	reg.BindWithDesc("shift+tab", msgCmd(FocusPrevMsg{}), "Previous panel")
	reg.BindWithDesc("C-k n", msgCmd(NewFieldMsg{}), "New field")
	reg.BindWithDescForMode("C-k x", msgCmd(CloseFieldMsg{}), "Close field", []FocusMode{ModeField})
	reg.BindWithDesc("C-k f", msgCmd(FocusKeyboardMsg{}), "Focus keyboard")
	reg.BindWithDesc("C-k k", msgCmd(ToggleKeyboardMsg{}), "Show/hide keyboard")
	reg.BindWithDesc("C-k m", msgCmd(ToggleMinimizeMsg{}), "Minimize keyboard")
	reg.BindWithDesc("C-k +", msgCmd(ResizeKeyboardMsg{Delta: resizeStep}), "Wider keyboard")
	reg.BindWithDesc("C-k -", msgCmd(ResizeKeyboardMsg{Delta: -resizeStep}), "Narrower keyboard")
	reg.BindWithDesc("C-k ?", msgCmd(ShowHelpMsg{}), "Help")
	reg.BindWithDesc("C-k q", tea.Quit, "Quit")
	return reg
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// CurrentLayout returns the layout on display. Call it from the update
// loop only.
func (a *AppModel) CurrentLayout() *layout.Layout { return a.Panel.Layout() }

func (a *AppModel) addField(name string) *FieldView {
	a.fieldSeq++
	f := NewFieldView(name)
	if a.width > 0 {
		f.SetWidth(fieldWidth(a.width))
	}
	id := fmt.Sprintf("field:%d", a.fieldSeq)
	a.ids[id] = f
	a.Fields = append(a.Fields, f)
	a.Keyboard.Register(f)
	// Fields come before remotes and the keyboard in tab order.
	before := keyboardID
	if len(a.Remotes) > 0 {
		before = a.idOf(a.Remotes[0])
	}
	a.Focus.Insert(id, before)
	return f
}

func (a *AppModel) closeField() {
	id := a.Focus.Current
	f, ok := a.ids[id].(*FieldView)
	if !ok {
		return
	}
	a.Keyboard.Deregister(f)
	delete(a.ids, id)
	for i, x := range a.Fields {
		if x == f {
			a.Fields = append(a.Fields[:i], a.Fields[i+1:]...)
			break
		}
	}
	a.Focus.Remove(id)
	if a.Keyboard.Active() == nil {
		if ts := a.Keyboard.Targets(); len(ts) > 0 {
			a.activate(ts[0])
		}
	}
	a.setStatus(fmt.Sprintf("closed %s", f.Name), false)
}

func (a *AppModel) idOf(v View) string {
	for id, x := range a.ids {
		if x == v {
			return id
		}
	}
	return ""
}

// focusChanged keeps the keyboard's active target and the key handler's
// mode in step with panel focus.
func (a *AppModel) focusChanged(_, to string) {
	a.Panel.Focused = to == keyboardID
	switch v := a.ids[to].(type) {
	case *FieldView:
		a.KeyHandler.Mode = ModeField
		a.activate(v)
	case *RemoteView:
		a.KeyHandler.Mode = ModeRemote
		a.activate(v.Target)
	default:
		a.KeyHandler.Mode = ModeKeyboard
	}
}

// activate makes t the keyboard's target and shows the cursor in it when
// it is a field.
func (a *AppModel) activate(t keyboard.Target) {
	a.Keyboard.Activate(t)
	for _, f := range a.Fields {
		if keyboard.Target(f) == t {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func (a *AppModel) toggleKeyboard() {
	a.Panel.Visible = !a.Panel.Visible
	if a.Panel.Visible {
		a.Focus.Insert(keyboardID, "")
		return
	}
	a.Focus.Remove(keyboardID)
}

func (a *AppModel) setStatus(text string, isErr bool) {
	a.Status = text
	a.StatusErr = isErr
}

func fieldWidth(termWidth int) int {
	w := termWidth - Styles.Box.GetHorizontalFrameSize()
	return clamp(w, 10, maxFieldW)
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.checkPanesCmd(DefaultPruneInterval)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Panel.SetTerminalWidth(msg.Width)
		for _, f := range a.Fields {
			f.SetWidth(fieldWidth(msg.Width))
		}
		for _, r := range a.Remotes {
			r.SetWidth(fieldWidth(msg.Width))
		}
		return a, nil
	case DispatchMsg:
		msg.Fn()
		close(msg.Done)
		return a, nil
	case LayoutReloadedMsg:
		if msg.Err != nil {
			a.setStatus("layout reload failed: "+msg.Err.Error(), true)
			return a, nil
		}
		a.Panel.SetLayout(msg.Layout)
		a.setStatus("layout "+msg.Layout.Name+" loaded", false)
		return a, nil
	case PaneLivenessMsg:
		if msg.Err != nil {
			log.Printf("pane liveness: %v", msg.Err)
		} else {
			a.prunePanes(msg.Live)
		}
		return a, a.checkPanesCmd(DefaultPruneInterval)
	case ProcessOutputMsg:
		for _, r := range a.Remotes {
			r.Update(msg)
		}
		return a, nil
	case StatusMsg:
		a.setStatus(msg.Text, msg.Error)
		return a, nil
	case NewFieldMsg:
		f := a.addField(fmt.Sprintf("field %d", a.fieldSeq+1))
		a.Focus.SetFocus(a.idOf(f))
		return a, nil
	case CloseFieldMsg:
		a.closeField()
		return a, nil
	case FocusNextMsg:
		a.Focus.Next()
		return a, nil
	case FocusPrevMsg:
		a.Focus.Prev()
		return a, nil
	case FocusKeyboardMsg:
		a.Focus.SetFocus(keyboardID)
		return a, nil
	case ToggleKeyboardMsg:
		a.toggleKeyboard()
		return a, nil
	case ToggleMinimizeMsg:
		if !a.Panel.Visible {
			a.toggleKeyboard()
		}
		a.Panel.Minimized = !a.Panel.Minimized
		return a, nil
	case ResizeKeyboardMsg:
		w := a.Panel.Resize(msg.Delta)
		a.setStatus(fmt.Sprintf("keyboard width %d", w), false)
		return a, nil
	case ShowHelpMsg:
		a.Overlays.Push(Overlay{View: newHelpView(a.KeyHandler), Dismiss: []string{"esc", "q", "?"}})
		return a, nil
	case DismissOverlayMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		if cmd, ok := a.Overlays.HandleKey(msg); ok {
			return a, cmd
		}
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
		return a, a.routeKey(msg)
	}

	// Non-key messages can still edit a field: a clipboard paste arrives
	// after the ctrl+v that requested it.
	if f, ok := a.ids[a.Focus.Current].(*FieldView); ok {
		return a, a.updateField(f, msg)
	}
	return a, nil
}

// updateField passes msg to f and reports an edit it made to the keyboard
// with Sync.
func (a *AppModel) updateField(f *FieldView, msg tea.Msg) tea.Cmd {
	before := f.Value()
	_, cmd := f.Update(msg)
	if f.Value() != before && a.Keyboard.Active() == keyboard.Target(f) {
		a.Keyboard.Sync()
	}
	return cmd
}

// routeKey hands a key to the focused panel. Edits made directly in a field
// are reported to the keyboard with Sync.
func (a *appModelAdapter) routeKey(msg tea.KeyMsg) tea.Cmd {
	switch v := a.ids[a.Focus.Current].(type) {
	case *FieldView:
		return a.updateField(v, msg)
	case *RemoteView:
		switch msg.Type {
		case tea.KeyPgUp, tea.KeyPgDown:
			_, cmd := v.Update(msg)
			return cmd
		case tea.KeyEnter:
			a.Panel.pressKind(layout.KindEnter)
			return nil
		case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
			return nil
		}
	}
	_, cmd := a.Panel.Update(msg)
	return cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Top(); ok {
		v := top.View()
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, v)
		}
		return v
	}

	sections := []string{a.header()}
	for _, f := range a.Fields {
		sections = append(sections, a.renderPanel(f, f.Name, f.View()))
	}
	for _, r := range a.Remotes {
		sections = append(sections, a.renderPanel(r, r.Target.String(), r.View()))
	}
	if kb := a.Panel.View(); kb != "" {
		sections = append(sections, kb)
	}
	if a.Status != "" {
		style := Styles.Status
		if a.StatusErr {
			style = Styles.Error
		}
		sections = append(sections, style.Render(a.Status))
	}
	if a.KeyHandler.LeaderWaiting {
		sections = append(sections, RenderKeybindHelp(a.KeyHandler))
	} else {
		sections = append(sections, Styles.Hint.Render("tab: next panel  ctrl+k: commands  ctrl+k ?: help"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *AppModel) header() string {
	parts := []string{Styles.Title.Render("fidel"), Styles.Muted.Render(a.Panel.Layout().Name)}
	if t := a.Keyboard.Active(); t != nil {
		parts = append(parts, Styles.Muted.Render("→ ")+Styles.Status.Render(textutil.Truncate(targetName(t), 40)))
	} else {
		parts = append(parts, Styles.Empty.Render("no target"))
	}
	return strings.Join(parts, " ")
}

func (a *AppModel) renderPanel(v View, title, body string) string {
	id := a.idOf(v)
	var t keyboard.Target
	switch x := v.(type) {
	case *FieldView:
		t = x
	case *RemoteView:
		t = x.Target
	}
	active := t != nil && a.Keyboard.Active() == t

	box := Styles.Box
	switch {
	case a.Focus.Current == id:
		box = Styles.BoxFocused
	case active:
		box = Styles.BoxActive
	}
	heading := Styles.Section.Render(title)
	if active {
		heading += Styles.Status.Render(" ●")
	}
	return box.Render(heading + "\n" + body)
}

func targetName(t keyboard.Target) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return "target"
}
