package ui

import (
	"strings"

	"fidel/internal/keyboard"
	"fidel/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Remote is a target outside the UI, such as a tmux pane or a process.
type Remote interface {
	keyboard.Target
	String() string
	Err() error
}

// outputter is implemented by remotes that produce output worth showing.
type outputter interface {
	Output() string
}

// ProcessOutputMsg tells the UI that a process target wrote output.
type ProcessOutputMsg struct{}

const remoteOutputHeight = 6

// RemoteView shows what has been typed into a remote target, and for
// processes, the tail of their output.
type RemoteView struct {
	Target   Remote
	viewport viewport.Model
}

var _ View = (*RemoteView)(nil)

// NewRemoteView wraps t.
func NewRemoteView(t Remote) *RemoteView {
	return &RemoteView{
		Target:   t,
		viewport: viewport.New(defaultFieldWidth, remoteOutputHeight),
	}
}

// HasOutput reports whether the target produces output.
func (r *RemoteView) HasOutput() bool {
	_, ok := r.Target.(outputter)
	return ok
}

// SetWidth resizes the output pane.
func (r *RemoteView) SetWidth(w int) { r.viewport.Width = w }

// Init implements View.
func (r *RemoteView) Init() tea.Cmd { return nil }

// Update implements View. Output notifications refresh the viewport;
// scrolling keys are passed to it.
func (r *RemoteView) Update(msg tea.Msg) (View, tea.Cmd) {
	if _, ok := msg.(ProcessOutputMsg); ok {
		r.refresh()
		return r, nil
	}
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

func (r *RemoteView) refresh() {
	o, ok := r.Target.(outputter)
	if !ok {
		return
	}
	r.viewport.SetContent(terminalText(o.Output()))
	r.viewport.GotoBottom()
}

// View implements View.
func (r *RemoteView) View() string {
	var b strings.Builder
	typed := r.Target.Value()
	if typed == "" {
		b.WriteString(Styles.Empty.Render("nothing typed"))
	} else {
		b.WriteString(textutil.Truncate(lastLine(typed), r.viewport.Width))
	}
	if err := r.Target.Err(); err != nil {
		b.WriteString("\n" + Styles.Error.Render(err.Error()))
	}
	if r.HasOutput() {
		b.WriteString("\n" + r.viewport.View())
	}
	return b.String()
}

// terminalText turns raw terminal output into plain lines.
func terminalText(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "")
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return "⏎ " + s[i+1:]
	}
	return s
}
