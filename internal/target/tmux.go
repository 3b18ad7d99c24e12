package target

import (
	"fmt"
	"log"
)

// PaneClient is the subset of *tmux.Client a pane target needs.
type PaneClient interface {
	SendLiteral(paneID, text string) error
	SendBackspace(paneID string, n int) error
}

// TmuxPane types the keyboard's value into a tmux pane.
//
// The pane's contents cannot be read, so Value reports what was last
// delivered successfully. A failed delivery leaves Value unchanged, which
// the keyboard reads back as a rejected edit.
type TmuxPane struct {
	ID     string
	Title  string
	client PaneClient
	value  string
	err    error
}

// NewTmuxPane returns a target for paneID. The pane is assumed to start with
// nothing typed on the current line.
func NewTmuxPane(client PaneClient, paneID, title string) *TmuxPane {
	if title == "" {
		title = paneID
	}
	return &TmuxPane{ID: paneID, Title: title, client: client}
}

func (p *TmuxPane) Value() string { return p.value }

// SetValue sends the edit from the current value to v.
func (p *TmuxPane) SetValue(v string) {
	erase, insert := Diff(p.value, v)
	if err := p.client.SendBackspace(p.ID, erase); err != nil {
		p.fail(err)
		return
	}
	if err := p.client.SendLiteral(p.ID, insert); err != nil {
		// The erase went through; keep the value in step with the pane.
		p.value = v[:len(v)-len(insert)]
		p.fail(err)
		return
	}
	p.value = v
	p.err = nil
}

// Focus is a no-op: the keyboard keeps terminal focus and only types into
// the pane.
func (p *TmuxPane) Focus() {}

// Err returns the last delivery error, cleared by the next success.
func (p *TmuxPane) Err() error { return p.err }

func (p *TmuxPane) String() string { return "tmux " + p.Title }

func (p *TmuxPane) fail(err error) {
	p.err = fmt.Errorf("pane %s: %w", p.ID, err)
	log.Printf("tmux target: %v", p.err)
}

// PaneID returns the tmux pane ID, e.g. "%3".
func (p *TmuxPane) PaneID() string { return p.ID }
