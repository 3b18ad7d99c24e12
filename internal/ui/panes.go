package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultPruneInterval is how often tmux panes are checked for liveness.
const DefaultPruneInterval = 2 * time.Second

// LivenessChecker returns the set of live tmux pane IDs.
// In production this is (*tmux.Client).ListPaneIDs.
type LivenessChecker func() (map[string]bool, error)

// paned is implemented by remotes that type into a tmux pane.
type paned interface {
	PaneID() string
}

// PaneLivenessMsg carries the result of a liveness check.
type PaneLivenessMsg struct {
	Live map[string]bool
	Err  error
}

// checkPanesCmd waits d, then lists live panes. It returns nil when there is
// nothing to check.
func (a *AppModel) checkPanesCmd(d time.Duration) tea.Cmd {
	if a.liveness == nil || !a.hasPanes() {
		return nil
	}
	check := a.liveness
	return tea.Tick(d, func(time.Time) tea.Msg {
		live, err := check()
		return PaneLivenessMsg{Live: live, Err: err}
	})
}

func (a *AppModel) hasPanes() bool {
	for _, r := range a.Remotes {
		if _, ok := r.Target.(paned); ok {
			return true
		}
	}
	return false
}

// prunePanes drops remotes whose tmux pane has gone away, deregistering
// them from the keyboard. Returns the number removed.
func (a *AppModel) prunePanes(live map[string]bool) int {
	pruned := 0
	kept := a.Remotes[:0]
	for _, r := range a.Remotes {
		p, ok := r.Target.(paned)
		if !ok || live[p.PaneID()] {
			kept = append(kept, r)
			continue
		}
		id := a.idOf(r)
		a.Keyboard.Deregister(r.Target)
		delete(a.ids, id)
		a.Focus.Remove(id)
		a.setStatus(fmt.Sprintf("%s closed", r.Target.String()), false)
		pruned++
	}
	a.Remotes = kept
	if pruned > 0 && a.Keyboard.Active() == nil {
		if ts := a.Keyboard.Targets(); len(ts) > 0 {
			a.activate(ts[0])
		}
	}
	return pruned
}
