// Package tmux drives tmux panes via exec so the keyboard can type into
// programs running in other panes. Commands target the current tmux server
// (the TMUX env var must be set when running inside tmux).
package tmux

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ExecFunc runs tmux with args and returns its combined output.
// In production this is Exec; tests inject a stub.
type ExecFunc func(args ...string) (string, error)

// Exec runs the tmux binary.
func Exec(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}

// Client issues tmux commands through an ExecFunc.
type Client struct {
	exec ExecFunc
}

// New returns a client. A nil fn uses Exec.
func New(fn ExecFunc) *Client {
	if fn == nil {
		fn = Exec
	}
	return &Client{exec: fn}
}

// SendLiteral types text into the pane as-is. Newlines are delivered as Enter.
func (c *Client) SendLiteral(paneID, text string) error {
	if text == "" {
		return nil
	}
	_, err := c.exec("send-keys", "-l", "-t", paneID, text)
	return err
}

// SendBackspace presses BSpace n times in the pane.
func (c *Client) SendBackspace(paneID string, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := c.exec("send-keys", "-t", paneID, "-N", strconv.Itoa(n), "BSpace")
	return err
}

// SplitPane creates a new pane in the current window with cwd set to workDir,
// leaving focus on the calling pane. Returns the new pane ID (e.g. %4).
func (c *Client) SplitPane(workDir string) (string, error) {
	out, err := c.exec("split-window", "-d", "-h", "-P", "-F", "#{pane_id}", "-c", workDir)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", fmt.Errorf("tmux split-window: no pane id returned")
	}
	return id, nil
}

// KillPane kills the pane with the given ID.
func (c *Client) KillPane(paneID string) error {
	_, err := c.exec("kill-pane", "-t", paneID)
	return err
}

// ListPaneIDs returns all live pane IDs across all tmux sessions/windows.
// Each ID looks like "%42".
func (c *Client) ListPaneIDs() (map[string]bool, error) {
	out, err := c.exec("list-panes", "-a", "-F", "#{pane_id}")
	if err != nil {
		return nil, err
	}
	panes := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			panes[line] = true
		}
	}
	return panes, nil
}

// PaneTitle returns "<command> (<pane id>)" for display, e.g. "bash (%3)".
func (c *Client) PaneTitle(paneID string) (string, error) {
	out, err := c.exec("display-message", "-p", "-t", paneID, "#{pane_current_command}")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(out), paneID), nil
}
