package target

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"unicode/utf8"

	"fidel/internal/pty"
)

// maxOutput bounds the retained tail of a process's output.
const maxOutput = 8 << 10

// Process types the keyboard's value into a command running behind a PTY.
//
// Edits are sent as DEL bytes followed by the new text, as a user at the
// terminal would type them. Once a line has been submitted with Enter the
// terminal no longer lets it be erased, so Value holds only the line being
// typed: the text after the last newline sent.
type Process struct {
	Name string

	runner pty.Runner
	cmd    *exec.Cmd
	rwc    io.ReadWriteCloser
	value  string
	err    error

	mu       sync.Mutex
	out      []byte
	onOutput func()
	done     chan struct{}
}

// StartProcess runs argv behind a PTY of the given size. onOutput, if not
// nil, is called from the reader goroutine whenever the process writes.
func StartProcess(runner pty.Runner, argv []string, size pty.Size, onOutput func()) (*Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("start process: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	rwc, err := runner.Start(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	p := &Process{
		Name:     strings.Join(argv, " "),
		runner:   runner,
		cmd:      cmd,
		rwc:      rwc,
		onOutput: onOutput,
		done:     make(chan struct{}),
	}
	go p.readLoop()
	return p, nil
}

// Value returns the unsubmitted line.
func (p *Process) Value() string { return p.value }

// SetValue sends the edit from the current value to v.
func (p *Process) SetValue(v string) {
	erase, insert := Diff(p.value, v)
	if erase == 0 && insert == "" {
		return
	}
	payload := strings.Repeat("\x7f", erase) + crlf(insert)
	if _, err := io.WriteString(p.rwc, payload); err != nil {
		p.err = fmt.Errorf("%s: %w", p.Name, err)
		log.Printf("process target: %v", p.err)
		return
	}
	if i := strings.LastIndex(v, "\n"); i >= 0 {
		v = v[i+1:]
	}
	p.value = v
	p.err = nil
}

// Focus is a no-op: the process has no focus of its own.
func (p *Process) Focus() {}

// Err returns the last write error, cleared by the next success.
func (p *Process) Err() error { return p.err }

func (p *Process) String() string { return "pty " + p.Name }

// Output returns the retained tail of what the process has written.
func (p *Process) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.out)
}

// Resize changes the PTY's window size.
func (p *Process) Resize(size pty.Size) error {
	return p.runner.Resize(p.rwc, size)
}

// Close hangs up the PTY and reaps the child.
func (p *Process) Close() error {
	err := p.rwc.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
	}
	<-p.done
	return err
}

func (p *Process) readLoop() {
	defer close(p.done)
	buf := make([]byte, 4096)
	for {
		n, err := p.rwc.Read(buf)
		if n > 0 {
			p.appendOutput(buf[:n])
			if p.onOutput != nil {
				p.onOutput()
			}
		}
		if err != nil {
			return
		}
	}
}

func (p *Process) appendOutput(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = append(p.out, b...)
	if len(p.out) <= maxOutput {
		return
	}
	cut := len(p.out) - maxOutput
	// Do not start the tail in the middle of a UTF-8 sequence.
	for cut < len(p.out) && !utf8.RuneStart(p.out[cut]) {
		cut++
	}
	p.out = append([]byte(nil), p.out[cut:]...)
}
