package ui

import (
	"sync"
	"time"

	"fidel/internal/bus"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDispatchTimeout bounds how long a D-Bus caller waits for the
// update loop.
const DefaultDispatchTimeout = 5 * time.Second

// ErrDispatchTimeout is returned when the update loop did not run a call in
// time.
var ErrDispatchTimeout = bus.ErrTimeout

// ProgramDispatcher runs functions on a Bubble Tea program's update loop by
// sending DispatchMsg. It implements bus.Dispatcher.
type ProgramDispatcher struct {
	send    func(tea.Msg)
	timeout time.Duration
	stop    chan struct{}
	once    sync.Once
}

var _ bus.Dispatcher = (*ProgramDispatcher)(nil)

// NewProgramDispatcher returns a dispatcher delivering through send,
// normally (*tea.Program).Send.
func NewProgramDispatcher(send func(tea.Msg)) *ProgramDispatcher {
	return &ProgramDispatcher{
		send:    send,
		timeout: DefaultDispatchTimeout,
		stop:    make(chan struct{}),
	}
}

// Do sends fn to the update loop and waits until it has run.
func (d *ProgramDispatcher) Do(fn func()) error {
	select {
	case <-d.stop:
		return bus.ErrStopped
	default:
	}
	done := make(chan struct{})
	d.send(DispatchMsg{Fn: fn, Done: done})

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-d.stop:
		return bus.ErrStopped
	case <-timer.C:
		return ErrDispatchTimeout
	}
}

// Stop fails pending and future calls. Call it when the program exits.
func (d *ProgramDispatcher) Stop() {
	d.once.Do(func() { close(d.stop) })
}
