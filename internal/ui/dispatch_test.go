package ui

import (
	"errors"
	"testing"
	"time"

	"fidel/internal/bus"

	tea "github.com/charmbracelet/bubbletea"
)

// loopSend runs DispatchMsg functions on a goroutine standing in for the
// program's update loop.
func loopSend(msgs chan tea.Msg) func(tea.Msg) {
	go func() {
		for msg := range msgs {
			if d, ok := msg.(DispatchMsg); ok {
				d.Fn()
				close(d.Done)
			}
		}
	}()
	return func(msg tea.Msg) { msgs <- msg }
}

func TestProgramDispatcherRunsOnLoop(t *testing.T) {
	msgs := make(chan tea.Msg)
	defer close(msgs)
	d := NewProgramDispatcher(loopSend(msgs))

	ran := false
	if err := d.Do(func() { ran = true }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Error("function did not run")
	}
}

func TestProgramDispatcherStopped(t *testing.T) {
	sent := 0
	d := NewProgramDispatcher(func(tea.Msg) { sent++ })
	d.Stop()
	d.Stop()

	err := d.Do(func() {})
	if !errors.Is(err, bus.ErrStopped) {
		t.Errorf("got %v, want ErrStopped", err)
	}
	if sent != 0 {
		t.Error("nothing should be sent after Stop")
	}
}

func TestProgramDispatcherStopWhileWaiting(t *testing.T) {
	d := NewProgramDispatcher(func(tea.Msg) {})
	errc := make(chan error, 1)
	go func() { errc <- d.Do(func() {}) }()

	time.Sleep(20 * time.Millisecond)
	d.Stop()
	select {
	case err := <-errc:
		if !errors.Is(err, bus.ErrStopped) {
			t.Errorf("got %v, want ErrStopped", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after Stop")
	}
}

func TestProgramDispatcherTimeout(t *testing.T) {
	d := NewProgramDispatcher(func(tea.Msg) {})
	d.timeout = 10 * time.Millisecond

	err := d.Do(func() {})
	if !errors.Is(err, ErrDispatchTimeout) {
		t.Errorf("got %v, want ErrDispatchTimeout", err)
	}
	if !errors.Is(err, bus.ErrTimeout) || errors.Is(err, bus.ErrStopped) {
		t.Errorf("a timeout must reach the bus as ErrTimeout, got %v", err)
	}
}
