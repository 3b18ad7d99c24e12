// Package bus exposes the keyboard on the D-Bus session bus so other
// programs (hotkey daemons, scripts, window manager bindings) can press keys.
//
// D-Bus calls arrive on godbus's goroutines. Every call is handed to a
// Dispatcher, which runs it on the goroutine that owns the keyboard.
package bus

import (
	"errors"
	"fmt"
	"log"

	"fidel/internal/keyboard"
	"fidel/internal/layout"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// ObjectPath is where the keyboard object is exported.
	ObjectPath = dbus.ObjectPath("/org/fidel/Keyboard")
	// Interface is the keyboard's D-Bus interface name.
	Interface = "org.fidel.Keyboard"

	errUnknownKey = Interface + ".Error.UnknownKey"
	errStopped    = Interface + ".Error.Stopped"
	errTimeout    = Interface + ".Error.Timeout"
)

var (
	// ErrStopped is returned by a Dispatcher that can no longer run calls.
	ErrStopped = errors.New("keyboard stopped")
	// ErrTimeout is returned by a Dispatcher whose keyboard goroutine did
	// not run a call in time. The keyboard may still be alive.
	ErrTimeout = errors.New("keyboard busy: dispatch timed out")
)

// Dispatcher runs fn on the keyboard's goroutine and waits for it to
// return.
type Dispatcher interface {
	Do(fn func()) error
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func()) error

func (f DispatchFunc) Do(fn func()) error { return f(fn) }

// Keyboard is the part of *keyboard.Keyboard the bus drives.
type Keyboard interface {
	Press(layout.Key) bool
	PressFamilyMember(string) bool
	PressSlot(int) bool
	Value() string
	Family() (keyboard.Family, bool)
}

// Service holds the exported methods. Each returns *dbus.Error as its last
// result, which is how godbus recognizes a method.
type Service struct {
	disp   Dispatcher
	kb     Keyboard
	layout func() *layout.Layout
}

// NewService returns a Service pressing keys of the layout currentLayout
// returns at call time.
func NewService(disp Dispatcher, kb Keyboard, currentLayout func() *layout.Layout) *Service {
	return &Service{disp: disp, kb: kb, layout: currentLayout}
}

// Press presses the key labelled label. It reports whether the keyboard
// applied it.
func (s *Service) Press(label string) (bool, *dbus.Error) {
	var pressed, found bool
	err := s.disp.Do(func() {
		var k layout.Key
		k, found = s.layout().Find(label)
		if found {
			pressed = s.kb.Press(k)
		}
	})
	if err != nil {
		return false, dispatchError(err)
	}
	if !found {
		return false, dbus.NewError(errUnknownKey, []interface{}{fmt.Sprintf("no key labelled %q", label)})
	}
	return pressed, nil
}

// PressFamilyMember chooses char from the open family, or inserts it when
// it is not a member.
func (s *Service) PressFamilyMember(char string) (bool, *dbus.Error) {
	var pressed bool
	if err := s.disp.Do(func() { pressed = s.kb.PressFamilyMember(char) }); err != nil {
		return false, dispatchError(err)
	}
	return pressed, nil
}

// PressSlot chooses the character in selector slot i (0-based).
func (s *Service) PressSlot(i int32) (bool, *dbus.Error) {
	var pressed bool
	if err := s.disp.Do(func() { pressed = s.kb.PressSlot(int(i)) }); err != nil {
		return false, dispatchError(err)
	}
	return pressed, nil
}

// Value returns the keyboard's buffer.
func (s *Service) Value() (string, *dbus.Error) {
	var v string
	if err := s.disp.Do(func() { v = s.kb.Value() }); err != nil {
		return "", dispatchError(err)
	}
	return v, nil
}

// Family returns the open family as [base, members...], or an empty list.
func (s *Service) Family() ([]string, *dbus.Error) {
	out := []string{}
	err := s.disp.Do(func() {
		if f, ok := s.kb.Family(); ok {
			out = append(append(out, f.Base), f.Members...)
		}
	})
	if err != nil {
		return nil, dispatchError(err)
	}
	return out, nil
}

// dispatchError maps a Dispatcher failure to a D-Bus error name.
func dispatchError(err error) *dbus.Error {
	name := errStopped
	if errors.Is(err, ErrTimeout) {
		name = errTimeout
	}
	return dbus.NewError(name, []interface{}{err.Error()})
}

// Server owns the bus connection a Service is exported on.
type Server struct {
	conn *dbus.Conn
	name string
}

// Serve connects to the session bus, exports s and requests name.
func Serve(s *Service, name string) (*Server, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	srv, err := Export(conn, s, name)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return srv, nil
}

// Export exports s on conn and requests name. The name must not already be
// owned.
func Export(conn *dbus.Conn, s *Service, name string) (*Server, error) {
	if err := conn.Export(s, ObjectPath, Interface); err != nil {
		return nil, fmt.Errorf("export keyboard: %w", err)
	}
	node := &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{Name: Interface, Methods: introspect.Methods(s)},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return nil, fmt.Errorf("export introspection: %w", err)
	}

	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return nil, fmt.Errorf("request bus name %s: %w", name, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return nil, fmt.Errorf("bus name %s already taken", name)
	}
	log.Printf("bus: serving %s on %s", Interface, name)
	return &Server{conn: conn, name: name}, nil
}

// Name returns the owned bus name.
func (s *Server) Name() string { return s.name }

// Close releases the name and closes the connection.
func (s *Server) Close() error {
	if _, err := s.conn.ReleaseName(s.name); err != nil {
		log.Printf("bus: release %s: %v", s.name, err)
	}
	return s.conn.Close()
}
