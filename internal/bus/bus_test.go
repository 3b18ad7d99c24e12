package bus

import (
	"fmt"
	"os"
	"testing"

	"fidel/internal/keyboard"
	"fidel/internal/layout"
	"fidel/internal/target"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inline runs calls on the caller's goroutine and counts them.
type inline struct{ calls int }

func (d *inline) Do(fn func()) error {
	d.calls++
	fn()
	return nil
}

func newService(t *testing.T) (*Service, *keyboard.Keyboard, *target.Memory, *inline) {
	t.Helper()
	kb := keyboard.New()
	field := target.NewMemory("main", "")
	kb.Register(field)
	amharic := layout.Amharic()
	d := &inline{}
	return NewService(d, kb, func() *layout.Layout { return amharic }), kb, field, d
}

func TestServicePressAndChoose(t *testing.T) {
	s, _, field, d := newService(t)

	ok, derr := s.Press("ለ")
	require.Nil(t, derr)
	assert.True(t, ok)

	fam, derr := s.Family()
	require.Nil(t, derr)
	assert.Equal(t, []string{"ለ", "ሉ", "ሊ", "ላ", "ሌ", "ል", "ሎ", "ሏ"}, fam)

	ok, derr = s.PressSlot(3)
	require.Nil(t, derr)
	assert.True(t, ok)

	ok, derr = s.PressFamilyMember("ሎ")
	require.Nil(t, derr)
	assert.True(t, ok)

	v, derr := s.Value()
	require.Nil(t, derr)
	assert.Equal(t, "ሎ", v)
	assert.Equal(t, "ሎ", field.Value())
	assert.Equal(t, 5, d.calls, "every call is dispatched")
}

func TestServiceUnknownKey(t *testing.T) {
	s, _, _, _ := newService(t)
	ok, derr := s.Press("Q")
	assert.False(t, ok)
	require.NotNil(t, derr)
	assert.Equal(t, Interface+".Error.UnknownKey", derr.Name)
}

func TestServiceNoTarget(t *testing.T) {
	s, kb, field, _ := newService(t)
	kb.Deregister(field)

	ok, derr := s.Press("ሀ")
	require.Nil(t, derr)
	assert.False(t, ok)

	fam, derr := s.Family()
	require.Nil(t, derr)
	assert.Empty(t, fam)
}

func TestServiceStopped(t *testing.T) {
	kb := keyboard.New()
	stoppedDisp := DispatchFunc(func(func()) error { return ErrStopped })
	s := NewService(stoppedDisp, kb, layout.Amharic)

	_, derr := s.Press("ሀ")
	require.NotNil(t, derr)
	assert.Equal(t, Interface+".Error.Stopped", derr.Name)

	_, derr = s.Value()
	require.NotNil(t, derr)
	_, derr = s.Family()
	require.NotNil(t, derr)
}

func TestServiceTimeoutIsNotStopped(t *testing.T) {
	kb := keyboard.New()
	busy := DispatchFunc(func(func()) error { return fmt.Errorf("press: %w", ErrTimeout) })
	s := NewService(busy, kb, layout.Amharic)

	_, derr := s.Press("ሀ")
	require.NotNil(t, derr)
	assert.Equal(t, Interface+".Error.Timeout", derr.Name)

	_, derr = s.PressSlot(0)
	require.NotNil(t, derr)
	assert.Equal(t, Interface+".Error.Timeout", derr.Name)
}

func TestServiceMethodsAreIntrospectable(t *testing.T) {
	s, _, _, _ := newService(t)
	var names []string
	for _, m := range introspect.Methods(s) {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"Family", "Press", "PressFamilyMember", "PressSlot", "Value"}, names)
}

func TestServeOnSessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no session bus")
	}
	s, _, field, _ := newService(t)
	name := fmt.Sprintf("%s.Test%d", Interface, os.Getpid())
	srv, err := Serve(s, name)
	if err != nil {
		t.Skipf("session bus unavailable: %v", err)
	}
	defer srv.Close()
	assert.Equal(t, name, srv.Name())

	conn, err := dbus.ConnectSessionBus()
	require.NoError(t, err)
	defer conn.Close()

	var ok bool
	obj := conn.Object(name, ObjectPath)
	require.NoError(t, obj.Call(Interface+".Press", 0, "ሰ").Store(&ok))
	assert.True(t, ok)
	assert.Equal(t, "ሰ", field.Value())

	var v string
	require.NoError(t, obj.Call(Interface+".Value", 0).Store(&v))
	assert.Equal(t, "ሰ", v)
}
