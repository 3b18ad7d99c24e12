package keyboard

// Registry holds the ordered set of registered targets and the active one.
// The active target is always nil or a registered target.
type Registry struct {
	targets []Target
	active  Target
	st      *state
}

// Register adds t if it is not registered yet. Returns true if t was added.
// The first target registered while none is active becomes active and the
// buffer takes its value.
func (r *Registry) Register(t Target) bool {
	if t == nil || r.indexOf(t) >= 0 {
		r.emit(OpRegister, false)
		return false
	}
	r.targets = append(r.targets, t)
	if r.active == nil {
		r.active = t
		r.st.buffer = t.Value()
	}
	r.emit(OpRegister, true)
	return true
}

// Deregister removes t. Returns false if t was not registered.
// When t was active, activation falls to the first remaining target (or
// none), the buffer resynchronizes and any open family is closed.
func (r *Registry) Deregister(t Target) bool {
	i := -1
	if t != nil {
		i = r.indexOf(t)
	}
	if i < 0 {
		r.emit(OpDeregister, false)
		return false
	}
	r.targets = append(r.targets[:i], r.targets[i+1:]...)
	if r.active == t {
		r.active = nil
		r.st.buffer = ""
		r.st.family = nil
		if len(r.targets) > 0 {
			r.active = r.targets[0]
			r.st.buffer = r.active.Value()
		}
	}
	r.emit(OpDeregister, true)
	return true
}

// Activate makes t the active target. It is a no-op returning false when t
// is not registered or already active. Switching targets loads the new
// target's value into the buffer and closes any open family.
func (r *Registry) Activate(t Target) bool {
	if t == nil || t == r.active || r.indexOf(t) < 0 {
		r.emit(OpActivate, false)
		return false
	}
	r.active = t
	r.st.buffer = t.Value()
	r.st.family = nil
	r.emit(OpActivate, true)
	return true
}

// Sync refreshes the buffer from the active target after an edit the
// keyboard did not make. A value that differs from the buffer closes the
// open family: the last character is no longer the one the keyboard
// inserted. Returns false when no target is active.
func (r *Registry) Sync() bool {
	if r.active == nil {
		r.emit(OpSync, false)
		return false
	}
	v := r.active.Value()
	if v != r.st.buffer {
		r.st.buffer = v
		r.st.family = nil
	}
	r.emit(OpSync, true)
	return true
}

// Active returns the active target, or nil.
func (r *Registry) Active() Target {
	return r.active
}

// Targets returns the registered targets in registration order.
func (r *Registry) Targets() []Target {
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// write pushes v to the active target, focuses it and reads the accepted
// value back into the buffer.
func (r *Registry) write(v string) {
	if r.active == nil {
		return
	}
	r.active.SetValue(v)
	r.active.Focus()
	r.st.buffer = r.active.Value()
}

func (r *Registry) indexOf(t Target) int {
	for i, x := range r.targets {
		if x == t {
			return i
		}
	}
	return -1
}

func (r *Registry) emit(op Op, applied bool) {
	r.st.emit(Event{Op: op, Applied: applied, Targets: len(r.targets)})
}
