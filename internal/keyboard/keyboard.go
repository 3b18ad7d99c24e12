// Package keyboard implements the input model of an on-screen keyboard,
// independent of any rendering toolkit.
//
// A Keyboard is made of two cooperating parts sharing one text buffer:
//
//   - Registry tracks the text targets the keyboard can write into and which
//     one is active. Hosts forward focus changes to Activate and external
//     edits (typing, paste, cut) to Sync.
//   - Composer turns key presses into buffer edits. Pressing a key that
//     carries a character family inserts the base character and opens the
//     family; choosing a member of the open family then replaces that
//     character instead of adding another one.
//
// Every edit is written through to the active target, which is focused, and
// the target's value is read back so the buffer reflects whatever the
// target accepted.
//
// Keyboard is not safe for concurrent use. Hosts call it from a single
// event loop; adapters on other goroutines post messages to that loop.
package keyboard

// Target is a text-holding endpoint the keyboard writes into.
// Targets are compared by identity, so implementations should be pointers.
type Target interface {
	Value() string
	SetValue(string)
	Focus()
}

// state is shared by Registry and Composer.
type state struct {
	buffer    string
	family    *Family
	observers []func(Event)
}

func (s *state) emit(e Event) {
	e.Length = Len(s.buffer)
	e.FamilyOpen = s.family != nil
	for _, fn := range s.observers {
		fn(e)
	}
}

// Keyboard combines a Registry and a Composer over one buffer.
type Keyboard struct {
	*Registry
	*Composer
	st *state
}

// New returns a keyboard with no targets, an empty buffer and no open family.
func New() *Keyboard {
	st := &state{}
	reg := &Registry{st: st}
	return &Keyboard{
		Registry: reg,
		Composer: &Composer{reg: reg, st: st},
		st:       st,
	}
}

// Observe registers fn to be called after every operation.
func (k *Keyboard) Observe(fn func(Event)) {
	if fn != nil {
		k.st.observers = append(k.st.observers, fn)
	}
}
