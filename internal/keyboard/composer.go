package keyboard

import "fidel/internal/layout"

// SlotCount is the number of positions in the family selector row.
const SlotCount = 8

// Family is an open character family: the base character just inserted and
// its alternates.
type Family struct {
	Base    string
	Members []string
}

// Contains reports whether c is the base or one of the members.
func (f Family) Contains(c string) bool {
	if c == f.Base {
		return true
	}
	for _, m := range f.Members {
		if m == c {
			return true
		}
	}
	return false
}

// Slots lays the family out as [base, members...] over SlotCount positions.
// Positions past the family are empty; members beyond the last slot are not
// shown.
func (f Family) Slots() [SlotCount]string {
	var s [SlotCount]string
	s[0] = f.Base
	for i, m := range f.Members {
		if i+1 >= SlotCount {
			break
		}
		s[i+1] = m
	}
	return s
}

// Composer applies key presses to the buffer.
//
// It has two states: idle, and family-open after a key with a family was
// pressed. Any other press closes the family.
type Composer struct {
	reg   *Registry
	st    *state
	shift bool
}

// Press applies k to the buffer and writes the result to the active target.
// Presses are ignored (returning false) when no target is active.
func (c *Composer) Press(k layout.Key) bool {
	if c.reg.active == nil {
		c.emit(Event{Op: OpPress, Kind: k.Kind})
		return false
	}

	if k.HasFamily() {
		c.reg.write(c.st.buffer + k.Value)
		members := make([]string, len(k.Family))
		copy(members, k.Family)
		c.st.family = &Family{Base: k.Value, Members: members}
		c.emit(Event{Op: OpPress, Kind: k.Kind, Applied: true})
		return true
	}

	c.st.family = nil
	switch k.Kind {
	case layout.KindChar, layout.KindPoint:
		c.reg.write(c.st.buffer + k.Value)
	case layout.KindSpace:
		c.reg.write(c.st.buffer + " ")
	case layout.KindEnter:
		c.reg.write(c.st.buffer + "\n")
	case layout.KindBackspace:
		if c.st.buffer != "" {
			c.reg.write(dropLast(c.st.buffer))
		}
	case layout.KindShift:
		c.shift = !c.shift
	}
	c.emit(Event{Op: OpPress, Kind: k.Kind, Applied: true})
	return true
}

// PressFamilyMember commits ch from the open family's selector. A member of
// the open family replaces the last character; anything else is inserted.
// The family stays open either way. Returns false, doing nothing, when no
// family is open or ch is empty.
func (c *Composer) PressFamilyMember(ch string) bool {
	f := c.st.family
	if f == nil || ch == "" || c.reg.active == nil {
		c.emit(Event{Op: OpFamilyMember})
		return false
	}
	replace := f.Contains(ch)
	if replace {
		c.reg.write(replaceLast(c.st.buffer, ch))
	} else {
		c.reg.write(c.st.buffer + ch)
	}
	c.emit(Event{Op: OpFamilyMember, Applied: true, Replaced: replace})
	return true
}

// PressSlot selects position i of the family selector row. Empty or
// out-of-range slots are ignored.
func (c *Composer) PressSlot(i int) bool {
	if i < 0 || i >= SlotCount {
		return false
	}
	return c.PressFamilyMember(c.Slots()[i])
}

// Family returns the open family, if any.
func (c *Composer) Family() (Family, bool) {
	if c.st.family == nil {
		return Family{}, false
	}
	return *c.st.family, true
}

// Slots returns the selector row for the open family; all empty when idle.
func (c *Composer) Slots() [SlotCount]string {
	if c.st.family == nil {
		return [SlotCount]string{}
	}
	return c.st.family.Slots()
}

// Value returns the buffer.
func (c *Composer) Value() string {
	return c.st.buffer
}

// Shifted reports the display-only shift state.
func (c *Composer) Shifted() bool {
	return c.shift
}

func (c *Composer) emit(e Event) {
	e.Targets = len(c.reg.targets)
	c.st.emit(e)
}
