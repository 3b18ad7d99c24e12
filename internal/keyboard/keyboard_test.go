package keyboard

import (
	"strings"
	"testing"

	"fidel/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// field is an in-memory Target that counts focus calls.
type field struct {
	value  string
	focus  int
	filter func(string) string // applied on SetValue when set
}

func (f *field) Value() string { return f.value }
func (f *field) Focus()        { f.focus++ }
func (f *field) SetValue(v string) {
	if f.filter != nil {
		v = f.filter(v)
	}
	f.value = v
}

var (
	keyHa        = layout.Key{Kind: layout.KindChar, Label: "ሀ", Value: "ሀ", Family: []string{"ሁ", "ሂ", "ሃ"}}
	keyLe        = layout.Key{Kind: layout.KindChar, Label: "ለ", Value: "ለ", Family: []string{"ሉ", "ሊ", "ላ", "ሌ", "ል", "ሎ", "ሏ"}}
	keyQe        = layout.Key{Kind: layout.KindChar, Label: "ቀ", Value: "ቀ", Family: []string{"ቁ", "ቂ", "ቃ", "ቄ", "ቅ", "ቆ", "ቈ", "ቊ", "ቋ", "ቌ", "ቍ"}}
	keyPlain     = layout.Key{Kind: layout.KindChar, Label: "x", Value: "x"}
	keyStop      = layout.Key{Kind: layout.KindPoint, Label: "።", Value: "።"}
	keySpace     = layout.Key{Kind: layout.KindSpace, Label: "space"}
	keyEnter     = layout.Key{Kind: layout.KindEnter, Label: "⏎"}
	keyBackspace = layout.Key{Kind: layout.KindBackspace, Label: "⌫"}
	keyShift     = layout.Key{Kind: layout.KindShift, Label: "⇧"}
)

func TestScenarioFamilyCorrection(t *testing.T) {
	kb := New()
	tgt := &field{}
	require.True(t, kb.Register(tgt))

	require.True(t, kb.Press(keyHa))
	assert.Equal(t, "ሀ", kb.Value())
	f, ok := kb.Family()
	require.True(t, ok)
	assert.Equal(t, "ሀ", f.Base)
	assert.Len(t, f.Members, 3)

	require.True(t, kb.PressFamilyMember("ሂ"))
	assert.Equal(t, "ሂ", kb.Value())
	assert.Equal(t, 1, Len(kb.Value()))

	require.True(t, kb.Press(keySpace))
	assert.Equal(t, "ሂ ", kb.Value())
	_, ok = kb.Family()
	assert.False(t, ok)

	require.True(t, kb.Press(keyBackspace))
	assert.Equal(t, "ሂ", kb.Value())
	assert.Equal(t, "ሂ", tgt.value)
}

func TestScenarioSwitchTargets(t *testing.T) {
	kb := New()
	t1 := &field{value: "one"}
	t2 := &field{value: "two"}
	require.True(t, kb.Register(t1))
	require.True(t, kb.Register(t2))
	assert.Equal(t, Target(t1), kb.Active())
	assert.Equal(t, "one", kb.Value())

	kb.Press(keyHa)
	_, ok := kb.Family()
	require.True(t, ok)

	require.True(t, kb.Activate(t2))
	assert.Equal(t, Target(t2), kb.Active())
	assert.Equal(t, "two", kb.Value())
	_, ok = kb.Family()
	assert.False(t, ok)
	assert.False(t, kb.PressFamilyMember("ሁ"))
	assert.Equal(t, "two", t2.value)
}

func TestRegister(t *testing.T) {
	kb := New()
	a := &field{value: "a"}
	b := &field{value: "b"}

	assert.True(t, kb.Register(a))
	assert.False(t, kb.Register(a), "second register of the same target")
	assert.True(t, kb.Register(b))
	assert.False(t, kb.Register(nil))

	assert.Equal(t, []Target{a, b}, kb.Targets())
	assert.Equal(t, Target(a), kb.Active())
	assert.Equal(t, "a", kb.Value())
}

func TestTargetsIsACopy(t *testing.T) {
	kb := New()
	a := &field{}
	kb.Register(a)
	ts := kb.Targets()
	ts[0] = nil
	assert.Equal(t, Target(a), kb.Targets()[0])
}

func TestIdentityNotContent(t *testing.T) {
	kb := New()
	a := &field{value: "same"}
	b := &field{value: "same"}
	assert.True(t, kb.Register(a))
	assert.True(t, kb.Register(b))
	assert.Len(t, kb.Targets(), 2)
}

func TestDeregister(t *testing.T) {
	kb := New()
	a := &field{value: "a"}
	b := &field{value: "b"}
	c := &field{value: "c"}
	kb.Register(a)
	kb.Register(b)
	kb.Register(c)
	kb.Activate(c)

	assert.False(t, kb.Deregister(&field{}), "unregistered target")
	assert.False(t, kb.Deregister(nil))

	// Removing an inactive target leaves activation alone.
	assert.True(t, kb.Deregister(b))
	assert.Equal(t, Target(c), kb.Active())
	assert.Equal(t, "c", kb.Value())

	// Removing the active target falls back to the first remaining one.
	kb.Press(keyHa)
	assert.True(t, kb.Deregister(c))
	assert.Equal(t, Target(a), kb.Active())
	assert.Equal(t, "a", kb.Value())
	_, ok := kb.Family()
	assert.False(t, ok)

	assert.True(t, kb.Deregister(a))
	assert.Nil(t, kb.Active())
	assert.Equal(t, "", kb.Value())
	assert.Empty(t, kb.Targets())
}

func TestActivate(t *testing.T) {
	kb := New()
	a := &field{value: "a"}
	b := &field{value: "b"}
	kb.Register(a)

	assert.False(t, kb.Activate(b), "not registered")
	assert.False(t, kb.Activate(a), "already active")
	assert.False(t, kb.Activate(nil))

	kb.Register(b)
	b.value = "changed"
	assert.True(t, kb.Activate(b))
	assert.Equal(t, "changed", kb.Value())
}

func TestActiveAlwaysRegistered(t *testing.T) {
	kb := New()
	ts := []*field{{value: "0"}, {value: "1"}, {value: "2"}, {value: "3"}}
	ops := []struct {
		register bool
		i        int
	}{
		{true, 0}, {true, 1}, {false, 0}, {true, 2}, {true, 0}, {false, 2},
		{false, 1}, {true, 3}, {false, 0}, {false, 3}, {true, 1}, {false, 1},
	}
	for n, op := range ops {
		if op.register {
			kb.Register(ts[op.i])
		} else {
			kb.Deregister(ts[op.i])
		}
		active := kb.Active()
		if active == nil {
			assert.Equal(t, "", kb.Value(), "step %d", n)
			continue
		}
		assert.Contains(t, kb.Targets(), active, "step %d", n)
		assert.Equal(t, active.Value(), kb.Value(), "step %d", n)
	}
}

func TestPressKinds(t *testing.T) {
	tests := []struct {
		name string
		keys []layout.Key
		want string
	}{
		{"plain char", []layout.Key{keyPlain, keyPlain}, "xx"},
		{"punctuation", []layout.Key{keyHa, keyStop}, "ሀ።"},
		{"point without value", []layout.Key{{Kind: layout.KindPoint, Label: "?"}}, ""},
		{"space", []layout.Key{keyPlain, keySpace}, "x "},
		{"enter", []layout.Key{keyPlain, keyEnter, keyPlain}, "x\nx"},
		{"backspace", []layout.Key{keyHa, keyLe, keyBackspace}, "ሀ"},
		{"backspace on empty", []layout.Key{keyBackspace, keyBackspace}, ""},
		{"shift leaves buffer", []layout.Key{keyPlain, keyShift}, "x"},
		{"family always inserts", []layout.Key{keyHa, keyHa, keyLe}, "ሀሀለ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := New()
			tgt := &field{}
			kb.Register(tgt)
			for _, k := range tt.keys {
				require.True(t, kb.Press(k))
			}
			assert.Equal(t, tt.want, kb.Value())
			assert.Equal(t, tt.want, tgt.value)
		})
	}
}

func TestPressWithoutTarget(t *testing.T) {
	kb := New()
	assert.False(t, kb.Press(keyHa))
	assert.Equal(t, "", kb.Value())
	_, ok := kb.Family()
	assert.False(t, ok)
}

func TestWriteFocusesTarget(t *testing.T) {
	kb := New()
	tgt := &field{}
	kb.Register(tgt)
	kb.Press(keyHa)
	kb.PressFamilyMember("ሁ")
	kb.Press(keyShift)
	assert.Equal(t, 2, tgt.focus, "shift does not write")
}

func TestWriteReadsBackTargetValue(t *testing.T) {
	kb := New()
	tgt := &field{filter: func(s string) string {
		// A target that refuses newlines.
		return strings.ReplaceAll(s, "\n", "")
	}}
	kb.Register(tgt)
	kb.Press(keyPlain)
	kb.Press(keyEnter)
	assert.Equal(t, "x", kb.Value())
	kb.Press(keyPlain)
	assert.Equal(t, "xx", kb.Value())
}

func TestShift(t *testing.T) {
	kb := New()
	kb.Register(&field{})
	assert.False(t, kb.Shifted())
	kb.Press(keyHa)
	kb.Press(keyShift)
	assert.True(t, kb.Shifted())
	_, ok := kb.Family()
	assert.False(t, ok, "shift closes the family")
	kb.Press(keyShift)
	assert.False(t, kb.Shifted())
}

func TestSlotsPopulation(t *testing.T) {
	kb := New()
	kb.Register(&field{})

	assert.Equal(t, [SlotCount]string{}, kb.Slots())

	for _, k := range []layout.Key{keyHa, keyLe} {
		kb.Press(k)
		slots := kb.Slots()
		filled := 0
		for _, s := range slots {
			if s != "" {
				filled++
			}
		}
		assert.Equal(t, 1+len(k.Family), filled, "key %s", k.Label)
		assert.Equal(t, k.Value, slots[0])
		assert.Equal(t, k.Family[0], slots[1])
	}

	// Families longer than the row show their first members only.
	kb.Press(keyQe)
	slots := kb.Slots()
	assert.Equal(t, [SlotCount]string{"ቀ", "ቁ", "ቂ", "ቃ", "ቄ", "ቅ", "ቆ", "ቈ"}, slots)
}

func TestFamilyMemberReplaces(t *testing.T) {
	kb := New()
	kb.Register(&field{value: "ሰላም "})
	kb.Press(keyLe)
	before := Len(kb.Value())

	for _, m := range append([]string{keyLe.Value}, keyLe.Family...) {
		require.True(t, kb.PressFamilyMember(m))
		assert.Equal(t, before, Len(kb.Value()), "member %s", m)
		assert.Equal(t, "ሰላም "+m, kb.Value())
	}
	f, ok := kb.Family()
	require.True(t, ok, "family stays open")
	assert.Equal(t, "ለ", f.Base)
}

func TestFamilyMemberOutsideFamilyInserts(t *testing.T) {
	kb := New()
	kb.Register(&field{})
	kb.Press(keyHa)

	require.True(t, kb.PressFamilyMember("ሉ"))
	assert.Equal(t, "ሀሉ", kb.Value())
	assert.Equal(t, 2, Len(kb.Value()))

	// Still the same family: a member now replaces the inserted character.
	require.True(t, kb.PressFamilyMember("ሃ"))
	assert.Equal(t, "ሀሃ", kb.Value())
}

func TestFamilyMemberNoOps(t *testing.T) {
	kb := New()
	tgt := &field{value: "x"}
	kb.Register(tgt)

	assert.False(t, kb.PressFamilyMember("ሁ"), "no family open")
	kb.Press(keyHa)
	assert.False(t, kb.PressFamilyMember(""), "empty char")
	assert.Equal(t, "xሀ", kb.Value())

	kb.Press(keySpace)
	assert.False(t, kb.PressFamilyMember("ሁ"), "family closed by space")
	assert.Equal(t, "xሀ ", tgt.value)
}

func TestMemberBeyondVisibleSlotsReplaces(t *testing.T) {
	kb := New()
	kb.Register(&field{})
	kb.Press(keyQe)
	require.True(t, kb.PressFamilyMember("ቍ"))
	assert.Equal(t, "ቍ", kb.Value())
}

func TestPressSlot(t *testing.T) {
	kb := New()
	kb.Register(&field{})

	assert.False(t, kb.PressSlot(0), "idle")
	kb.Press(keyHa)

	assert.True(t, kb.PressSlot(2))
	assert.Equal(t, "ሂ", kb.Value())
	assert.False(t, kb.PressSlot(5), "empty slot")
	assert.False(t, kb.PressSlot(-1))
	assert.False(t, kb.PressSlot(SlotCount))
	assert.True(t, kb.PressSlot(0))
	assert.Equal(t, "ሀ", kb.Value())
}

func TestSync(t *testing.T) {
	kb := New()
	assert.False(t, kb.Sync())

	tgt := &field{}
	kb.Register(tgt)
	kb.Press(keyHa)

	// An echo of the keyboard's own write keeps the family open.
	require.True(t, kb.Sync())
	_, ok := kb.Family()
	assert.True(t, ok)

	// The user typed into the target.
	tgt.value = "ሀb"
	require.True(t, kb.Sync())
	assert.Equal(t, "ሀb", kb.Value())
	_, ok = kb.Family()
	assert.False(t, ok)

	// Last write wins.
	tgt.value = "1"
	tgt.value = "12"
	kb.Sync()
	assert.Equal(t, "12", kb.Value())
}

func TestObserve(t *testing.T) {
	kb := New()
	var events []Event
	kb.Observe(func(e Event) { events = append(events, e) })
	kb.Observe(nil)

	tgt := &field{}
	kb.Register(tgt)
	kb.Press(keyHa)
	kb.PressFamilyMember("ሁ")
	kb.PressFamilyMember("x")
	kb.Press(keyBackspace)
	kb.Activate(tgt)

	require.Len(t, events, 6)
	assert.Equal(t, Event{Op: OpRegister, Applied: true, Targets: 1}, events[0])
	assert.Equal(t, Event{Op: OpPress, Kind: layout.KindChar, Applied: true, Length: 1, FamilyOpen: true, Targets: 1}, events[1])
	assert.Equal(t, Event{Op: OpFamilyMember, Applied: true, Replaced: true, Length: 1, FamilyOpen: true, Targets: 1}, events[2])
	assert.Equal(t, Event{Op: OpFamilyMember, Applied: true, Length: 2, FamilyOpen: true, Targets: 1}, events[3])
	assert.Equal(t, Event{Op: OpPress, Kind: layout.KindBackspace, Applied: true, Length: 1, Targets: 1}, events[4])
	assert.Equal(t, Event{Op: OpActivate, Length: 1, Targets: 1}, events[5])
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, 0, Len(""))
	assert.Equal(t, 3, Len("ሰላም"))
	// e + combining acute is one character.
	assert.Equal(t, 2, Len("aé"))
	assert.Equal(t, "a", dropLast("aé"))
	assert.Equal(t, "", dropLast(""))
	assert.Equal(t, "ሰላ", dropLast("ሰላም"))
	assert.Equal(t, "ሰላሚ", replaceLast("ሰላም", "ሚ"))
	assert.Equal(t, "ሚ", replaceLast("", "ሚ"))
}
