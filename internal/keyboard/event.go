package keyboard

import "fidel/internal/layout"

// Op names the keyboard operation an Event describes.
type Op string

const (
	OpRegister     Op = "register"
	OpDeregister   Op = "deregister"
	OpActivate     Op = "activate"
	OpSync         Op = "sync"
	OpPress        Op = "press"
	OpFamilyMember Op = "family_member"
)

// Event is emitted after every keyboard operation, applied or not.
// It carries sizes and states, never the typed text itself.
type Event struct {
	Op         Op
	Kind       layout.Kind // set for OpPress
	Applied    bool        // false when the operation degraded to a no-op
	Replaced   bool        // OpFamilyMember replaced the last character
	Length     int         // buffer length in characters after the operation
	FamilyOpen bool
	Targets    int
}
