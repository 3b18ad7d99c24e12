package ui

// FocusManager tracks and rotates focus across panels.
type FocusManager struct {
	Current  string   // ID of the focused panel
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next panel in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous panel in order.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := f.index(f.Current)
	if idx < 0 && delta < 0 {
		idx = 0
	}
	f.set(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus sets focus to the given panel ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if f.index(id) < 0 {
		return false
	}
	f.set(id)
	return true
}

// Insert adds id to the order before the panel named before, or at the
// end when before is not in the order. Existing IDs are left alone.
func (f *FocusManager) Insert(id, before string) {
	if f.index(id) >= 0 {
		return
	}
	i := f.index(before)
	if i < 0 {
		f.Order = append(f.Order, id)
		return
	}
	f.Order = append(f.Order[:i], append([]string{id}, f.Order[i:]...)...)
}

// Remove drops id from the order. If it had focus, focus moves to the panel
// that took its place, or clears when the order is empty.
func (f *FocusManager) Remove(id string) {
	i := f.index(id)
	if i < 0 {
		return
	}
	f.Order = append(f.Order[:i], f.Order[i+1:]...)
	if f.Current != id {
		return
	}
	if len(f.Order) == 0 {
		f.set("")
		return
	}
	if i >= len(f.Order) {
		i = 0
	}
	f.set(f.Order[i])
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}

func (f *FocusManager) index(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}
