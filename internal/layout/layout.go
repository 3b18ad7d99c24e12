// Package layout describes keyboard layouts: ordered rows of keys, where a
// character key may carry a family of alternate characters (for Ethiopic,
// the vowel orders of a base consonant).
//
// Layouts are data. The built-in Amharic table is returned by Amharic; other
// scripts can be supplied as TOML, YAML or JSON files through Load.
package layout

import (
	"fmt"
	"strings"
)

// Kind identifies what a key does when pressed.
type Kind string

const (
	KindChar      Kind = "char"
	KindSpace     Kind = "space"
	KindShift     Kind = "shift"
	KindBackspace Kind = "backspace"
	KindEnter     Kind = "enter"
	KindPoint     Kind = "point" // punctuation
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindChar, KindSpace, KindShift, KindBackspace, KindEnter, KindPoint:
		return true
	}
	return false
}

// Key is an immutable description of one keyboard button.
type Key struct {
	Kind   Kind     `json:"type" toml:"type" yaml:"type"`
	Label  string   `json:"label" toml:"label" yaml:"label"`
	Value  string   `json:"value,omitempty" toml:"value,omitempty" yaml:"value,omitempty"`
	Family []string `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// HasFamily reports whether pressing k opens a character family.
func (k Key) HasFamily() bool {
	return k.Kind == KindChar && len(k.Family) > 0
}

// Row is one horizontal row of keys.
type Row []Key

// Layout is an ordered table of rows.
type Layout struct {
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Rows []Row  `json:"rows" toml:"rows" yaml:"rows"`
}

// Find returns the first key whose label is label.
func (l *Layout) Find(label string) (Key, bool) {
	for _, row := range l.Rows {
		for _, k := range row {
			if k.Label == label {
				return k, true
			}
		}
	}
	return Key{}, false
}

// FindValue returns the first key that inserts value, matching either the
// key's own value or, for keys without one, its label.
func (l *Layout) FindValue(value string) (Key, bool) {
	for _, row := range l.Rows {
		for _, k := range row {
			v := k.Value
			if v == "" {
				v = k.Label
			}
			if v == value {
				return k, true
			}
		}
	}
	return Key{}, false
}

// Width returns the length of the longest row.
func (l *Layout) Width() int {
	w := 0
	for _, row := range l.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// ValidationError lists every problem found in a layout.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid layout: %s", strings.Join(e.Problems, "; "))
}

// Validate checks structural rules the keyboard relies on.
// Returns a *ValidationError when at least one rule is broken.
func (l *Layout) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(l.Rows) == 0 {
		addf("no rows")
	}
	bases := make(map[string]string)
	for r, row := range l.Rows {
		if len(row) == 0 {
			addf("row %d: empty", r+1)
		}
		for c, k := range row {
			at := fmt.Sprintf("row %d key %d", r+1, c+1)
			if !k.Kind.Valid() {
				addf("%s: unknown type %q", at, k.Kind)
				continue
			}
			if k.Label == "" {
				addf("%s: empty label", at)
			}
			if len(k.Family) > 0 && k.Kind != KindChar {
				addf("%s: %s key cannot have children", at, k.Kind)
			}
			if k.Kind != KindChar {
				continue
			}
			if k.Value == "" {
				addf("%s: char key %q has no value", at, k.Label)
				continue
			}
			for i, m := range k.Family {
				if m == "" {
					addf("%s: child %d of %q is empty", at, i+1, k.Value)
				}
			}
			if len(k.Family) == 0 {
				continue
			}
			if prev, ok := bases[k.Value]; ok {
				addf("%s: family %q already defined at %s", at, k.Value, prev)
				continue
			}
			bases[k.Value] = at
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
