// Package domain contains the core types for the lorabridge metadata bridge.
package domain

import "math"

// strengthEpsilon is the tolerance below which model and clip strengths
// are considered equal (matches the remote service's formatting rule).
const strengthEpsilon = 0.001

// Entry represents one lora selection: a named adjustable-strength
// modifier. ClipStrength tracks the optional third token argument and
// equals Strength unless set apart explicitly.
type Entry struct {
	Name         string
	Strength     float64
	ClipStrength float64
	Active       bool
}

// SplitStrength reports whether the entry carries a clip strength that
// differs from its model strength.
func (e Entry) SplitStrength() bool {
	return math.Abs(e.Strength-e.ClipStrength) > strengthEpsilon
}

// EntryList is an ordered sequence of entries, unique by name. Order is
// meaningful: it is both display order and merge priority, and must
// survive round-trips through the text representation.
type EntryList []Entry

// Index returns the position of the entry with the given name, or -1.
func (l EntryList) Index(name string) int {
	for i := range l {
		if l[i].Name == name {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the list.
func (l EntryList) Clone() EntryList {
	if l == nil {
		return nil
	}
	out := make(EntryList, len(l))
	copy(out, l)
	return out
}

// ActiveNames returns the names of all active entries in list order.
func (l EntryList) ActiveNames() []string {
	names := make([]string, 0, len(l))
	for _, e := range l {
		if e.Active {
			names = append(names, e.Name)
		}
	}
	return names
}

// Equal reports whether two lists are identical in order and content.
func (l EntryList) Equal(other EntryList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
