// Package bcimap maintains the byte-index correspondence between an old and
// a new version of a method body, built up during a switchable comparison
// and queried afterwards by the redefinition machinery to translate live
// execution state.
package bcimap

// Fragment records one region of new-only code. OldBCI is the position of
// the old instruction in front of which the region was inserted; the region
// occupies [NewStart, NewEnd) in the new code, and the old instruction's
// counterpart sits at NewEnd.
type Fragment struct {
	OldBCI   int `json:"old_bci"`
	NewStart int `json:"new_start"`
	NewEnd   int `json:"new_end"`
}

// Map is the old-to-new bci translation table for one method pair. It is
// written by a single comparison run and must not be shared across
// concurrent runs. The zero value is ready to use.
type Map struct {
	frags []Fragment
}

// New returns an empty map, under which every bci maps to itself.
func New() *Map {
	return &Map{}
}

// RecordFragment appends a fragment. Fragments must be recorded in
// ascending OldBCI order, which the forward walk guarantees.
func (m *Map) RecordFragment(oldBCI, newStart, newEnd int) {
	m.frags = append(m.frags, Fragment{OldBCI: oldBCI, NewStart: newStart, NewEnd: newEnd})
}

// NewBCIForOld returns the new-code position corresponding to the given
// old-code position.
func (m *Map) NewBCIForOld(oldBCI int) int {
	if len(m.frags) == 0 || oldBCI < m.frags[0].OldBCI {
		return oldBCI
	}
	i := 0
	for i < len(m.frags)-1 && oldBCI >= m.frags[i+1].OldBCI {
		i++
	}
	return m.frags[i].NewEnd + (oldBCI - m.frags[i].OldBCI)
}

// SameLocation reports whether oldBCI and newBCI denote the same logical
// position in the two versions of the method.
func (m *Map) SameLocation(oldBCI, newBCI int) bool {
	return m.NewBCIForOld(oldBCI) == newBCI
}

// FragmentCount returns the number of recorded fragments.
func (m *Map) FragmentCount() int { return len(m.frags) }

// Fragments returns a copy of the recorded fragments in discovery order.
func (m *Map) Fragments() []Fragment {
	out := make([]Fragment, len(m.frags))
	copy(out, m.frags)
	return out
}
