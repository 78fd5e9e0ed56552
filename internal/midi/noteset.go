package midi

import (
	"fmt"
	"strings"
)

// NoteSet is an unordered set of unique pitches (unique by class+octave).
// It's built once from CLI input and never mutated afterward.
type NoteSet struct {
	pitches []Pitch
}

// ParseNoteSet parses a comma-separated pitch list, e.g. "C:4,D:4,E:4",
// rejecting duplicate pitches. Order of first appearance is preserved,
// since NoteVec (built from a NoteSet) uses that order as the enumeration
// axis order.
func ParseNoteSet(s string) (NoteSet, error) {
	var ns NoteSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := ParsePitch(part)
		if err != nil {
			return NoteSet{}, err
		}
		if ns.contains(p) {
			return NoteSet{}, fmt.Errorf("midi: duplicate pitch %q in note set", part)
		}
		ns.pitches = append(ns.pitches, p)
	}
	if len(ns.pitches) == 0 {
		return NoteSet{}, fmt.Errorf("midi: note set must contain at least one pitch")
	}
	return ns, nil
}

func (ns NoteSet) contains(p Pitch) bool {
	for _, q := range ns.pitches {
		if p.Equal(q) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct pitches in the set.
func (ns NoteSet) Len() int { return len(ns.pitches) }

// NoteVec returns the set's pitches as an ordered NoteVec, in the order
// they were first encountered while parsing.
func (ns NoteSet) NoteVec() NoteVec {
	out := make(NoteVec, len(ns.pitches))
	copy(out, ns.pitches)
	return out
}
