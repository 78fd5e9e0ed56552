package midi

// NoteVec is an ordered sequence of pitches; unlike NoteSet, duplicates
// are allowed. Its iteration order is the enumeration axis order used by
// internal/enumerator.
type NoteVec []Pitch

// Melody is an ordered tuple of exactly L pitches (the melody length), the unit the
// enumerator produces and the storage backends consume.
type Melody []Pitch

// Len returns the number of notes in the vector.
func (nv NoteVec) Len() int { return len(nv) }
