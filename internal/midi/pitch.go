// Package midi implements the fixed MIDI-file encoding primitive this
// project's combinatorial engine builds on: pitches, note sets, melodies,
// and the standard MIDI file bytes derived from a melody.
//
// The surface here is intentionally narrow. It implements exactly the
// operations the storage/enumeration packages need (parse a pitch set,
// build a file from a melody, get its size/bytes/hash) and nothing about
// scales, keys, or general MIDI file manipulation.
package midi

import (
	"fmt"
	"strconv"
	"strings"
)

// noteClasses maps note letter names (with optional sharp/flat) to a
// pitch class in 0..11, following standard MIDI convention (C=0).
var noteClasses = map[string]int{
	"c": 0, "c#": 1, "db": 1,
	"d": 2, "d#": 3, "eb": 3,
	"e": 4,
	"f": 5, "f#": 6, "gb": 6,
	"g": 7, "g#": 8, "ab": 8,
	"a": 9, "a#": 10, "bb": 10,
	"b": 11,
}

// Pitch is an immutable note-class-plus-octave value. It serializes to a
// single 7-bit MIDI note number in 0..127, following the common convention
// that C in octave -1 is MIDI note 0 (so C:4 is MIDI note 60, "middle C").
type Pitch struct {
	class  int // 0..11
	octave int
}

// NewPitch builds a Pitch from a note class (0..11) and octave, without
// validating the resulting MIDI value is in range. Use ParsePitch to parse
// and validate user input.
func NewPitch(class, octave int) Pitch {
	return Pitch{class: class, octave: octave}
}

// ParsePitch parses a single pitch of the form "<note>:<octave>", e.g.
// "C:4" or "F#:3", and returns an error if the note name is unrecognized
// or the resulting MIDI value falls outside 0..127.
func ParsePitch(s string) (Pitch, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Pitch{}, fmt.Errorf("midi: %q is not of the form \"<note>:<octave>\"", s)
	}
	class, ok := noteClasses[strings.ToLower(parts[0])]
	if !ok {
		return Pitch{}, fmt.Errorf("midi: unrecognized note name %q", parts[0])
	}
	octave, err := strconv.Atoi(parts[1])
	if err != nil {
		return Pitch{}, fmt.Errorf("midi: bad octave in %q: %w", s, err)
	}
	p := Pitch{class: class, octave: octave}
	if v := p.Value(); v < 0 || v > 127 {
		return Pitch{}, fmt.Errorf("midi: %q maps to out-of-range MIDI value %d", s, v)
	}
	return p, nil
}

// Value returns the pitch's 7-bit MIDI note number, treating octave -1 as
// the octave containing MIDI note 0.
func (p Pitch) Value() int {
	return (p.octave+1)*12 + p.class
}

// Class returns the pitch's note class in 0..11.
func (p Pitch) Class() int { return p.class }

// Octave returns the pitch's octave.
func (p Pitch) Octave() int { return p.octave }

// Equal reports whether two pitches have the same (class, octave) pair,
// which is the identity NoteSet uniqueness is defined over.
func (p Pitch) Equal(other Pitch) bool {
	return p.class == other.class && p.octave == other.octave
}
