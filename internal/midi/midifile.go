package midi

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// Format identifies a standard MIDI file format (0, 1, or 2). This project
// only ever constructs Format0 files (one track, one tick per quarter
// note), but the type documents what's fixed.
type Format uint16

// Format0 is the single-track standard MIDI file format.
const Format0 Format = 0

const (
	noteOnStatus      = 0x90
	noteOffStatus     = 0x80
	defaultVelocity   = 0x40
	noteDurationTicks = 1 // one tick per note, matching division=1 tick/quarter
)

// File is a Melody plus fixed format/division parameters: format 0, one
// track, one tick per quarter note. It's fully determined by the Melody
// it was built from.
type File struct {
	melody     Melody
	format     Format
	trackCount uint16
	division   uint16

	bytes []byte // computed once, lazily, by Bytes()/Size()
}

// New builds a File from melody. format, trackCount, and division are
// accepted as parameters, but callers in this project always pass
// (Format0, 1, 1).
func New(melody Melody, format Format, trackCount, division uint16) *File {
	return &File{
		melody:     melody,
		format:     format,
		trackCount: trackCount,
		division:   division,
	}
}

// Bytes returns the serialized standard MIDI file content.
func (f *File) Bytes() []byte {
	if f.bytes == nil {
		f.bytes = f.encode()
	}
	return f.bytes
}

// Size returns the byte length of the serialized file.
func (f *File) Size() int {
	return len(f.Bytes())
}

// Melody returns the file's underlying melody.
func (f *File) Melody() Melody {
	return f.melody
}

// Hash returns a string derived deterministically from the Melody: the
// concatenation of each pitch's MIDI value rendered as a two-digit decimal
// number. It is not a cryptographic hash; the partition path generator
// relies on this exact two-digit-per-pitch layout to slice windows.
// Pitches whose MIDI value needs more than two digits (>= 100) widen
// their slice of the hash beyond two characters; this project assumes
// note sets stay within a range that renders as exactly two digits per
// pitch.
func (f *File) Hash() string {
	return HashMelody(f.melody)
}

// HashMelody computes the same hash Hash() would for a File built from m,
// without requiring a File to be constructed first.
func HashMelody(m Melody) string {
	var sb strings.Builder
	sb.Grow(2 * len(m))
	for _, p := range m {
		v := p.Value()
		if v < 10 {
			sb.WriteByte('0')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// encode builds the standard MIDI file bytes: one MThd header chunk
// (whose track-count field is f.trackCount, always 1 in this project) and
// a single MTrk chunk containing a note-on/note-off pair per melody pitch
// followed by an end-of-track meta event.
func (f *File) encode() []byte {
	out := new(bytes.Buffer)

	// Header chunk: "MThd", length=6, format, ntrks, division.
	out.WriteString("MThd")
	binary.Write(out, binary.BigEndian, uint32(6))
	binary.Write(out, binary.BigEndian, uint16(f.format))
	binary.Write(out, binary.BigEndian, f.trackCount)
	binary.Write(out, binary.BigEndian, f.division)

	track := f.encodeTrack()
	out.WriteString("MTrk")
	binary.Write(out, binary.BigEndian, uint32(len(track)))
	out.Write(track)

	return out.Bytes()
}

func (f *File) encodeTrack() []byte {
	track := new(bytes.Buffer)
	for _, p := range f.melody {
		note := byte(p.Value())
		// delta-time 0, note-on
		track.WriteByte(0x00)
		track.WriteByte(noteOnStatus)
		track.WriteByte(note)
		track.WriteByte(defaultVelocity)
		// delta-time noteDurationTicks, note-off
		track.WriteByte(noteDurationTicks)
		track.WriteByte(noteOffStatus)
		track.WriteByte(note)
		track.WriteByte(0x00)
	}
	// end of track meta event
	track.WriteByte(0x00)
	track.WriteByte(0xFF)
	track.WriteByte(0x2F)
	track.WriteByte(0x00)
	return track.Bytes()
}
