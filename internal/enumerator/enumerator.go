// Package enumerator produces a lazy, finite, non-restartable stream of
// melodies: every length-L tuple over a NoteVec, drawn with replacement,
// in lexicographic order under the NoteVec's own index order.
//
// This is a manual odometer rather than a generic Cartesian-product
// combinator: nothing in the example corpus provides (or commonly uses,
// in Go) an itertools-style multi-product iterator, so the idiomatic
// rendering of "iterate the Cartesian product of notes with itself L
// times" is to roll the digits of a base-k counter by hand.
package enumerator

import "github.com/allthemusicllc/atm-cli/internal/midi"

// Enumerator yields every length-L melody over a fixed NoteVec exactly
// once, in lexicographic order. It is not safe for concurrent use, and
// once exhausted it cannot be restarted.
type Enumerator struct {
	notes   midi.NoteVec
	indices []int
	buf     midi.Melody
	started bool
	done    bool
}

// New builds an Enumerator over notes, producing melodies of the given
// length. length must be >= 1 and notes must be non-empty; callers are
// expected to have already validated both.
func New(notes midi.NoteVec, length int) *Enumerator {
	return &Enumerator{
		notes:   notes,
		indices: make([]int, length),
		buf:     make(midi.Melody, length),
	}
}

// Next advances the enumerator and returns the next melody and true, or a
// zero Melody and false once every combination has been produced. The
// returned Melody shares the Enumerator's internal buffer and is only
// valid until the next call to Next — callers that need to retain a
// melody past that point must copy it.
func (e *Enumerator) Next() (midi.Melody, bool) {
	if e.done {
		return nil, false
	}
	if len(e.notes) == 0 || len(e.indices) == 0 {
		e.done = true
		return nil, false
	}

	if !e.started {
		e.started = true
		// first melody: all indices at 0
		for i := range e.buf {
			e.buf[i] = e.notes[0]
		}
		return e.buf, true
	}

	if !e.increment() {
		e.done = true
		return nil, false
	}
	for i, idx := range e.indices {
		e.buf[i] = e.notes[idx]
	}
	return e.buf, true
}

// increment rolls the odometer forward by one, starting from the
// rightmost (least-significant) position, following the lexicographic
// order. Returns false once every combination has already been produced
// (the odometer has rolled past its leftmost position).
func (e *Enumerator) increment() bool {
	base := len(e.notes)
	for i := len(e.indices) - 1; i >= 0; i-- {
		e.indices[i]++
		if e.indices[i] < base {
			return true
		}
		e.indices[i] = 0
	}
	return false
}

// Total returns the total number of melodies this Enumerator will
// produce: len(notes)^length.
func (e *Enumerator) Total() uint64 {
	total := uint64(1)
	k := uint64(len(e.notes))
	for range e.indices {
		total *= k
	}
	return total
}
