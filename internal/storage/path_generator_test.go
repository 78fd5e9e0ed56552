package storage

import (
	"errors"
	"testing"

	"github.com/allthemusicllc/atm-cli/internal/combinatorics"
	"github.com/allthemusicllc/atm-cli/internal/midi"
)

func TestHashOnlyPathGenerator(t *testing.T) {
	m := midi.Melody{midi.NewPitch(0, 4)} // C:4 -> 60
	f := midi.New(m, midi.Format0, 1, 1)
	got, err := HashOnlyPathGenerator{}.PathForFile(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "60.mid"; got != want {
		t.Errorf("PathForFile = %q, want %q", got, want)
	}
}

// k=8, L=12, M=4096, D=2 -> partition_length=4, and the path for hash
// "606060606467717262616464" is
// "60606060/64677172/606060606467717262616464.mid".
func TestPartitionedPathGeneratorS1(t *testing.T) {
	g, err := NewPartitionedPathGenerator(8, 12, 4096, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PartitionLength() != 4 {
		t.Fatalf("partition length = %d, want 4", g.PartitionLength())
	}

	// hash "606060606467717262616464" decodes to 12 two-digit values:
	// 60 60 60 60 64 67 71 72 62 61 64 64
	values := []int{60, 60, 60, 60, 64, 67, 71, 72, 62, 61, 64, 64}
	m := make(midi.Melody, len(values))
	for i, v := range values {
		m[i] = midi.NewPitch(v%12, v/12-1)
	}
	f := midi.New(m, midi.Format0, 1, 1)
	if got := f.Hash(); got != "606060606467717262616464" {
		t.Fatalf("constructed melody hashes to %q, want %q", got, "606060606467717262616464")
	}

	got, err := g.PathForFile(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "60606060/64677172/606060606467717262616464.mid"
	if got != want {
		t.Errorf("PathForFile = %q, want %q", got, want)
	}
}

// k=9, L=13, M=4096, D=3 -> partition_length=4.
func TestPartitionedPathGeneratorS2(t *testing.T) {
	g, err := NewPartitionedPathGenerator(9, 13, 4096, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PartitionLength() != 4 {
		t.Errorf("partition length = %d, want 4", g.PartitionLength())
	}
}

// k=2, L=8, M=4096, D=2 -> N=256 <= M, so the flat layout shortcut
// applies: depth clamped to 1, length 0.
func TestPartitionedPathGeneratorFlatShortcut(t *testing.T) {
	g, err := NewPartitionedPathGenerator(2, 8, 4096, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PartitionDepth() != 1 || g.PartitionLength() != 0 {
		t.Errorf("got depth=%d length=%d, want depth=1 length=0", g.PartitionDepth(), g.PartitionLength())
	}
}

func TestPartitionedPathGeneratorKOneFlat(t *testing.T) {
	g, err := NewPartitionedPathGenerator(1, 8, 4096, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.PartitionDepth() != 1 || g.PartitionLength() != 0 {
		t.Errorf("got depth=%d length=%d, want depth=1 length=0", g.PartitionDepth(), g.PartitionLength())
	}
	m := midi.Melody{midi.NewPitch(0, 4)}
	for i := 1; i < 8; i++ {
		m = append(m, midi.NewPitch(0, 4))
	}
	f := midi.New(m, midi.Format0, 1, 1)
	got, err := g.PathForFile(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != f.Hash()+".mid" {
		t.Errorf("k=1: expected flat path, got %q", got)
	}
}

func TestPartitionedPathGeneratorDepthLongerThanMelody(t *testing.T) {
	_, err := NewPartitionedPathGenerator(3, 3, 4096, 4)
	if !errors.Is(err, combinatorics.ErrPartitionDepthLongerThanMelody) {
		t.Errorf("expected ErrPartitionDepthLongerThanMelody, got %v", err)
	}
}

func TestPartitionedPathGeneratorMelodyLengthMismatch(t *testing.T) {
	g, err := NewPartitionedPathGenerator(4, 12, 4096, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := midi.Melody{midi.NewPitch(0, 4), midi.NewPitch(2, 5), midi.NewPitch(7, 7)}
	f := midi.New(m, midi.Format0, 1, 1)
	_, err = g.PathForFile(f)
	if !errors.Is(err, ErrMelodyLengthMismatch) {
		t.Errorf("expected ErrMelodyLengthMismatch, got %v", err)
	}
}

// For every melody m, at most maxFiles melodies must share m's
// partition basename.
func TestPartitionedPathGeneratorMaxFilesPerPartition(t *testing.T) {
	const k, length, maxFiles, depth = 3, 4, 4, 1
	g, err := NewPartitionedPathGenerator(k, length, maxFiles, depth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := map[string]int{}
	notes := make(midi.NoteVec, k)
	for i := 0; i < k; i++ {
		notes[i] = midi.NewPitch(i, 4)
	}
	var walk func(prefix midi.Melody)
	walk = func(prefix midi.Melody) {
		if len(prefix) == length {
			m := make(midi.Melody, length)
			copy(m, prefix)
			f := midi.New(m, midi.Format0, 1, 1)
			basename, err := g.basenameForFile(f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			counts[basename]++
			return
		}
		for _, n := range notes {
			walk(append(prefix, n))
		}
	}
	walk(nil)

	for basename, count := range counts {
		if count > maxFiles {
			t.Errorf("partition %q has %d files, want <= %d", basename, count, maxFiles)
		}
	}
}
