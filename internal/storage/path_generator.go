// Package storage implements the output-archive engine: path generation
// over MIDI files, the shared tar-writing primitive, and the TarFile /
// TarGzFile / BatchTarFile backend family.
package storage

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/allthemusicllc/atm-cli/internal/combinatorics"
	"github.com/allthemusicllc/atm-cli/internal/midi"
)

// PathGenerator maps a MIDI file to the storage path it should be written
// at within an archive.
type PathGenerator interface {
	PathForFile(f *midi.File) (string, error)
}

// HashOnlyPathGenerator produces a flat "<hash>.mid" path with no parent
// directories. Useful for small datasets and as the inner path generator
// of BatchTarFile's per-batch archives.
type HashOnlyPathGenerator struct{}

// PathForFile implements PathGenerator.
func (HashOnlyPathGenerator) PathForFile(f *midi.File) (string, error) {
	return f.Hash() + ".mid", nil
}

// PartitionedPathGenerator buckets files into nested directories by the
// leading decimal digits of their pitches, so that no more than maxFiles
// files land in any one leaf directory.
type PartitionedPathGenerator struct {
	melodyLength    int
	partitionDepth  int
	partitionLength int
}

// NewPartitionedPathGenerator builds a PartitionedPathGenerator for
// melodies of the given length drawn from a note set of size numNotes,
// targeting at most maxFiles files per leaf directory at the requested
// partition depth.
//
// If numNotes == 1 or the total melody count is <= maxFiles, the
// generator is flat (depth 1, length 0) regardless of the requested
// depth.
func NewPartitionedPathGenerator(numNotes uint64, melodyLength int, maxFiles uint64, partitionDepth int) (*PartitionedPathGenerator, error) {
	if partitionDepth > melodyLength {
		return nil, fmt.Errorf("%w: partition depth %d > melody length %d",
			combinatorics.ErrPartitionDepthLongerThanMelody, partitionDepth, melodyLength)
	}

	numMelodies := combinatorics.NumMelodies(numNotes, melodyLength)

	if numNotes == 1 || numMelodies <= maxFiles {
		return &PartitionedPathGenerator{
			melodyLength:    melodyLength,
			partitionDepth:  1,
			partitionLength: 0,
		}, nil
	}

	partitionLength, err := combinatorics.PartitionLength(numNotes, numMelodies, maxFiles, melodyLength, partitionDepth)
	if err != nil {
		return nil, err
	}

	return &PartitionedPathGenerator{
		melodyLength:    melodyLength,
		partitionDepth:  partitionDepth,
		partitionLength: partitionLength,
	}, nil
}

// PartitionLength returns the generator's computed partition length.
func (g *PartitionedPathGenerator) PartitionLength() int { return g.partitionLength }

// PartitionDepth returns the generator's partition depth.
func (g *PartitionedPathGenerator) PartitionDepth() int { return g.partitionDepth }

// basenameForFile generates the partition basename (parent directory
// path, not including the filename) for f, slicing its melody into
// partitionDepth contiguous windows of partitionLength pitches each,
// starting at index 0. Any remaining tail pitches are not encoded in
// the path.
//
// Windows are joined with "/", not the host's os-native separator:
// archive path names always use "/" regardless of platform (that's the
// tar format's own convention, independent of what OS wrote or reads the
// archive), so "path", not "path/filepath", is the right tool here.
func (g *PartitionedPathGenerator) basenameForFile(f *midi.File) (string, error) {
	m := f.Melody()
	if len(m) != g.melodyLength {
		return "", fmt.Errorf("%w: expected melody of length %d, got %d",
			ErrMelodyLengthMismatch, g.melodyLength, len(m))
	}

	if g.partitionDepth == 0 {
		return "", nil
	}

	windows := make([]string, g.partitionDepth)
	for d := 0; d < g.partitionDepth; d++ {
		start := g.partitionLength * d
		end := g.partitionLength * (d + 1)
		var sb strings.Builder
		for _, p := range m[start:end] {
			v := p.Value()
			if v < 10 {
				sb.WriteByte('0')
			}
			sb.WriteString(strconv.Itoa(v))
		}
		windows[d] = sb.String()
	}
	return strings.Join(windows, "/"), nil
}

// PathForFile implements PathGenerator.
func (g *PartitionedPathGenerator) PathForFile(f *midi.File) (string, error) {
	basename, err := g.basenameForFile(f)
	if err != nil {
		return "", err
	}
	filename := f.Hash() + ".mid"
	if basename == "" {
		return filename, nil
	}
	return path.Join(basename, filename), nil
}
