package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/allthemusicllc/atm-cli/internal/combinatorics"
	"github.com/allthemusicllc/atm-cli/internal/enumerator"
	"github.com/allthemusicllc/atm-cli/internal/midi"
	"github.com/allthemusicllc/atm-cli/internal/storage"
)

// maxSimMelodies bounds how many melodies estimate actually writes to a
// scratch file before extrapolating; writing 10^10 real melodies just to
// estimate the final size would defeat the purpose.
const maxSimMelodies = 200000

func runEstimate(args []string) {
	if len(args) < 1 {
		log.Fatalln("estimate: expected a backend: tar or tar_gz")
	}
	backend := args[0]
	args = args[1:]

	fs := flag.NewFlagSet("estimate "+backend, flag.ExitOnError)
	level := fs.Int("compress", storage.DefaultCompressionLevel, "gzip compression level [0-9], tar_gz only")
	fs.Parse(args)

	notes, length := parseNotesAndLength(fs)
	notevec := notes.NoteVec()
	numMelodies := combinatorics.NumMelodies(uint64(notevec.Len()), length)

	simCount := simNumMelodies(numMelodies)

	scratch, err := os.CreateTemp("", "atm-cli-estimate-*")
	if err != nil {
		log.Fatalf("estimate: %v", err)
	}
	scratchPath := scratch.Name()
	scratch.Close()
	defer os.Remove(scratchPath)

	var sink storage.StorageBackend
	switch backend {
	case "tar":
		sink, err = storage.NewTarFile(scratchPath, storage.HashOnlyPathGenerator{})
	case "tar_gz":
		sink, err = storage.NewTarGzFile(scratchPath, storage.HashOnlyPathGenerator{}, *level)
	default:
		log.Fatalf("estimate: unknown backend %q (want tar or tar_gz)", backend)
	}
	if err != nil {
		log.Fatalf("estimate: creating sample backend: %v", err)
	}

	e := enumerator.New(notevec, length)
	var sampled uint64
	for sampled < simCount {
		melody, ok := e.Next()
		if !ok {
			break
		}
		m := make(midi.Melody, len(melody))
		copy(m, melody)
		if err := sink.AppendMelody(m, nil); err != nil {
			log.Fatalf("estimate: %v", err)
		}
		sampled++
	}
	if err := sink.Finish(); err != nil {
		log.Fatalf("estimate: %v", err)
	}

	info, err := os.Stat(scratchPath)
	if err != nil {
		log.Fatalf("estimate: %v", err)
	}
	sampleSize := uint64(info.Size())

	estimate := extrapolate(sampled, numMelodies, sampleSize)
	fmt.Printf("num_melodies=%d sampled=%d sample_size=%d estimated_size=%d\n",
		numMelodies, sampled, sampleSize, estimate)
}

// simNumMelodies picks how many melodies to actually write for the sample:
// the whole set if it's small, otherwise 20% of it capped at
// maxSimMelodies.
func simNumMelodies(numMelodies uint64) uint64 {
	if numMelodies <= maxSimMelodies {
		return numMelodies
	}
	scaled := uint64(math.Floor(float64(numMelodies) * 0.20))
	if scaled > maxSimMelodies {
		return maxSimMelodies
	}
	return scaled
}

// extrapolate scales a sample archive's size up to the full melody count.
// When the sample covers every melody, the sample size is exact. When it
// was capped at maxSimMelodies, scale linearly by the ratio of totals;
// otherwise (the 20%-sample regime) apply a flat 5x safety factor, since
// compression ratio on a small sample is a noisy predictor of the whole.
func extrapolate(sampled, total, sampleSize uint64) uint64 {
	switch {
	case sampled == total:
		return sampleSize
	case sampled == maxSimMelodies:
		factor := math.Ceil(float64(total) / float64(maxSimMelodies))
		return uint64(factor) * sampleSize
	default:
		return sampleSize * 5
	}
}
