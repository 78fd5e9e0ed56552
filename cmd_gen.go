package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/allthemusicllc/atm-cli/internal/combinatorics"
	"github.com/allthemusicllc/atm-cli/internal/enumerator"
	"github.com/allthemusicllc/atm-cli/internal/midi"
	"github.com/allthemusicllc/atm-cli/internal/progress"
	"github.com/allthemusicllc/atm-cli/internal/storage"
	"github.com/allthemusicllc/atm-cli/internal/valid"
)

// runGen dispatches "gen tar|tar_gz|batch|single" to their own flag sets.
func runGen(args []string) {
	if len(args) < 1 {
		log.Fatalln("gen: expected a backend: tar, tar_gz, batch, or single")
	}
	switch args[0] {
	case "tar":
		runGenTar(args[1:])
	case "tar_gz":
		runGenTarGz(args[1:])
	case "batch":
		runGenBatch(args[1:])
	case "single":
		runGenSingle(args[1:])
	default:
		log.Fatalf("gen: unknown backend %q (want tar, tar_gz, batch, or single)", args[0])
	}
}

// parseNotesAndLength parses the two positional arguments shared by the
// gen tar/tar_gz/batch, estimate and partition subcommands: a
// comma-separated note set and a melody length.
func parseNotesAndLength(fs *flag.FlagSet) (midi.NoteSet, int) {
	rest := fs.Args()
	if len(rest) < 2 {
		fatalUsage(fs, fmt.Sprintf("%s: expected <notes> <length> [target]", fs.Name()))
	}
	notes, err := midi.ParseNoteSet(rest[0])
	if err != nil {
		log.Fatalf("%s: %v", fs.Name(), err)
	}
	var length int
	if _, err := fmt.Sscanf(rest[1], "%d", &length); err != nil || !valid.MelodyLength(length) {
		log.Fatalf("%s: melody length must be a positive integer, got %q", fs.Name(), rest[1])
	}
	return notes, length
}

func runGenTar(args []string) {
	fs := flag.NewFlagSet("gen tar", flag.ExitOnError)
	maxFiles := fs.Uint64("max-files", 4096, "maximum number of files per directory")
	partitionDepth := fs.Int("partition-depth", -1, "partition depth (omit to disable partitioning)")
	statusAddr := fs.String("status-addr", "", "if set, serve JSON progress on this host:port while writing")
	fs.Parse(args)

	notes, length := parseNotesAndLength(fs)
	rest := fs.Args()
	if len(rest) < 3 {
		fatalUsage(fs, "gen tar: expected <notes> <length> <target>")
	}
	target := rest[2]

	var paths storage.PathGenerator
	if *partitionDepth >= 0 {
		if !valid.MaxFiles(*maxFiles) {
			log.Fatalf("gen tar: max-files must be in (0, %d]", valid.MaxFilesCap)
		}
		if !valid.PartitionDepth(*partitionDepth) {
			log.Fatalf("gen tar: partition-depth must be in [0, %d]", valid.MaxPartitionDepth)
		}
		g, err := storage.NewPartitionedPathGenerator(uint64(notes.Len()), length, *maxFiles, *partitionDepth)
		if err != nil {
			log.Fatalf("gen tar: %v", err)
		}
		paths = g
	} else {
		paths = storage.HashOnlyPathGenerator{}
	}

	backend, err := storage.NewTarFile(target, paths)
	if err != nil {
		log.Fatalf("gen tar: creating backend: %v", err)
	}
	writeMelodiesToBackend(notes, length, backend, *statusAddr)
}

func runGenTarGz(args []string) {
	fs := flag.NewFlagSet("gen tar_gz", flag.ExitOnError)
	maxFiles := fs.Uint64("max-files", 4096, "maximum number of files per directory")
	partitionDepth := fs.Int("partition-depth", -1, "partition depth (omit to disable partitioning)")
	level := fs.Int("compress", storage.DefaultCompressionLevel, "gzip compression level [0-9]")
	statusAddr := fs.String("status-addr", "", "if set, serve JSON progress on this host:port while writing")
	fs.Parse(args)

	notes, length := parseNotesAndLength(fs)
	rest := fs.Args()
	if len(rest) < 3 {
		fatalUsage(fs, "gen tar_gz: expected <notes> <length> <target>")
	}
	target := rest[2]

	if !valid.CompressionLevel(*level) {
		log.Fatalln("gen tar_gz: compress must be in [0, 9]")
	}

	var paths storage.PathGenerator
	if *partitionDepth >= 0 {
		if !valid.MaxFiles(*maxFiles) {
			log.Fatalf("gen tar_gz: max-files must be in (0, %d]", valid.MaxFilesCap)
		}
		if !valid.PartitionDepth(*partitionDepth) {
			log.Fatalf("gen tar_gz: partition-depth must be in [0, %d]", valid.MaxPartitionDepth)
		}
		g, err := storage.NewPartitionedPathGenerator(uint64(notes.Len()), length, *maxFiles, *partitionDepth)
		if err != nil {
			log.Fatalf("gen tar_gz: %v", err)
		}
		paths = g
	} else {
		paths = storage.HashOnlyPathGenerator{}
	}

	backend, err := storage.NewTarGzFile(target, paths, *level)
	if err != nil {
		log.Fatalf("gen tar_gz: creating backend: %v", err)
	}
	writeMelodiesToBackend(notes, length, backend, *statusAddr)
}

func runGenBatch(args []string) {
	fs := flag.NewFlagSet("gen batch", flag.ExitOnError)
	maxFiles := fs.Uint64("max-files", 4096, "maximum number of files per directory")
	partitionDepth := fs.Int("partition-depth", 0, "partition depth")
	level := fs.Int("compress", storage.DefaultCompressionLevel, "gzip compression level [0-9]")
	batchSize := fs.Int("batch-size", storage.DefaultBatchSize, "number of melodies per inner batch")
	modeStr := fs.String("mode", "644", "octal permissions for top-level tar entries")
	statusAddr := fs.String("status-addr", "", "if set, serve JSON progress on this host:port while writing")
	fs.Parse(args)

	notes, length := parseNotesAndLength(fs)
	rest := fs.Args()
	if len(rest) < 3 {
		fatalUsage(fs, "gen batch: expected <notes> <length> <target>")
	}
	target := rest[2]

	if !valid.MaxFiles(*maxFiles) {
		log.Fatalf("gen batch: max-files must be in (0, %d]", valid.MaxFilesCap)
	}
	if !valid.PartitionDepth(*partitionDepth) {
		log.Fatalf("gen batch: partition-depth must be in [0, %d]", valid.MaxPartitionDepth)
	}
	if !valid.CompressionLevel(*level) {
		log.Fatalln("gen batch: compress must be in [0, 9]")
	}
	if !valid.BatchSize(*batchSize) {
		log.Fatalln("gen batch: batch-size must be > 0")
	}
	mode, err := valid.Mode(*modeStr)
	if err != nil {
		log.Fatalf("gen batch: %v", err)
	}

	backend, err := storage.NewBatchTarFile(target, *batchSize, uint64(notes.Len()), length, *maxFiles, *partitionDepth, *level, &mode)
	if err != nil {
		log.Fatalf("gen batch: creating backend: %v", err)
	}
	writeMelodiesToBackend(notes, length, backend, *statusAddr)
}

func runGenSingle(args []string) {
	fs := flag.NewFlagSet("gen single", flag.ExitOnError)
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 2 {
		fatalUsage(fs, "gen single: expected <notes> <target>")
	}
	notes, err := midi.ParseNoteSet(rest[0])
	if err != nil {
		log.Fatalf("gen single: %v", err)
	}
	target := rest[1]

	mfile := midi.New(midi.Melody(notes.NoteVec()), midi.Format0, 1, 1)
	log.Println("gen single: writing MIDI file")
	if err := os.WriteFile(target, mfile.Bytes(), 0o644); err != nil {
		log.Fatalf("gen single: writing %s: %v", target, err)
	}
	log.Println("gen single: done")
}

// writeMelodiesToBackend drives the enumerator over notes/length into
// backend, logging progress periodically and finishing the backend
// afterward, matching the one-pass streaming write loop every gen
// subcommand shares. If statusAddr is non-empty, a JSON progress server
// is started in the background for the duration of the write loop; its
// failure is logged but never aborts the write loop itself, since the
// archive being produced doesn't depend on anyone watching it.
func writeMelodiesToBackend(notes midi.NoteSet, length int, backend storage.StorageBackend, statusAddr string) {
	notevec := notes.NoteVec()
	total := combinatorics.NumMelodies(uint64(notevec.Len()), length)
	tracker := progress.NewTracker(total)

	if statusAddr != "" {
		go func() {
			if err := progress.Serve(statusAddr, tracker); err != nil {
				log.Printf("gen: progress server on %s stopped: %v", statusAddr, err)
			}
		}()
	}

	e := enumerator.New(notevec, length)
	var written uint64
	for {
		melody, ok := e.Next()
		if !ok {
			break
		}
		m := make(midi.Melody, len(melody))
		copy(m, melody)
		if err := backend.AppendMelody(m, nil); err != nil {
			log.Fatalf("gen: failed to append melody: %v", err)
		}
		tracker.Add(1)
		written++
		if written%100000 == 0 {
			log.Printf("gen: %d/%d melodies written", written, total)
		}
	}

	if err := backend.Finish(); err != nil {
		log.Fatalf("gen: failed to finish writing archive: %v", err)
	}
	log.Printf("gen: done, %d melodies written", written)
}
