package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/allthemusicllc/atm-cli/internal/combinatorics"
	"github.com/allthemusicllc/atm-cli/internal/valid"
)

// runPartition reports the partition scheme (depth, length) a given note
// set/length/max-files combination resolves to, without writing anything.
func runPartition(args []string) {
	fs := flag.NewFlagSet("partition", flag.ExitOnError)
	maxFiles := fs.Uint64("max-files", 4096, "maximum number of files per directory")
	partitionDepth := fs.Int("partition-depth", 1, "requested partition depth")
	fs.Parse(args)

	notes, length := parseNotesAndLength(fs)

	if !valid.MaxFiles(*maxFiles) {
		log.Fatalf("partition: max-files must be in (0, %d]", valid.MaxFilesCap)
	}
	if !valid.PartitionDepth(*partitionDepth) {
		log.Fatalf("partition: partition-depth must be in [0, %d]", valid.MaxPartitionDepth)
	}

	k := uint64(notes.Len())
	numMelodies := combinatorics.NumMelodies(k, length)

	if k == 1 || numMelodies <= *maxFiles {
		fmt.Printf("num_melodies=%d partition_depth=1 partition_length=0 (flat layout)\n", numMelodies)
		return
	}

	p, err := combinatorics.PartitionLength(k, numMelodies, *maxFiles, length, *partitionDepth)
	if err != nil {
		log.Fatalf("partition: %v", err)
	}
	fmt.Printf("num_melodies=%d partition_depth=%d partition_length=%d\n", numMelodies, *partitionDepth, p)
}
