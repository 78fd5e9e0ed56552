/*
atm-cli enumerates every melody of a fixed length drawable from a chosen
set of pitches and writes the results to one of three archive layouts.

Usage:

	atm-cli gen tar|tar_gz|batch [flags] <notes> <length> <target>
	atm-cli gen single <notes> <target>
	atm-cli partition [flags] <notes> <length>
	atm-cli estimate tar|tar_gz [flags] <notes> <length>
	atm-cli inspect <path>
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

const description = `
atm-cli enumerates, by brute force, every melody of a fixed length drawable
(with replacement) from a chosen set of pitches, and writes the resulting
MIDI files to disk as one of three archive layouts: a plain tar file, a
gzip-compressed tar file, or a tar file of batched, gzip-compressed inner
tar files (for the largest datasets).

Subcommands:

	gen tar|tar_gz|batch   generate melodies into an archive
	gen single             generate a single melody's MIDI file
	partition              report the partition scheme for a note set/length
	estimate tar|tar_gz    estimate output archive size without writing it
	inspect                read back a generated MIDI file's header fields
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "partition":
		runPartition(os.Args[2:])
	case "estimate":
		runEstimate(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "atm-cli: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(description)
	fmt.Println("Run 'atm-cli <subcommand> -h' for subcommand-specific flags.")
}

// fatalUsage prints msg, the FlagSet's defaults, and exits non-zero. Mirrors
// this project's log.Fatalln validation style, but for a *flag.FlagSet
// scoped to a single subcommand rather than the top-level flag.CommandLine.
func fatalUsage(fs *flag.FlagSet, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	fs.PrintDefaults()
	os.Exit(1)
}
