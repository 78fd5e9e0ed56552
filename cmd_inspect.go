package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/allthemusicllc/atm-cli/internal/diag"
)

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 1 {
		fatalUsage(fs, "inspect: expected <path>")
	}

	h, err := diag.Inspect(rest[0])
	if err != nil {
		log.Fatalf("inspect: %v", err)
	}
	fmt.Printf("format=%d tracks=%d division=%d track_length=%d notes=%d\n",
		h.Format, h.TrackCount, h.Division, h.TrackLength, h.NoteCount)
}
