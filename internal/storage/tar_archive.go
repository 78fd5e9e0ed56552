package storage

import (
	"archive/tar"
	"fmt"
	"io"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

// TarArchive is the shared append-only tar-writing primitive every backend
// in this package builds on. It's parameterized over an io.Writer sink
// and a PathGenerator: no inheritance hierarchy, just two narrow
// interfaces (io.Writer already is the "write bytes" contract;
// PathGenerator is the other).
type TarArchive struct {
	w       *tar.Writer
	sink    io.Writer
	paths   PathGenerator
	State   State
}

// NewTarArchive builds a TarArchive writing to sink, naming entries with
// paths.
func NewTarArchive(sink io.Writer, paths PathGenerator) *TarArchive {
	return &TarArchive{
		w:     tar.NewWriter(sink),
		sink:  sink,
		paths: paths,
		State: Open,
	}
}

// AppendFile computes mfile's path, builds a USTAR tar header sized
// to mfile's serialized length, and writes header+data+padding to the
// archive. mode overrides the entry's permission bits; nil uses 0o644.
func (a *TarArchive) AppendFile(mfile *midi.File, mode *uint32) error {
	if a.State == Closed {
		return fmt.Errorf("%w: cannot append file", ErrBackendClosed)
	}

	p, err := a.paths.PathForFile(mfile)
	if err != nil {
		return err
	}

	hdr := &tar.Header{
		Name:     p,
		Size:     int64(mfile.Size()),
		Mode:     int64(resolveMode(mode)),
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := a.w.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := a.w.Write(mfile.Bytes()); err != nil {
		return err
	}
	return nil
}

// AppendMelody builds a MidiFile from melody and appends it.
func (a *TarArchive) AppendMelody(melody midi.Melody, mode *uint32) error {
	return a.AppendFile(buildMidiFile(melody), mode)
}

// appendBytes writes an entry with an explicit name and payload, bypassing
// the configured PathGenerator. Used for outer BatchTarFile entries, whose
// names are synthesized from partition/batch state rather than derived
// from a MidiFile.
func (a *TarArchive) appendBytes(name string, payload []byte, mode *uint32) error {
	if a.State == Closed {
		return fmt.Errorf("%w: cannot append file", ErrBackendClosed)
	}
	hdr := &tar.Header{
		Name:     name,
		Size:     int64(len(payload)),
		Mode:     int64(resolveMode(mode)),
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := a.w.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := a.w.Write(payload)
	return err
}

// Finish writes the tar end-of-archive (two zero blocks) and transitions
// to Closed. Idempotent once Closed.
func (a *TarArchive) Finish() error {
	if a.State == Closed {
		return nil
	}
	a.State = Closed
	return a.w.Close()
}

// IntoInner finishes the archive and returns the underlying sink.
func (a *TarArchive) IntoInner() (io.Writer, error) {
	if err := a.Finish(); err != nil {
		return nil, err
	}
	return a.sink, nil
}
