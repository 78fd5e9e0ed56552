package storage

import (
	"bufio"
	"os"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

// TarFile is a TarArchive over a buffered file sink with no compression.
// Use when output size isn't a concern: a tar archive with 4096 entries
// takes roughly 4.19MB on disk, since each entry requires a 512-byte
// header and at least 512 bytes of data.
type TarFile struct {
	archive *TarArchive
	file    *os.File
}

// NewTarFile creates a TarFile writing to targetPath, naming entries with
// paths.
func NewTarFile(targetPath string, paths PathGenerator) (*TarFile, error) {
	f, err := os.Create(targetPath)
	if err != nil {
		return nil, err
	}
	return &TarFile{
		archive: NewTarArchive(bufio.NewWriter(f), paths),
		file:    f,
	}, nil
}

// AppendFile implements StorageBackend.
func (t *TarFile) AppendFile(mfile *midi.File, mode *uint32) error {
	return t.archive.AppendFile(mfile, mode)
}

// AppendMelody implements StorageBackend.
func (t *TarFile) AppendMelody(melody midi.Melody, mode *uint32) error {
	return t.archive.AppendMelody(melody, mode)
}

// Finish implements StorageBackend: flushes the tar end-of-archive and
// closes the underlying file.
func (t *TarFile) Finish() error {
	closing := t.archive.State != Closed
	if err := t.archive.Finish(); err != nil {
		return err
	}
	if !closing {
		return nil
	}
	if bw, ok := t.archive.sink.(*bufio.Writer); ok {
		if err := bw.Flush(); err != nil {
			return err
		}
	}
	return t.file.Close()
}
