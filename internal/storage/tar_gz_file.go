package storage

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

// DefaultCompressionLevel is the gzip compression level used when none is
// specified, matching compress/gzip's own notion of a balanced default.
const DefaultCompressionLevel = 6

// ValidateCompressionLevel returns an error if level is outside gzip's
// supported range (0-9), before any bytes are written.
func ValidateCompressionLevel(level int) error {
	if level < gzip.NoCompression || level > gzip.BestCompression {
		return fmt.Errorf("%w: %d not in 0-9", ErrCompressionOutOfRange, level)
	}
	return nil
}

// TarGzFile is a TarArchive over a gzip encoder layered on a buffered file
// sink. Use when output size matters more than write throughput; realized
// compression ratio depends on the configured level and how repetitive the
// underlying melodies are.
type TarGzFile struct {
	archive *TarArchive
	gz      *gzip.Writer
	buf     *bufio.Writer
	file    *os.File
}

// NewTarGzFile creates a TarGzFile writing to targetPath at the given
// compression level (0-9; pass DefaultCompressionLevel for the default).
func NewTarGzFile(targetPath string, paths PathGenerator, level int) (*TarGzFile, error) {
	if err := ValidateCompressionLevel(level); err != nil {
		return nil, err
	}
	f, err := os.Create(targetPath)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	gz, err := gzip.NewWriterLevel(buf, level)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &TarGzFile{
		archive: NewTarArchive(gz, paths),
		gz:      gz,
		buf:     buf,
		file:    f,
	}, nil
}

// AppendFile implements StorageBackend.
func (t *TarGzFile) AppendFile(mfile *midi.File, mode *uint32) error {
	return t.archive.AppendFile(mfile, mode)
}

// AppendMelody implements StorageBackend.
func (t *TarGzFile) AppendMelody(melody midi.Melody, mode *uint32) error {
	return t.archive.AppendMelody(melody, mode)
}

// Finish implements StorageBackend: closes the tar stream, flushes the
// gzip writer's trailer, and closes the underlying file. Idempotent.
func (t *TarGzFile) Finish() error {
	closing := t.archive.State != Closed
	if err := t.archive.Finish(); err != nil {
		return err
	}
	if !closing {
		return nil
	}
	if err := t.gz.Close(); err != nil {
		return err
	}
	if err := t.buf.Flush(); err != nil {
		return err
	}
	return t.file.Close()
}
