package storage

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

func TestValidateCompressionLevelRejectsOutOfRange(t *testing.T) {
	if err := ValidateCompressionLevel(-1); !errors.Is(err, ErrCompressionOutOfRange) {
		t.Errorf("level -1: got %v, want ErrCompressionOutOfRange", err)
	}
	if err := ValidateCompressionLevel(10); !errors.Is(err, ErrCompressionOutOfRange) {
		t.Errorf("level 10: got %v, want ErrCompressionOutOfRange", err)
	}
	if err := ValidateCompressionLevel(6); err != nil {
		t.Errorf("level 6: unexpected error %v", err)
	}
}

// S5-equivalent for TarGzFile: one melody produces one readable gzip+tar
// entry of the expected size.
func TestTarGzFileSingleEntry(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.tar.gz")

	b, err := NewTarGzFile(target, HashOnlyPathGenerator{}, DefaultCompressionLevel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := midi.Melody{midi.NewPitch(0, 4)}
	if err := b.AppendMelody(m, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Idempotent.
	if err := b.Finish(); err != nil {
		t.Errorf("second Finish: unexpected error: %v", err)
	}

	f, err := os.Open(target)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("opening gzip reader: %v", err)
	}
	tr := tar.NewReader(gz)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("reading tar entry: %v", err)
	}
	wantName := midi.HashMelody(m) + ".mid"
	if hdr.Name != wantName {
		t.Errorf("entry name = %q, want %q", hdr.Name, wantName)
	}
	data, err := io.ReadAll(tr)
	if err != nil {
		t.Fatalf("reading entry data: %v", err)
	}
	wantFile := midi.New(m, midi.Format0, 1, 1)
	if len(data) != wantFile.Size() {
		t.Errorf("entry size = %d, want %d", len(data), wantFile.Size())
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Errorf("expected exactly one entry, got extra entry or error %v", err)
	}
}
