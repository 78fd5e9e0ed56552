package diag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

func TestInspectRoundTrips(t *testing.T) {
	m := midi.Melody{
		midi.NewPitch(0, 4),
		midi.NewPitch(4, 4),
		midi.NewPitch(7, 4),
	}
	f := midi.New(m, midi.Format0, 1, 1)

	dir := t.TempDir()
	path := filepath.Join(dir, "chord.mid")
	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	h, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Format != 0 {
		t.Errorf("Format = %d, want 0", h.Format)
	}
	if h.TrackCount != 1 {
		t.Errorf("TrackCount = %d, want 1", h.TrackCount)
	}
	if h.Division != 1 {
		t.Errorf("Division = %d, want 1", h.Division)
	}
	if h.NoteCount != len(m) {
		t.Errorf("NoteCount = %d, want %d", h.NoteCount, len(m))
	}
}

func TestInspectRejectsShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.mid")
	if err := os.WriteFile(path, []byte("not a midi file"), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	if _, err := Inspect(path); err == nil {
		t.Error("expected an error for a too-short file")
	}
}
