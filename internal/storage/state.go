package storage

import "github.com/allthemusicllc/atm-cli/internal/midi"

// State tracks whether a storage backend is open for writing or has been
// permanently closed. It transitions Open -> Closed exactly once; writes
// are forbidden once Closed.
type State int

const (
	// Open backends accept further appends.
	Open State = iota
	// Closed backends reject appends; Finish is a no-op once reached.
	Closed
)

// defaultMode is the file mode used for tar entries when no explicit mode
// is supplied.
const defaultMode uint32 = 0o644

// StorageBackend is the common contract every archive backend exposes:
// consume melodies/files one at a time, and allow a final Finish call to
// produce a well-formed archive.
type StorageBackend interface {
	// AppendFile converts mfile to bytes via its own serialization and
	// appends it to the backend's underlying archive at the path its
	// PathGenerator assigns. mode overrides the entry's file mode; nil
	// means the backend's configured default.
	AppendFile(mfile *midi.File, mode *uint32) error
	// AppendMelody builds a MidiFile from melody (format 0, one track, one
	// tick per quarter) and delegates to AppendFile.
	AppendMelody(melody midi.Melody, mode *uint32) error
	// Finish writes any trailing archive structure (end-of-archive
	// markers, trailing batch flush) and transitions the backend to
	// Closed. It is idempotent: calling it again after success returns
	// nil.
	Finish() error
}

func resolveMode(mode *uint32) uint32 {
	if mode == nil {
		return defaultMode
	}
	return *mode
}

func buildMidiFile(melody midi.Melody) *midi.File {
	return midi.New(melody, midi.Format0, 1, 1)
}
