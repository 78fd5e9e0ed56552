package storage

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

// DefaultBatchSize is the number of melodies packed into one inner
// gzip-compressed tar before it is flushed as a single outer entry.
const DefaultBatchSize = 25

const maxEntryMode = 0o777

// BatchTarFile packs B melodies at a time into an inner gzip-compressed
// tar, then writes that inner archive as a single entry of an outer tar.
// With ~95-byte MIDI files and 512-byte tar block alignment, a plain tar
// wastes most of every entry; batching amortizes that overhead across B
// files compressed together.
//
// At most one inner archive is ever in flight. It is torn down and
// rebuilt fresh at every flush, targeting a new in-memory buffer; the
// enumerator's ordering guarantees a partition basename, once changed,
// never recurs, so a single forward pass suffices.
type BatchTarFile struct {
	outer *TarArchive
	file  *os.File
	buf   *bufio.Writer

	paths *PartitionedPathGenerator

	batchSize int
	gzLevel   int
	mode      uint32

	innerBuf    *bytes.Buffer
	innerGz     *gzip.Writer
	inner       *TarArchive
	partition   string
	haveFirst   bool
	batchCount  int
	batchNumber int

	state State
}

// NewBatchTarFile builds a BatchTarFile writing to targetPath. batchSize
// must be > 0; numNotes/melodyLength/maxFiles/partitionDepth parameterize
// the internal PartitionedPathGenerator; gzLevel is the inner archives'
// compression level (0-9); mode is the entry mode applied to outer
// batch*.tar.gz entries, defaulting to 0o644 when nil and rejected if it
// exceeds 0o777.
func NewBatchTarFile(targetPath string, batchSize int, numNotes uint64, melodyLength int, maxFiles uint64, partitionDepth int, gzLevel int, mode *uint32) (*BatchTarFile, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", batchSize)
	}
	if err := ValidateCompressionLevel(gzLevel); err != nil {
		return nil, err
	}
	resolvedMode := resolveMode(mode)
	if resolvedMode > maxEntryMode {
		return nil, fmt.Errorf("%w: entry mode %o exceeds %o", ErrInvalidMode, resolvedMode, maxEntryMode)
	}

	paths, err := NewPartitionedPathGenerator(numNotes, melodyLength, maxFiles, partitionDepth)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(targetPath)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)

	b := &BatchTarFile{
		outer:     NewTarArchive(buf, HashOnlyPathGenerator{}),
		file:      f,
		buf:       buf,
		paths:     paths,
		batchSize: batchSize,
		gzLevel:   gzLevel,
		mode:      resolvedMode,
		state:     Open,
	}
	b.resetInner()
	return b, nil
}

// resetInner rebuilds the inner tar-over-gzip writer targeting a fresh
// in-memory buffer.
func (b *BatchTarFile) resetInner() {
	b.innerBuf = &bytes.Buffer{}
	b.innerGz, _ = gzip.NewWriterLevel(b.innerBuf, b.gzLevel)
	b.inner = NewTarArchive(b.innerGz, HashOnlyPathGenerator{})
	b.batchCount = 0
}

// AppendFile computes mfile's partition basename, flushes the pending
// batch on a partition change or when the current batch is full, then
// appends mfile to the (possibly fresh) inner archive under a flat
// "<hash>.mid" name.
func (b *BatchTarFile) AppendFile(mfile *midi.File, mode *uint32) error {
	if b.state == Closed {
		return fmt.Errorf("%w: cannot append file", ErrBackendClosed)
	}

	basename, err := b.paths.basenameForFile(mfile)
	if err != nil {
		return err
	}

	switch {
	case !b.haveFirst || basename != b.partition:
		if err := b.flushAndReset(true); err != nil {
			return err
		}
		b.partition = basename
		b.haveFirst = true
	case b.batchCount == b.batchSize:
		if err := b.flushAndReset(false); err != nil {
			return err
		}
	}

	if err := b.inner.AppendFile(mfile, mode); err != nil {
		return err
	}
	b.batchCount++
	return nil
}

// AppendMelody builds a MidiFile from melody and appends it.
func (b *BatchTarFile) AppendMelody(melody midi.Melody, mode *uint32) error {
	return b.AppendFile(buildMidiFile(melody), mode)
}

// flushAndReset finishes the current inner archive (if it holds any
// entries), writes its compressed bytes as one outer entry named
// "<partition>/batch<N>.tar.gz" (no leading separator when partition is
// empty), and rebuilds a fresh inner archive. isPartitionBoundary resets
// the batch number to 0; otherwise the batch number increments.
func (b *BatchTarFile) flushAndReset(isPartitionBoundary bool) error {
	if b.batchCount > 0 {
		if err := b.inner.Finish(); err != nil {
			return err
		}
		if err := b.innerGz.Close(); err != nil {
			return err
		}
		entryName := fmt.Sprintf("batch%d.tar.gz", b.batchNumber)
		if b.partition != "" {
			entryName = path.Join(b.partition, entryName)
		}
		modeCopy := b.mode
		if err := b.outer.appendBytes(entryName, b.innerBuf.Bytes(), &modeCopy); err != nil {
			return err
		}
	}

	b.resetInner()
	if isPartitionBoundary {
		b.batchNumber = 0
	} else {
		b.batchNumber++
	}
	return nil
}

// Finish flushes any pending partial batch, writes the outer end-of-
// archive, and closes the underlying file. Idempotent.
func (b *BatchTarFile) Finish() error {
	if b.state == Closed {
		return nil
	}
	b.state = Closed
	if err := b.flushAndReset(false); err != nil {
		return err
	}
	if err := b.outer.Finish(); err != nil {
		return err
	}
	if err := b.buf.Flush(); err != nil {
		return err
	}
	return b.file.Close()
}
