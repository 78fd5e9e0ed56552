package combinatorics

import "errors"

// Sentinel errors for PartitionLength, checkable with errors.Is. They live
// here because PartitionLength is where they're first detected;
// internal/storage re-wraps them rather than redefining them.
var (
	// ErrPartitionDepthLongerThanMelody is returned when the requested
	// partition depth exceeds the melody length (each partition branch
	// needs at least one note).
	ErrPartitionDepthLongerThanMelody = errors.New("partition depth longer than melody")

	// ErrPartitionsLongerThanMelody is returned when depth*partitionLength
	// would exceed the melody length.
	ErrPartitionsLongerThanMelody = errors.New("partitions longer than melody")
)
