package sf2

import "errors"

// Errors returned while encoding an instrument.
var (
	// ErrInvalidTag indicates a chunk or list tag that is not exactly 4 ASCII bytes.
	ErrInvalidTag = errors.New("sf2: chunk tag must be exactly 4 ASCII bytes")

	// ErrChunkTooLarge indicates a chunk payload or sample offset that does not fit
	// the format's 32-bit fields.
	ErrChunkTooLarge = errors.New("sf2: chunk exceeds 32-bit size limit")

	// ErrTooManyRecords indicates more samples, zones or generators than the
	// format's 16-bit indexes can address.
	ErrTooManyRecords = errors.New("sf2: too many records for 16-bit index")

	// ErrMissingKeyRange is returned by explicit key mapping when a sample has no range.
	ErrMissingKeyRange = errors.New("sf2: sample has no key range")

	// ErrInvalidKeyRange is returned by explicit key mapping for ranges outside 0-127
	// or with a low key above the high key.
	ErrInvalidKeyRange = errors.New("sf2: invalid key range")

	// ErrKeyRangeOverlap is returned by explicit key mapping when two samples claim the same key.
	ErrKeyRangeOverlap = errors.New("sf2: key ranges overlap")
)
