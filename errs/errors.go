// Package errs defines the sentinel errors returned by frontblock packages.
//
// Callers should compare with errors.Is, since most call sites wrap the
// sentinel with additional context.
package errs

import "errors"

// Block codec results.
var (
	// ErrAlreadyExists is returned by Insert when the key is already stored.
	ErrAlreadyExists = errors.New("key already exists")
	// ErrBlockFull is returned by Insert when the key does not fit into the block.
	ErrBlockFull = errors.New("block full")
	// ErrNotFound is returned by Find and Delete when the key is not stored.
	ErrNotFound = errors.New("key not found")
	// ErrNeedsReencode is returned when a key does not start with the block's shared prefix.
	ErrNeedsReencode = errors.New("key does not share the block prefix")
)

// Structural errors.
var (
	ErrInvalidCapacity       = errors.New("invalid block capacity")
	ErrInvalidPosition       = errors.New("invalid position")
	ErrBufferTooSmall        = errors.New("buffer too small")
	ErrInvalidHeaderSize     = errors.New("invalid header size")
	ErrInvalidIndexEntrySize = errors.New("invalid index entry size")
	ErrCorruptedBlock        = errors.New("corrupted block")
	ErrInvalidSearchMode     = errors.New("invalid search mode")
	ErrNilComparator         = errors.New("comparator must not be nil")
	ErrNilEndianEngine       = errors.New("endian engine must not be nil")
)

// Snapshot errors.
var (
	ErrInvalidSnapshotSize     = errors.New("invalid snapshot size")
	ErrInvalidMagicNumber      = errors.New("invalid magic number")
	ErrInvalidHeaderFlags      = errors.New("invalid header flags")
	ErrInvalidCompressionType  = errors.New("invalid compression type")
	ErrChecksumMismatch        = errors.New("checksum mismatch")
	ErrDecompressedSizeInvalid = errors.New("decompressed size does not match header")
)
