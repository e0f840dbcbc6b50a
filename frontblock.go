// Package frontblock stores a small sorted set of byte strings in a single
// fixed-capacity buffer using front compression.
//
// Strings in a block share one common prefix, stored once at the start of
// the buffer, followed by an index table of (offset, size) pairs and the
// remaining suffix bytes. The layout is designed for index pages and other
// read-mostly containers of similar keys: lookups and decoding work directly
// on the buffer without any intermediate representation.
//
// # Basic Usage
//
//	b, _ := frontblock.New(4096)
//	b.Insert([]byte("cluster.node01.cpu"))
//	b.Insert([]byte("cluster.node02.cpu"))
//
//	// move the shared leading bytes into the prefix, then reclaim them
//	b.GrowPrefix()
//	b.Vacuumize()
//
//	pos, err := b.Find([]byte("cluster.node02.cpu"))
//
// Persisting a block:
//
//	img, _ := frontblock.Marshal(b, snapshot.WithCompression(format.CompressionZstd))
//	restored, _ := frontblock.Unmarshal(img)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the block and
// snapshot packages. For fine-grained control over the buffer, use the block
// package directly.
package frontblock

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/arloliu/frontblock/block"
	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/snapshot"
)

// New allocates a buffer of the given capacity and initializes an empty
// block over it.
func New(capacity int, opts ...block.Option) (*block.Block, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
	}

	return block.New(make([]byte, capacity), opts...)
}

// FromKeys builds a block of the given capacity holding keys.
//
// Keys are inserted in order. Duplicates are skipped. When the block fills
// up, FromKeys grows the prefix over the keys stored so far, vacuumizes the
// block and retries once. It returns the block together with the number of
// keys stored; on failure the error is errs.ErrBlockFull or
// errs.ErrNeedsReencode for the first key that could not be stored.
func FromKeys(capacity int, keys [][]byte, opts ...block.Option) (*block.Block, int, error) {
	b, err := New(capacity, opts...)
	if err != nil {
		return nil, 0, err
	}

	stored := 0
	compacted := false
	for i := 0; i < len(keys); i++ {
		_, err := b.Insert(keys[i])
		switch {
		case err == nil:
			stored++
		case errors.Is(err, errs.ErrAlreadyExists):
		case errors.Is(err, errs.ErrBlockFull) && !compacted:
			compacted = true
			if !compactFor(b, keys[i:]) {
				return b, stored, fmt.Errorf("key %d: %w", i, err)
			}
			i--
		default:
			return b, stored, fmt.Errorf("key %d: %w", i, err)
		}
	}

	return b, stored, nil
}

// compactFor reclaims dead space, growing the prefix first when the pending
// keys share everything GrowPrefix would absorb. It reports whether any
// space was freed.
func compactFor(b *block.Block, pending [][]byte) bool {
	before := b.FreeSize()

	if canGrow(b, pending) {
		b.GrowPrefix()
	}
	b.Vacuumize()

	return b.FreeSize() > before
}

// canGrow reports whether growing the prefix over the stored keys leaves
// every pending key insertable.
func canGrow(b *block.Block, pending [][]byte) bool {
	if b.Length() == 0 {
		return false
	}

	keys := b.Keys()
	stored := len(keys[0])
	for _, k := range keys[1:] {
		stored = min(stored, sharedLen(keys[0], k))
	}
	if stored <= b.PrefixSize() {
		return false
	}

	for _, k := range pending {
		if sharedLen(keys[0], k) < stored {
			return false
		}
	}

	return true
}

func sharedLen(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}

	return n
}

// Marshal encodes b as a snapshot image.
func Marshal(b *block.Block, opts ...snapshot.EncodeOption) ([]byte, error) {
	return snapshot.Encode(b, opts...)
}

// Unmarshal restores a block from a snapshot image produced by Marshal.
func Unmarshal(img []byte, opts ...block.Option) (*block.Block, error) {
	return snapshot.Decode(img, opts...)
}

// Equal reports whether two blocks hold the same strings in the same order,
// regardless of their physical layout.
func Equal(a, b *block.Block) bool {
	if a.Length() != b.Length() {
		return false
	}

	ka, kb := a.Keys(), b.Keys()
	for i := range ka {
		if !bytes.Equal(ka[i], kb[i]) {
			return false
		}
	}

	return true
}
