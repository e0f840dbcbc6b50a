package section

import (
	"fmt"

	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
)

// BlockHeader is the fixed-size metadata of a block. It is stored apart
// from the block data buffer and is 7 bytes when serialized.
//
//	Bytes | Field      | Type   | Description
//	------|------------|--------|-----------------------------------------
//	0-3   | Capacity   | uint32 | byte length of the block data buffer
//	4-5   | PrefixSize | uint16 | length of the shared prefix
//	6     | Length     | uint8  | number of stored strings
type BlockHeader struct {
	// Capacity is fixed when the block is initialized and never changes.
	Capacity uint32
	// PrefixSize only grows.
	PrefixSize uint16
	// Length is the number of strings currently stored.
	Length uint8
}

// NewBlockHeader creates a zeroed header for a buffer of the given capacity.
func NewBlockHeader(capacity int) (*BlockHeader, error) {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", errs.ErrInvalidCapacity, capacity, MinCapacity, MaxCapacity)
	}

	return &BlockHeader{Capacity: uint32(capacity)}, nil //nolint: gosec
}

// IndexOffset returns the byte offset of the index table in the data buffer.
func (h *BlockHeader) IndexOffset() int {
	return int(h.PrefixSize)
}

// IndexEnd returns the byte offset just past the sentinel index entry.
func (h *BlockHeader) IndexEnd() int {
	return int(h.PrefixSize) + (int(h.Length)+1)*IndexEntrySize
}

// WriteToSlice serializes the header into b, which must hold at least 7 bytes.
func (h *BlockHeader) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < BlockHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine.PutUint32(b[0:4], h.Capacity)
	engine.PutUint16(b[4:6], h.PrefixSize)
	b[6] = h.Length

	return nil
}

// Bytes serializes the header into a new 7-byte slice.
func (h *BlockHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, BlockHeaderSize)
	_ = h.WriteToSlice(b, engine)

	return b
}

// ParseBlockHeader parses a block header from the first 7 bytes of data.
func ParseBlockHeader(data []byte, engine endian.EndianEngine) (BlockHeader, error) {
	if len(data) < BlockHeaderSize {
		return BlockHeader{}, errs.ErrInvalidHeaderSize
	}

	return BlockHeader{
		Capacity:   engine.Uint32(data[0:4]),
		PrefixSize: engine.Uint16(data[4:6]),
		Length:     data[6],
	}, nil
}
