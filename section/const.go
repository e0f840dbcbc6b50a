package section

import "math"

// fixed sizes of the binary structures
const (
	BlockHeaderSize    = 7  // capacity(4) + prefix size(2) + length(1), no padding
	IndexEntrySize     = 4  // offset(2) + size(2), no padding
	SnapshotHeaderSize = 27 // flag(4) + block header(7) + raw size(4) + payload size(4) + checksum(8)
)

// limits implied by the field widths
const (
	MaxLength     = math.MaxUint8  // the length field is a single byte
	MaxOffset     = math.MaxUint16 // index offsets are 16-bit
	MaxSuffixSize = math.MaxUint16 // index sizes are 16-bit
	MinCapacity   = IndexEntrySize // an empty block still stores its sentinel entry
	MaxCapacity   = math.MaxUint16 // bytes beyond MaxOffset are not addressable
)

const (
	// Bit masks of SnapshotFlag.Options
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2 and 3)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicSnapshotV1 = 0xFB10 // MagicSnapshotV1 identifies the version 1 block snapshot format.
)
