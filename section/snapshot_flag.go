package section

import (
	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
)

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// SnapshotFlag is the packed 4-byte field at the start of a snapshot image.
type SnapshotFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved, must be 0.
	// Bits 4-15 are the magic number 0xFB10.
	Options uint16

	// Compression is the codec applied to the used block bytes.
	Compression uint8

	// Reserved must be 0.
	Reserved uint8
}

// NewSnapshotFlag creates a little-endian, uncompressed flag.
func NewSnapshotFlag() SnapshotFlag {
	return SnapshotFlag{
		Options:     MagicSnapshotV1,
		Compression: uint8(format.CompressionNone),
	}
}

// IsLittleEndian returns whether the snapshot is little-endian.
func (f SnapshotFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the snapshot is big-endian.
func (f SnapshotFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *SnapshotFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *SnapshotFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f SnapshotFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetCompression sets the payload compression type.
func (f *SnapshotFlag) SetCompression(compression format.CompressionType) {
	f.Compression = uint8(compression)
}

// GetCompression returns the payload compression type.
func (f SnapshotFlag) GetCompression() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, the reserved bits and the compression type.
func (f SnapshotFlag) Validate() error {
	if f.GetMagicNumber() != MagicSnapshotV1 {
		return errs.ErrInvalidMagicNumber
	}

	if (f.Options&ReservedBitsMask) != 0 || f.Reserved != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validCompressions[f.Compression]; !ok {
		return errs.ErrInvalidCompressionType
	}

	return nil
}
