package section

import (
	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
)

// SnapshotHeader is the fixed 27-byte prefix of a snapshot image.
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|-------------------------------------------
//	0-1    | Options     | uint16 | magic number and endianness, always little-endian
//	2      | Compression | uint8  | payload codec
//	3      | Reserved    | uint8  | must be 0
//	4-10   | Block       | 7B     | BlockHeader
//	11-14  | RawSize     | uint32 | used block bytes before compression
//	15-18  | PayloadSize | uint32 | payload bytes following the header
//	19-26  | Checksum    | uint64 | xxHash64 of the raw used bytes
type SnapshotHeader struct {
	Flag        SnapshotFlag
	Block       BlockHeader
	RawSize     uint32
	PayloadSize uint32
	Checksum    uint64
}

// GetEndianEngine returns the engine selected by the flag.
func (h *SnapshotHeader) GetEndianEngine() endian.EndianEngine {
	if h.Flag.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Bytes serializes the header into a new 27-byte slice.
func (h *SnapshotHeader) Bytes() []byte {
	b := make([]byte, SnapshotHeaderSize)
	engine := h.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Compression
	b[3] = h.Flag.Reserved
	_ = h.Block.WriteToSlice(b[4:11], engine)
	engine.PutUint32(b[11:15], h.RawSize)
	engine.PutUint32(b[15:19], h.PayloadSize)
	engine.PutUint64(b[19:27], h.Checksum)

	return b
}

// Parse parses the header from the first 27 bytes of data and validates the flag.
func (h *SnapshotHeader) Parse(data []byte) error {
	if len(data) < SnapshotHeaderSize {
		return errs.ErrInvalidSnapshotSize
	}

	// Options is read little-endian before the engine is known.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Compression = data[2]
	h.Flag.Reserved = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()

	block, err := ParseBlockHeader(data[4:11], engine)
	if err != nil {
		return err
	}
	h.Block = block
	h.RawSize = engine.Uint32(data[11:15])
	h.PayloadSize = engine.Uint32(data[15:19])
	h.Checksum = engine.Uint64(data[19:27])

	return nil
}
