package section

import (
	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
)

// IndexEntry locates one stored suffix inside the block data buffer.
//
// Offset is absolute from the start of the buffer, not relative to the
// payload region. The entry after the last stored string is a sentinel whose
// Offset is the number of used bytes and whose Size is unused.
type IndexEntry struct {
	Offset uint16 // 2 bytes, offset 0-1
	Size   uint16 // 2 bytes, offset 2-3
}

// End returns the offset just past the suffix bytes.
func (e IndexEntry) End() int {
	return int(e.Offset) + int(e.Size)
}

// Put writes the entry into b without a length check.
func (e IndexEntry) Put(b []byte, engine endian.EndianEngine) {
	engine.PutUint16(b[0:2], e.Offset)
	engine.PutUint16(b[2:4], e.Size)
}

// WriteToSlice writes the entry into b, which must hold at least 4 bytes.
func (e IndexEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < IndexEntrySize {
		return errs.ErrInvalidIndexEntrySize
	}
	e.Put(b, engine)

	return nil
}

// ReadIndexEntry decodes an entry from b without a length check.
func ReadIndexEntry(b []byte, engine endian.EndianEngine) IndexEntry {
	return IndexEntry{
		Offset: engine.Uint16(b[0:2]),
		Size:   engine.Uint16(b[2:4]),
	}
}

// ParseIndexEntry decodes an entry from the first 4 bytes of data.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return ReadIndexEntry(data, engine), nil
}
