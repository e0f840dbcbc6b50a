package block

import (
	"fmt"

	"github.com/arloliu/frontblock/errs"
)

// Stats summarizes the space accounting of a block.
type Stats struct {
	Length           int // number of stored strings
	Capacity         int // size of the data buffer
	PrefixSize       int // length of the shared prefix
	UsedSize         int // bytes consumed, gaps included
	UncompressedSize int // bytes needed to decode every string
	FreeSize         int // Capacity - UsedSize
	ReclaimableSize  int // gap bytes Vacuumize would release
	CompactSize      int // UsedSize after Vacuumize
}

// Stats computes the current space accounting.
func (b *Block) Stats() Stats {
	n := int(b.header.Length)
	payload := 0
	for i := range n {
		payload += int(b.entry(i).Size)
	}
	used := b.UsedSize()
	compact := b.header.IndexEnd() + payload

	return Stats{
		Length:           n,
		Capacity:         b.Capacity(),
		PrefixSize:       b.PrefixSize(),
		UsedSize:         used,
		UncompressedSize: n*b.PrefixSize() + payload,
		FreeSize:         b.Capacity() - used,
		ReclaimableSize:  used - compact,
		CompactSize:      compact,
	}
}

// Validate runs the bounds checks of Open and additionally verifies that
// the strings are in strictly ascending order.
func (b *Block) Validate() error {
	capacity := int(b.header.Capacity)
	if len(b.data) < capacity {
		return fmt.Errorf("%w: buffer holds %d bytes, capacity is %d", errs.ErrBufferTooSmall, len(b.data), capacity)
	}
	if err := b.checkLayout(); err != nil {
		return err
	}

	for i := 1; i < int(b.header.Length); i++ {
		if b.cfg.compare(b.suffix(i-1), b.suffix(i)) >= 0 {
			return fmt.Errorf("%w: entries %d and %d out of order", errs.ErrCorruptedBlock, i-1, i)
		}
	}

	return nil
}

// checkLayout verifies that every index entry and suffix lies inside the
// used region and that the used region fits the capacity. It assumes
// len(b.data) >= capacity.
func (b *Block) checkLayout() error {
	capacity := int(b.header.Capacity)
	indexEnd := b.header.IndexEnd()
	if indexEnd > capacity {
		return fmt.Errorf("%w: index table ends at %d past capacity %d", errs.ErrCorruptedBlock, indexEnd, capacity)
	}

	used := int(b.sentinel().Offset)
	if used < indexEnd || used > capacity {
		return fmt.Errorf("%w: used size %d not in [%d, %d]", errs.ErrCorruptedBlock, used, indexEnd, capacity)
	}

	for i := range int(b.header.Length) {
		e := b.entry(i)
		if int(e.Offset) < indexEnd || e.End() > used {
			return fmt.Errorf("%w: entry %d spans [%d, %d) outside [%d, %d)",
				errs.ErrCorruptedBlock, i, e.Offset, e.End(), indexEnd, used)
		}
	}

	return nil
}
