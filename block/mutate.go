package block

import (
	"fmt"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/section"
	"github.com/sirupsen/logrus"
)

// Insert adds key to the block and returns its sorted position.
//
// It returns errs.ErrAlreadyExists if key is stored, errs.ErrBlockFull if
// UsedSize plus the suffix and one index entry would exceed the capacity or
// the block already holds section.MaxLength strings, and
// errs.ErrNeedsReencode if key does not start with the block prefix. In
// every error case the block is unchanged.
//
// The index table grows by one entry, so every suffix moves four bytes to
// the right; the new suffix is appended at the end of the used region.
func (b *Block) Insert(key []byte) (int, error) {
	pos, found, err := b.locate(key)
	if err != nil {
		return -1, err
	}
	if found {
		return -1, errs.ErrAlreadyExists
	}

	n := int(b.header.Length)
	if n >= section.MaxLength {
		b.debug("insert rejected", logrus.Fields{"reason": "length limit"})
		return -1, fmt.Errorf("%w: length limit %d reached", errs.ErrBlockFull, section.MaxLength)
	}

	prefixSize := int(b.header.PrefixSize)
	suffixSize := len(key) - prefixSize
	used := b.UsedSize()
	if used+suffixSize+section.IndexEntrySize > int(b.header.Capacity) {
		b.debug("insert rejected", logrus.Fields{"reason": "capacity", "suffix_size": suffixSize})
		return -1, errs.ErrBlockFull
	}

	// open a slot at pos; the index tail and the whole payload shift together
	slot := b.entryPos(pos)
	b.moveBytes(slot+section.IndexEntrySize, slot, used)

	for i := 0; i <= n; i++ {
		if i == pos {
			continue
		}
		e := b.entry(i)
		e.Offset += section.IndexEntrySize
		b.setEntry(i, e)
	}

	offset := used + section.IndexEntrySize
	copy(b.data[offset:offset+suffixSize], key[prefixSize:])
	b.setEntry(pos, section.IndexEntry{Offset: uint16(offset), Size: uint16(suffixSize)}) //nolint: gosec
	b.setEntry(n+1, section.IndexEntry{Offset: uint16(offset + suffixSize)})              //nolint: gosec
	b.header.Length++

	return pos, nil
}

// Delete removes key from the block and returns the position it occupied.
//
// The suffix bytes are not released: UsedSize is unchanged and the space is
// only reclaimed by Vacuumize. It returns errs.ErrNotFound if key is not
// stored and errs.ErrNeedsReencode if key does not start with the block
// prefix.
func (b *Block) Delete(key []byte) (int, error) {
	pos, found, err := b.locate(key)
	if err != nil {
		return -1, err
	}
	if !found {
		return -1, errs.ErrNotFound
	}

	// pull the following entries, sentinel included, one slot left
	slot := b.entryPos(pos)
	b.moveBytes(slot, slot+section.IndexEntrySize, b.header.IndexEnd())
	b.header.Length--

	return pos, nil
}
