package block

import (
	"cmp"
	"slices"

	"github.com/arloliu/frontblock/internal/pool"
	"github.com/arloliu/frontblock/section"
	"github.com/sirupsen/logrus"
)

// Vacuumize removes all gaps from the payload region.
//
// Suffixes are packed back-to-back right after the index table, keeping
// their relative physical order, and the sentinel is moved to the new end
// of the used region. Length, prefix and sort order are unchanged.
// Vacuumize is idempotent.
func (b *Block) Vacuumize() {
	n := int(b.header.Length)
	before := b.UsedSize()

	placed, cleanup := pool.GetPlacedEntrySlice(n)
	defer cleanup()

	ordered := true
	last := uint16(0)
	for i := range n {
		e := b.entry(i)
		placed[i] = pool.PlacedEntry{Offset: e.Offset, Size: e.Size, Position: i}
		if e.Offset < last {
			ordered = false
		}
		last = e.Offset
	}

	// move in physical order so no suffix is overwritten before it moves
	if !ordered {
		slices.SortStableFunc(placed, func(x, y pool.PlacedEntry) int {
			return cmp.Compare(x.Offset, y.Offset)
		})
	}

	cursor := b.header.IndexEnd()
	for _, pe := range placed {
		if int(pe.Offset) != cursor {
			b.moveBytes(cursor, int(pe.Offset), int(pe.Offset)+int(pe.Size))
			b.setEntry(pe.Position, section.IndexEntry{Offset: uint16(cursor), Size: pe.Size}) //nolint: gosec
		}
		cursor += int(pe.Size)
	}
	b.setEntry(n, section.IndexEntry{Offset: uint16(cursor)}) //nolint: gosec

	if reclaimed := before - cursor; reclaimed > 0 {
		b.debug("vacuumized block", logrus.Fields{"reclaimed": reclaimed})
	}
}
