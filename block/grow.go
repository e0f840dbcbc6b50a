package block

import (
	"bytes"

	"github.com/sirupsen/logrus"
)

// GrowPrefix extends the shared prefix by the leading bytes that every
// stored suffix has in common and returns the number of bytes absorbed.
// It returns 0 when there is nothing to absorb, including for an empty block.
//
// Only the index table moves. The absorbed bytes stay in the payload as
// dead space, so UsedSize does not change; call Vacuumize to reclaim them.
//
// The index table can move right by g bytes without touching live data:
// every suffix starts at or after the end of the index table and is at
// least g bytes long, so the g bytes after the table are either unused or
// the absorbed head of some suffix.
func (b *Block) GrowPrefix() int {
	n := int(b.header.Length)
	if n == 0 {
		return 0
	}

	first := b.suffix(0)
	grow := 0

scan:
	for grow < len(first) {
		ch := first[grow]
		for i := 1; i < n; i++ {
			s := b.suffix(i)
			if len(s) <= grow || s[grow] != ch {
				break scan
			}
		}
		grow++
	}

	if grow == 0 {
		return 0
	}

	absorbed := bytes.Clone(first[:grow])
	prefixSize := int(b.header.PrefixSize)
	b.moveBytes(prefixSize+grow, prefixSize, b.header.IndexEnd())
	copy(b.data[prefixSize:prefixSize+grow], absorbed)
	b.header.PrefixSize += uint16(grow) //nolint: gosec

	for i := range n {
		e := b.entry(i)
		e.Offset += uint16(grow) //nolint: gosec
		e.Size -= uint16(grow)   //nolint: gosec
		b.setEntry(i, e)
	}

	b.debug("grew prefix", logrus.Fields{"grow": grow, "dead_bytes": grow * n})

	return grow
}
