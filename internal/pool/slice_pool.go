package pool

import "sync"

// PlacedEntry is an index entry tagged with its position in the index table.
// Vacuum sorts these by physical offset.
type PlacedEntry struct {
	Offset   uint16
	Size     uint16
	Position int
}

var placedEntrySlicePool = sync.Pool{
	New: func() any {
		s := make([]PlacedEntry, 0, 256)
		return &s
	},
}

// GetPlacedEntrySlice retrieves a PlacedEntry slice of length size from the pool.
// The caller must call the returned cleanup function when done with the slice.
//
//	scratch, cleanup := pool.GetPlacedEntrySlice(n)
//	defer cleanup()
func GetPlacedEntrySlice(size int) ([]PlacedEntry, func()) {
	ptr, _ := placedEntrySlicePool.Get().(*[]PlacedEntry)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]PlacedEntry, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { placedEntrySlicePool.Put(ptr) }
}
