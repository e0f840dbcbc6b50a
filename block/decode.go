package block

import (
	"fmt"
	"iter"

	"github.com/arloliu/frontblock/errs"
)

// Select decodes the string at position into out and returns its size.
//
// The string is written only if out is large enough, but the required size
// is returned either way, so a caller can size a buffer with one call and
// fill it with a second:
//
//	n, _ := b.Select(pos, out)
//	if n > len(out) {
//	    out = make([]byte, n)
//	    b.Select(pos, out)
//	}
func (b *Block) Select(position int, out []byte) (int, error) {
	if err := b.checkPosition(position); err != nil {
		return 0, err
	}

	e := b.entry(position)
	prefixSize := int(b.header.PrefixSize)
	required := prefixSize + int(e.Size)
	if required <= len(out) {
		copy(out, b.data[:prefixSize])
		copy(out[prefixSize:], b.data[e.Offset:e.End()])
	}

	return required, nil
}

// At returns a newly allocated copy of the string at position.
func (b *Block) At(position int) ([]byte, error) {
	if err := b.checkPosition(position); err != nil {
		return nil, err
	}

	out := make([]byte, int(b.header.PrefixSize)+int(b.entry(position).Size))
	_, _ = b.Select(position, out)

	return out, nil
}

// Uncompress decodes every string, in sorted order, contiguously into out.
// dst[i] is set to the i-th string as a sub-slice of out.
//
// dst must hold at least Length() slots and out at least UncompressedSize()
// bytes, otherwise errs.ErrBufferTooSmall is returned and nothing is written.
func (b *Block) Uncompress(dst [][]byte, out []byte) error {
	n := int(b.header.Length)
	if len(dst) < n {
		return fmt.Errorf("%w: %d descriptors for %d strings", errs.ErrBufferTooSmall, len(dst), n)
	}
	if total := b.UncompressedSize(); len(out) < total {
		return fmt.Errorf("%w: %d bytes, need %d", errs.ErrBufferTooSmall, len(out), total)
	}

	prefix := b.Prefix()
	cursor := 0
	for i := range n {
		e := b.entry(i)
		size := len(prefix) + int(e.Size)
		copy(out[cursor:], prefix)
		copy(out[cursor+len(prefix):], b.data[e.Offset:e.End()])
		dst[i] = out[cursor : cursor+size : cursor+size]
		cursor += size
	}

	return nil
}

// Keys returns every stored string in sorted order. The strings share one
// freshly allocated backing array.
func (b *Block) Keys() [][]byte {
	dst := make([][]byte, b.header.Length)
	out := make([]byte, b.UncompressedSize())
	_ = b.Uncompress(dst, out)

	return dst
}

// All returns an iterator over positions and decoded strings in sorted
// order. Each yielded string is a fresh copy. The block must not be
// modified during iteration.
func (b *Block) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i := range int(b.header.Length) {
			key, _ := b.At(i)
			if !yield(i, key) {
				return
			}
		}
	}
}

func (b *Block) checkPosition(position int) error {
	if position < 0 || position >= int(b.header.Length) {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrInvalidPosition, position, b.header.Length)
	}

	return nil
}
