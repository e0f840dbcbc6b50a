package block

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
)

// Find returns the position of key, or errs.ErrNotFound.
// It returns errs.ErrNeedsReencode if key does not start with the block prefix.
func (b *Block) Find(key []byte) (int, error) {
	pos, found, err := b.locate(key)
	if err != nil {
		return -1, err
	}
	if !found {
		return -1, errs.ErrNotFound
	}

	return pos, nil
}

// FindLowerBound returns the position of the first string not less than key,
// which is Length() when every stored string is smaller.
// It returns errs.ErrNeedsReencode if key does not start with the block prefix.
func (b *Block) FindLowerBound(key []byte) (int, error) {
	pos, _, err := b.locate(key)
	if err != nil {
		return -1, err
	}

	return pos, nil
}

// Contains reports whether key is stored in the block.
func (b *Block) Contains(key []byte) bool {
	_, found, err := b.locate(key)
	return err == nil && found
}

// locate returns the lower bound of key and whether the string at that
// position equals key.
func (b *Block) locate(key []byte) (int, bool, error) {
	suffix, err := b.suffixOf(key)
	if err != nil {
		return -1, false, err
	}

	if b.cfg.search == format.SearchBinary {
		pos, found := b.searchBinary(suffix)
		return pos, found, nil
	}

	pos, found := b.searchLinear(suffix)

	return pos, found, nil
}

// suffixOf strips the block prefix from key.
func (b *Block) suffixOf(key []byte) ([]byte, error) {
	prefixSize := int(b.header.PrefixSize)
	if len(key) < prefixSize || !bytes.Equal(key[:prefixSize], b.data[:prefixSize]) {
		return nil, fmt.Errorf("%w: block prefix is %q", errs.ErrNeedsReencode, b.data[:prefixSize])
	}

	return key[prefixSize:], nil
}

func (b *Block) searchLinear(suffix []byte) (int, bool) {
	n := int(b.header.Length)
	for i := range n {
		c := b.cfg.compare(b.suffix(i), suffix)
		if c == 0 {
			return i, true
		}
		if c > 0 {
			return i, false
		}
	}

	return n, false
}

func (b *Block) searchBinary(suffix []byte) (int, bool) {
	n := int(b.header.Length)
	pos := sort.Search(n, func(i int) bool {
		return b.cfg.compare(b.suffix(i), suffix) >= 0
	})

	return pos, pos < n && b.cfg.compare(b.suffix(pos), suffix) == 0
}
