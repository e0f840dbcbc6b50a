package block

import (
	"fmt"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/internal/options"
	"github.com/arloliu/frontblock/section"
	"github.com/sirupsen/logrus"
)

// Block is a view over a BlockHeader and the data buffer it describes.
//
// All state lives in the header and the buffer; the Block itself only adds
// the codec configuration. Mutations write through to both.
type Block struct {
	cfg    *Config
	header *section.BlockHeader
	data   []byte
}

// New initializes a block over data. The capacity is len(data), which must
// be in [section.MinCapacity, section.MaxCapacity].
//
// The header is zeroed and the sentinel index entry is written at the start
// of data. The buffer is not copied; the block writes into it directly.
func New(data []byte, opts ...Option) (*Block, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header, err := section.NewBlockHeader(len(data))
	if err != nil {
		return nil, err
	}

	b := &Block{cfg: cfg, header: header, data: data}
	b.setEntry(0, section.IndexEntry{Offset: section.IndexEntrySize})

	return b, nil
}

// Open wraps an existing header and buffer, for example a block loaded from
// storage. data must hold at least header.Capacity bytes and must have been
// written with the same byte order and comparator.
//
// Open rejects a block whose index table or suffixes fall outside the
// capacity with errs.ErrCorruptedBlock. It does not check the ordering
// of the strings; use Validate for that.
func Open(header *section.BlockHeader, data []byte, opts ...Option) (*Block, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	capacity := int(header.Capacity)
	if capacity < section.MinCapacity || capacity > section.MaxCapacity {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
	}
	if len(data) < capacity {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, capacity is %d", errs.ErrBufferTooSmall, len(data), capacity)
	}

	b := &Block{cfg: cfg, header: header, data: data[:capacity]}
	if err := b.checkLayout(); err != nil {
		return nil, err
	}

	return b, nil
}

// Header returns the header the block writes through to.
func (b *Block) Header() *section.BlockHeader {
	return b.header
}

// Data returns the block data buffer.
func (b *Block) Data() []byte {
	return b.data
}

// Config returns the codec configuration.
func (b *Block) Config() *Config {
	return b.cfg
}

// Length returns the number of stored strings.
func (b *Block) Length() int {
	return int(b.header.Length)
}

// Capacity returns the allocated size of the block data buffer.
func (b *Block) Capacity() int {
	return int(b.header.Capacity)
}

// PrefixSize returns the length of the shared prefix.
func (b *Block) PrefixSize() int {
	return int(b.header.PrefixSize)
}

// UsedSize returns the number of buffer bytes consumed, including gaps.
func (b *Block) UsedSize() int {
	return int(b.sentinel().Offset)
}

// FreeSize returns the bytes left between UsedSize and Capacity.
func (b *Block) FreeSize() int {
	return b.Capacity() - b.UsedSize()
}

// UncompressedSize returns the number of bytes needed to decode every string.
func (b *Block) UncompressedSize() int {
	n := int(b.header.Length)
	total := n * int(b.header.PrefixSize)
	for i := range n {
		total += int(b.entry(i).Size)
	}

	return total
}

// Prefix returns the shared prefix. The slice aliases the block buffer and
// must not be modified.
func (b *Block) Prefix() []byte {
	return b.data[:b.header.PrefixSize:b.header.PrefixSize]
}

// entryPos returns the byte offset of index entry i.
func (b *Block) entryPos(i int) int {
	return int(b.header.PrefixSize) + i*section.IndexEntrySize
}

func (b *Block) entry(i int) section.IndexEntry {
	p := b.entryPos(i)
	return section.ReadIndexEntry(b.data[p:p+section.IndexEntrySize], b.cfg.engine)
}

func (b *Block) setEntry(i int, e section.IndexEntry) {
	p := b.entryPos(i)
	e.Put(b.data[p:p+section.IndexEntrySize], b.cfg.engine)
}

// sentinel returns the entry after the last stored string.
func (b *Block) sentinel() section.IndexEntry {
	return b.entry(int(b.header.Length))
}

func (b *Block) suffix(i int) []byte {
	e := b.entry(i)
	return b.data[e.Offset:e.End()]
}

// moveBytes moves data[start:end] to data[dst:]. Ranges may overlap.
func (b *Block) moveBytes(dst, start, end int) {
	copy(b.data[dst:dst+end-start], b.data[start:end])
}

func (b *Block) debug(msg string, fields logrus.Fields) {
	if b.cfg.logger == nil {
		return
	}

	fields["length"] = b.header.Length
	fields["prefix_size"] = b.header.PrefixSize
	fields["used"] = b.UsedSize()
	fields["capacity"] = b.header.Capacity
	b.cfg.logger.WithFields(fields).Debug(msg)
}
