package snapshot

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/arloliu/frontblock/block"
	"github.com/arloliu/frontblock/compress"
	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
	"github.com/arloliu/frontblock/internal/hash"
	"github.com/arloliu/frontblock/internal/options"
	"github.com/arloliu/frontblock/internal/pool"
	"github.com/arloliu/frontblock/section"
)

// Encode serializes b into a new snapshot image.
func Encode(b *block.Block, opts ...EncodeOption) ([]byte, error) {
	cfg := &encodeConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.compact && b.Stats().ReclaimableSize > 0 {
		compacted, err := compactCopy(b)
		if err != nil {
			return nil, err
		}
		b = compacted
	}

	codec, err := compress.CreateCodec(cfg.compression, "snapshot")
	if err != nil {
		return nil, err
	}

	raw := b.Data()[:b.UsedSize()]
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot payload: %w", err)
	}

	header := section.SnapshotHeader{
		Flag:        section.NewSnapshotFlag(),
		Block:       *b.Header(),
		RawSize:     uint32(len(raw)),     //nolint: gosec
		PayloadSize: uint32(len(payload)), //nolint: gosec
		Checksum:    hash.Checksum(raw),
	}
	header.Flag.SetCompression(cfg.compression)
	if endian.IsBigEndian(b.Config().Engine()) {
		header.Flag.WithBigEndian()
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	_, _ = buf.Write(header.Bytes())
	_, _ = buf.Write(payload)

	return buf.Clone(), nil
}

// DecodeHeader parses and validates the header of a snapshot image without
// touching the payload.
func DecodeHeader(img []byte) (section.SnapshotHeader, error) {
	var header section.SnapshotHeader
	if err := header.Parse(img); err != nil {
		return section.SnapshotHeader{}, err
	}

	capacity := int(header.Block.Capacity)
	if capacity < section.MinCapacity || capacity > section.MaxCapacity {
		return section.SnapshotHeader{}, fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
	}
	if int(header.RawSize) < header.Block.IndexEnd() || int(header.RawSize) > capacity {
		return section.SnapshotHeader{}, fmt.Errorf("%w: raw size %d not in [%d, %d]",
			errs.ErrCorruptedBlock, header.RawSize, header.Block.IndexEnd(), capacity)
	}
	if len(img)-section.SnapshotHeaderSize < int(header.PayloadSize) {
		return section.SnapshotHeader{}, fmt.Errorf("%w: payload needs %d bytes, image has %d",
			errs.ErrInvalidSnapshotSize, header.PayloadSize, len(img)-section.SnapshotHeaderSize)
	}

	return header, nil
}

// Decode restores a block from a snapshot image into a newly allocated
// buffer of the original capacity.
//
// opts configure the restored block; the byte order always comes from the
// image. The comparator must match the one the block was built with, since
// the restored block is validated before it is returned.
func Decode(img []byte, opts ...block.Option) (*block.Block, error) {
	header, err := DecodeHeader(img)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Flag.GetCompression())
	if err != nil {
		return nil, err
	}

	payload := img[section.SnapshotHeaderSize : section.SnapshotHeaderSize+int(header.PayloadSize)]
	raw, err := codec.Decompress(payload, int(header.RawSize))
	if err != nil {
		return nil, err
	}

	if !hash.Verify(raw, header.Checksum) {
		return nil, fmt.Errorf("%w: stored %#016x", errs.ErrChecksumMismatch, header.Checksum)
	}

	data := make([]byte, header.Block.Capacity)
	copy(data, raw)

	blockHeader := header.Block
	opts = append(slices.Clip(opts), block.WithEndianEngine(header.GetEndianEngine()))
	b, err := block.Open(&blockHeader, data, opts...)
	if err != nil {
		return nil, err
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// compactCopy returns a vacuumized copy of b with the same configuration.
func compactCopy(b *block.Block) (*block.Block, error) {
	header := *b.Header()
	c, err := block.Open(&header, bytes.Clone(b.Data()), b.Config().Options()...)
	if err != nil {
		return nil, err
	}
	c.Vacuumize()

	return c, nil
}
