// Package compress provides the codecs used to compress block snapshots.
//
// A snapshot payload is the used region of a single block, so inputs are
// small (at most 64 KiB) and the decompressed size is always known ahead of
// time from the snapshot header. Decompressors take that size and reject
// output of any other length, which bounds memory use on corrupted input.
//
// # Supported Algorithms
//
//   - None: passthrough, the payload is stored as-is
//   - Zstd: best ratio, pure Go (klauspost/compress) by default or cgo
//     (valyala/gozstd) with the gozstd build tag
//   - S2: fast Snappy-compatible compression (klauspost/compress)
//   - LZ4: fast block compression (pierrec/lz4)
//
// Index tables and repetitive suffixes compress well; a vacuumized block
// with many short keys typically shrinks by 2-4x with Zstd.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(raw)
//	...
//	raw, err = codec.Decompress(packed, len(raw))
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and decoders and
// are safe for concurrent use.
package compress
