package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs. It is the pure Go klauspost/compress implementation unless
// the module is built with the gozstd tag and cgo enabled, in which case the
// libzstd bindings from valyala/gozstd are used. Both produce standard zstd
// frames, so snapshots are interchangeable between builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
