package compress

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself after checking its length.
// The result shares memory with the input.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return decompressEmpty("none", size)
	}

	return checkSize("none", data, size)
}
