package compress

import (
	"fmt"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
)

// Compressor compresses a snapshot payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input slice is not
	// modified; the result may alias it for the passthrough codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a snapshot payload.
type Decompressor interface {
	// Decompress decodes data, which must decompress to exactly size bytes.
	//
	// It returns errs.ErrDecompressedSizeInvalid when the decoded length
	// differs from size, and an error wrapping the codec failure when data
	// is corrupted or was produced by another algorithm.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrInvalidCompressionType, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %s", errs.ErrInvalidCompressionType, compressionType)
}

// checkSize verifies a decoded payload has the expected length.
func checkSize(name string, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, sizeMismatch(name, len(out), size)
	}

	return out, nil
}

func sizeMismatch(name string, got, size int) error {
	return fmt.Errorf("%w: %s produced %d bytes, expected %d", errs.ErrDecompressedSizeInvalid, name, got, size)
}

// decompressEmpty handles an empty input, which is only valid for an empty payload.
func decompressEmpty(name string, size int) ([]byte, error) {
	if size != 0 {
		return nil, fmt.Errorf("%w: %s input is empty, expected %d bytes", errs.ErrDecompressedSizeInvalid, name, size)
	}

	return nil, nil
}
