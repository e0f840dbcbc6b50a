package snapshot

import (
	"fmt"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
	"github.com/arloliu/frontblock/internal/options"
)

type encodeConfig struct {
	compression format.CompressionType
	compact     bool
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*encodeConfig]

// WithCompression sets the payload codec. The default is format.CompressionNone.
func WithCompression(compression format.CompressionType) EncodeOption {
	return options.New(func(c *encodeConfig) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionType, compression)
		}
	})
}

// WithCompact encodes a vacuumized copy of the block, dropping gap bytes
// from the image. The block itself is not modified.
func WithCompact(enabled bool) EncodeOption {
	return options.NoError(func(c *encodeConfig) {
		c.compact = enabled
	})
}
