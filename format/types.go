package format

type (
	CompressionType uint8
	SearchMode      uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores snapshot payloads as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

const (
	SearchLinear SearchMode = 0x1 // SearchLinear scans index entries in sorted order.
	SearchBinary SearchMode = 0x2 // SearchBinary bisects the sorted index table.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-sensitive lowercase name ("none", "zstd",
// "s2", "lz4") to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (m SearchMode) String() string {
	switch m {
	case SearchLinear:
		return "Linear"
	case SearchBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}
