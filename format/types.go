// Package format holds the enumerations stored in snapshot headers.
package format

type (
	// EncodingType identifies how the value payload of a snapshot is encoded.
	EncodingType uint8
	// CompressionType identifies the codec applied to every snapshot payload.
	CompressionType uint8
)

const (
	TypeRaw     EncodingType = 0x1 // TypeRaw stores raw IEEE 754 float64 bits.
	TypeGorilla EncodingType = 0x3 // TypeGorilla stores column-wise Gorilla XOR streams.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeGorilla:
		return "Gorilla"
	default:
		return "Unknown"
	}
}

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

// ParseCompression maps a case-sensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
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

// ParseEncoding maps "raw" or "gorilla" to its EncodingType.
func ParseEncoding(name string) (EncodingType, bool) {
	switch name {
	case "raw", "":
		return TypeRaw, true
	case "gorilla":
		return TypeGorilla, true
	default:
		return 0, false
	}
}
