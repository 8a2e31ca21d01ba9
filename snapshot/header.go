package snapshot

import (
	"fmt"

	"github.com/marcozanotti/utilsforecast/endian"
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/format"
)

const (
	magic        = "UFSN"
	version      = 1
	headerSize   = 40
	checksumSize = 8

	flagBigEndian    = 1 << 0
	flagHasLastTimes = 1 << 1
)

const (
	payloadSizes = iota
	payloadValues
	payloadKeys
	payloadLastTimes
	payloadCount
)

// header is the fixed-size section at the start of a snapshot.
//
//	0-3    magic "UFSN"
//	4      version
//	5      flags
//	6      compression type
//	7      value encoding type
//	8-11   value columns
//	12-15  groups
//	16-23  rows
//	24-39  compressed payload lengths: sizes, values, keys, last times
//
// Multi-byte fields use the byte order selected by flagBigEndian.
type header struct {
	Flags       uint8
	Compression format.CompressionType
	Encoding    format.EncodingType
	Cols        uint32
	Groups      uint32
	Rows        uint64
	Lengths     [payloadCount]uint32
}

func (h *header) engine() endian.EndianEngine {
	if h.Flags&flagBigEndian != 0 {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// appendTo serializes the header onto dst.
func (h *header) appendTo(dst []byte) []byte {
	engine := h.engine()

	dst = append(dst, magic...)
	dst = append(dst, version, h.Flags, byte(h.Compression), byte(h.Encoding))
	dst = engine.AppendUint32(dst, h.Cols)
	dst = engine.AppendUint32(dst, h.Groups)
	dst = engine.AppendUint64(dst, h.Rows)
	for _, l := range h.Lengths {
		dst = engine.AppendUint32(dst, l)
	}

	return dst
}

// parse reads the header from the first headerSize bytes of data.
func (h *header) parse(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrInvalidSnapshot, len(data), headerSize)
	}
	if string(data[0:4]) != magic {
		return fmt.Errorf("%w: bad magic %q", errs.ErrInvalidSnapshot, data[0:4])
	}
	if data[4] != version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, data[4])
	}

	h.Flags = data[5]
	h.Compression = format.CompressionType(data[6])
	h.Encoding = format.EncodingType(data[7])

	engine := h.engine()
	h.Cols = engine.Uint32(data[8:12])
	h.Groups = engine.Uint32(data[12:16])
	h.Rows = engine.Uint64(data[16:24])
	for i := range h.Lengths {
		off := 24 + 4*i
		h.Lengths[i] = engine.Uint32(data[off : off+4])
	}

	switch h.Encoding {
	case format.TypeRaw, format.TypeGorilla:
	default:
		return fmt.Errorf("%w: unknown value encoding %d", errs.ErrInvalidSnapshot, data[7])
	}

	return nil
}

func (h *header) payloadBytes() int {
	total := 0
	for _, l := range h.Lengths {
		total += int(l)
	}

	return total
}
