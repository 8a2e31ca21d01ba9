package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/marcozanotti/utilsforecast/errs"
)

// AppendUvarints appends every value of vals as an unsigned varint.
// Values must be non-negative.
func AppendUvarints(dst []byte, vals []int) []byte {
	for _, v := range vals {
		dst = binary.AppendUvarint(dst, uint64(v)) //nolint:gosec
	}

	return dst
}

// DecodeUvarints reads count unsigned varints from data.
//
// Returns:
//   - []int: Decoded values
//   - int: Number of bytes consumed
//   - error: ErrMalformedPayload if data is truncated
func DecodeUvarints(data []byte, count int) ([]int, int, error) {
	if err := checkCount(data, count, "uvarints"); err != nil {
		return nil, 0, err
	}

	out := make([]int, count)
	offset := 0
	for i := range out {
		v, next, ok := decodeVarint64(data, offset)
		if !ok {
			return nil, 0, fmt.Errorf("%w: uvarint %d of %d at offset %d", errs.ErrMalformedPayload, i, count, offset)
		}
		out[i] = int(v) //nolint:gosec
		offset = next
	}

	return out, offset, nil
}

// decodeVarint64 decodes a uvarint at offset, with a fast path for the one
// and two byte forms that dominate sizes and regular time steps.
func decodeVarint64(data []byte, offset int) (uint64, int, bool) {
	if offset >= len(data) {
		return 0, offset, false
	}

	b0 := data[offset]
	if b0 < 0x80 {
		return uint64(b0), offset + 1, true
	}

	if offset+1 < len(data) && data[offset+1] < 0x80 {
		return uint64(b0&0x7f) | uint64(data[offset+1])<<7, offset + 2, true
	}

	v, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return 0, offset, false
	}

	return v, offset + n, true
}

func encodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63)) //nolint:gosec
}

func decodeZigZag64(v uint64) int64 {
	return int64((v >> 1) ^ -(v & 1)) //nolint:gosec
}

// checkCount rejects counts that cannot fit in data, where every element
// takes at least one byte.
func checkCount(data []byte, count int, what string) error {
	if count < 0 || count > len(data) {
		return fmt.Errorf("%w: %d %s in %d bytes", errs.ErrMalformedPayload, count, what, len(data))
	}

	return nil
}
