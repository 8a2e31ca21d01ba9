package encoding

import (
	"fmt"

	"github.com/marcozanotti/utilsforecast/errs"
)

// AppendDeltaOfDelta appends vals as zigzag varints: the first value, then
// the first delta, then the change of every following delta.
//
// Regularly spaced values (daily or monthly last times of aligned series)
// cost one byte each after the first two.
func AppendDeltaOfDelta(dst []byte, vals []int64) []byte {
	var prev, prevDelta int64
	for i, v := range vals {
		switch i {
		case 0:
			dst = appendZigZag(dst, v)
		case 1:
			prevDelta = v - prev
			dst = appendZigZag(dst, prevDelta)
		default:
			delta := v - prev
			dst = appendZigZag(dst, delta-prevDelta)
			prevDelta = delta
		}
		prev = v
	}

	return dst
}

// DecodeDeltaOfDelta reads count values written by AppendDeltaOfDelta and
// returns them with the number of bytes consumed.
func DecodeDeltaOfDelta(data []byte, count int) ([]int64, int, error) {
	if err := checkCount(data, count, "delta values"); err != nil {
		return nil, 0, err
	}

	out := make([]int64, count)
	offset := 0

	var cur, delta int64
	for i := range out {
		u, next, ok := decodeVarint64(data, offset)
		if !ok {
			return nil, 0, fmt.Errorf("%w: delta value %d of %d at offset %d", errs.ErrMalformedPayload, i, count, offset)
		}
		offset = next

		z := decodeZigZag64(u)
		switch i {
		case 0:
			cur = z
		case 1:
			delta = z
			cur += delta
		default:
			delta += z
			cur += delta
		}
		out[i] = cur
	}

	return out, offset, nil
}

func appendZigZag(dst []byte, v int64) []byte {
	u := encodeZigZag64(v)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}

	return append(dst, byte(u))
}
