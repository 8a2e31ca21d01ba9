package encoding

import (
	"fmt"
	"math"

	"github.com/marcozanotti/utilsforecast/endian"
	"github.com/marcozanotti/utilsforecast/errs"
)

// AppendFloats appends the IEEE 754 bits of vals, eight bytes each, in the
// byte order of engine.
func AppendFloats(dst []byte, vals []float64, engine endian.EndianEngine) []byte {
	dst = growBytes(dst, 8*len(vals))
	for _, v := range vals {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// DecodeFloats reads count values written by AppendFloats with the same engine.
func DecodeFloats(data []byte, count int, engine endian.EndianEngine) ([]float64, int, error) {
	if count < 0 || count > len(data)/8 {
		return nil, 0, fmt.Errorf("%w: %d floats in %d bytes", errs.ErrMalformedPayload, count, len(data))
	}
	need := 8 * count

	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(engine.Uint64(data[8*i:]))
	}

	return out, need, nil
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}

	out := make([]byte, len(b), len(b)+n)
	copy(out, b)

	return out
}
