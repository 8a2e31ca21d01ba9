package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/marcozanotti/utilsforecast/errs"
)

// AppendGorilla appends vals compressed with the Gorilla XOR scheme
// (https://www.vldb.org/pvldb/vol8/p1816-teller.pdf):
//
//   - first value: 64 raw bits
//   - unchanged value: control bit 0
//   - changed value inside the previous meaningful block: bits 10 + block
//   - otherwise: bits 11 + 5 bit leading zeros + 6 bit block size - 1 + block
//
// The bit stream is padded to a whole byte.
func AppendGorilla(dst []byte, vals []float64) []byte {
	if len(vals) == 0 {
		return dst
	}

	w := bitWriter{buf: dst}
	prev := math.Float64bits(vals[0])
	w.writeBits(prev, 64)

	prevLeading, prevTrailing := -1, 0
	for _, v := range vals[1:] {
		cur := math.Float64bits(v)
		xor := cur ^ prev
		prev = cur

		if xor == 0 {
			w.writeBits(0, 1)
			continue
		}

		leading := min(bits.LeadingZeros64(xor), 31)
		trailing := bits.TrailingZeros64(xor)

		if prevLeading >= 0 && leading >= prevLeading && trailing >= prevTrailing {
			w.writeBits(0b10, 2)
			w.writeBits(xor>>prevTrailing, 64-prevLeading-prevTrailing)

			continue
		}

		size := 64 - leading - trailing
		w.writeBits(0b11, 2)
		w.writeBits(uint64(leading), 5)
		w.writeBits(uint64(size-1), 6)
		w.writeBits(xor>>trailing, size)
		prevLeading, prevTrailing = leading, trailing
	}

	return w.flush()
}

// DecodeGorilla reads count values written by AppendGorilla and returns them
// with the number of bytes consumed.
func DecodeGorilla(data []byte, count int) ([]float64, int, error) {
	if count == 0 {
		return []float64{}, 0, nil
	}
	if count < 0 || len(data) < 8 || count > len(data)*8-63 {
		return nil, 0, fmt.Errorf("%w: %d gorilla values in %d bytes", errs.ErrMalformedPayload, count, len(data))
	}

	r := bitReader{data: data}
	out := make([]float64, count)

	prev, _ := r.readBits(64)
	out[0] = math.Float64frombits(prev)

	leading, trailing := 0, 0
	for i := 1; i < count; i++ {
		ctrl, ok := r.readBits(1)
		if !ok {
			return nil, 0, truncated(i, count)
		}
		if ctrl == 0 {
			out[i] = math.Float64frombits(prev)
			continue
		}

		reuse, ok := r.readBits(1)
		if !ok {
			return nil, 0, truncated(i, count)
		}
		if reuse == 1 {
			l, ok1 := r.readBits(5)
			s, ok2 := r.readBits(6)
			if !ok1 || !ok2 {
				return nil, 0, truncated(i, count)
			}
			leading = int(l)
			trailing = 64 - leading - int(s) - 1
			if trailing < 0 {
				return nil, 0, fmt.Errorf("%w: gorilla block of value %d overflows 64 bits", errs.ErrMalformedPayload, i)
			}
		}

		block, ok := r.readBits(64 - leading - trailing)
		if !ok {
			return nil, 0, truncated(i, count)
		}
		prev ^= block << trailing
		out[i] = math.Float64frombits(prev)
	}

	return out, (r.pos + 7) / 8, nil
}

func truncated(i, count int) error {
	return fmt.Errorf("%w: gorilla stream ends at value %d of %d", errs.ErrMalformedPayload, i, count)
}

// bitWriter accumulates bits MSB first and appends them to buf in 8 byte words.
type bitWriter struct {
	buf []byte
	acc uint64
	n   int
}

func (w *bitWriter) writeBits(v uint64, nbits int) {
	if nbits < 64 {
		v &= 1<<nbits - 1
	}

	for nbits > 0 {
		free := 64 - w.n
		if nbits <= free {
			w.acc = w.acc<<nbits | v
			w.n += nbits
			nbits = 0
		} else {
			rest := nbits - free
			w.acc = w.acc<<free | v>>rest
			w.n = 64
			v &= 1<<rest - 1
			nbits = rest
		}

		if w.n == 64 {
			w.buf = binary.BigEndian.AppendUint64(w.buf, w.acc)
			w.acc, w.n = 0, 0
		}
	}
}

func (w *bitWriter) flush() []byte {
	if w.n > 0 {
		aligned := w.acc << (64 - w.n)
		for i := range (w.n + 7) / 8 {
			w.buf = append(w.buf, byte(aligned>>(56-8*i)))
		}
		w.acc, w.n = 0, 0
	}

	return w.buf
}

type bitReader struct {
	data []byte
	pos  int
}

func (r *bitReader) readBits(nbits int) (uint64, bool) {
	if r.pos+nbits > len(r.data)*8 {
		return 0, false
	}

	var v uint64
	for nbits > 0 {
		off := r.pos & 7
		avail := 8 - off
		take := min(avail, nbits)
		b := uint64(r.data[r.pos>>3]>>(avail-take)) & (1<<take - 1)
		v = v<<take | b
		r.pos += take
		nbits -= take
	}

	return v, true
}
