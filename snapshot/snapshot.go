package snapshot

import (
	"fmt"
	"math"

	"github.com/marcozanotti/utilsforecast/compress"
	"github.com/marcozanotti/utilsforecast/endian"
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/format"
	"github.com/marcozanotti/utilsforecast/grouped"
	"github.com/marcozanotti/utilsforecast/internal/encoding"
	"github.com/marcozanotti/utilsforecast/internal/hash"
	"github.com/marcozanotti/utilsforecast/internal/options"
	"github.com/marcozanotti/utilsforecast/internal/pool"
	"github.com/marcozanotti/utilsforecast/processing"
)

// Panel is a decoded snapshot.
type Panel struct {
	Array *grouped.Array[float64]
	Keys  []string
	// LastTimes is nil when the snapshot was encoded without last times.
	LastTimes []int64
	Index     *grouped.KeyIndex
}

// Encode serializes a ragged array with its group keys and, optionally, the
// last time value of every group.
//
// Parameters:
//   - arr: Array to encode
//   - keys: One unique key per group of arr
//   - last: One value per group, or nil
//   - opts: Compression, value encoding and byte order options
//
// Returns:
//   - []byte: The snapshot
//   - error: ErrDimensionMismatch if keys or last do not match arr's groups,
//     ErrDuplicateKey if keys repeat, ErrInvalidOption for bad options
func Encode(arr *grouped.Array[float64], keys []string, last []int64, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if arr == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrInvalidOption)
	}
	if len(keys) != arr.Len() {
		return nil, fmt.Errorf("%w: %d keys for %d groups", errs.ErrDimensionMismatch, len(keys), arr.Len())
	}
	if last != nil && len(last) != arr.Len() {
		return nil, fmt.Errorf("%w: %d last times for %d groups", errs.ErrDimensionMismatch, len(last), arr.Len())
	}
	if uint64(arr.Len()) > math.MaxUint32 || uint64(arr.Cols()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: array too large for a snapshot", errs.ErrDimensionMismatch)
	}
	if _, err := grouped.NewKeyIndex(keys); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	h := header{
		Compression: cfg.compression,
		Encoding:    cfg.encoding,
		Cols:        uint32(arr.Cols()), //nolint:gosec
		Groups:      uint32(arr.Len()),  //nolint:gosec
		Rows:        uint64(arr.Rows()), //nolint:gosec
	}
	if !endian.IsLittleEndian(cfg.engine) {
		h.Flags |= flagBigEndian
	}
	if last != nil {
		h.Flags |= flagHasLastTimes
	}

	bb := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(bb)

	var payloads [payloadCount][]byte
	for i := range payloads {
		if i == payloadLastTimes && last == nil {
			continue
		}

		bb.Reset()
		switch i {
		case payloadSizes:
			bb.B = encoding.AppendUvarints(bb.B, arr.Sizes())
		case payloadValues:
			bb.Grow(8 * arr.Rows() * arr.Cols())
			bb.B = appendValues(bb.B, arr, cfg)
		case payloadKeys:
			bb.B = encoding.AppendStrings(bb.B, keys)
		case payloadLastTimes:
			bb.B = encoding.AppendDeltaOfDelta(bb.B, last)
		}

		compressed, err := codec.Compress(bb.B)
		if err != nil {
			return nil, fmt.Errorf("compress payload %d: %w", i, err)
		}
		if uint64(len(compressed)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: payload %d exceeds 4GiB", errs.ErrDimensionMismatch, i)
		}
		// the no-op codec aliases bb, which is reused for the next payload
		payloads[i] = append([]byte(nil), compressed...)
		h.Lengths[i] = uint32(len(compressed)) //nolint:gosec
	}

	out := make([]byte, 0, headerSize+h.payloadBytes()+checksumSize)
	out = h.appendTo(out)
	for _, p := range payloads {
		out = append(out, p...)
	}
	out = cfg.engine.AppendUint64(out, hash.Checksum(out))

	return out, nil
}

// EncodeResult serializes a normalized panel, keyed by the string form of
// its ids, with its last time values.
func EncodeResult(res *processing.Result, opts ...Option) ([]byte, error) {
	last, err := res.LastTimeValues()
	if err != nil {
		return nil, err
	}

	return Encode(res.Array, res.Index.Keys(), last, opts...)
}

func appendValues(dst []byte, arr *grouped.Array[float64], cfg *config) []byte {
	if cfg.encoding == format.TypeRaw {
		for _, v := range arr.All() {
			dst = encoding.AppendFloats(dst, v.Values(), cfg.engine)
		}

		return dst
	}

	// gorilla compresses each column as one stream: consecutive rows of a
	// column are far more alike than neighbouring columns of a row
	col, cleanup := pool.GetFloat64Slice(arr.Rows())
	defer cleanup()

	for c := range arr.Cols() {
		r := 0
		for _, v := range arr.All() {
			for j := range v.Len() {
				col[r] = v.At(j, c)
				r++
			}
		}
		dst = encoding.AppendGorilla(dst, col)
	}

	return dst
}

// Decode parses a snapshot produced by Encode.
//
// Returns ErrInvalidSnapshot for truncated or malformed input and
// ErrChecksumMismatch when the content does not match its checksum.
func Decode(data []byte) (*Panel, error) {
	var h header
	if err := h.parse(data); err != nil {
		return nil, err
	}
	if len(data) < headerSize+checksumSize {
		return nil, fmt.Errorf("%w: %d bytes, missing checksum", errs.ErrInvalidSnapshot, len(data))
	}

	engine := h.engine()
	body := data[:len(data)-checksumSize]
	if got, want := hash.Checksum(body), engine.Uint64(data[len(body):]); got != want {
		return nil, fmt.Errorf("%w: computed %016x, stored %016x", errs.ErrChecksumMismatch, got, want)
	}

	if h.payloadBytes() != len(body)-headerSize {
		return nil, fmt.Errorf("%w: payloads need %d bytes, have %d",
			errs.ErrInvalidSnapshot, h.payloadBytes(), len(body)-headerSize)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	cols, groups := int(h.Cols), int(h.Groups)
	if h.Rows > math.MaxInt || (cols > 0 && int(h.Rows) > math.MaxInt/cols) {
		return nil, fmt.Errorf("%w: %d rows x %d cols", errs.ErrInvalidSnapshot, h.Rows, cols)
	}
	rows := int(h.Rows)

	var payloads [payloadCount][]byte
	off := headerSize
	for i, l := range h.Lengths {
		raw, err := codec.Decompress(body[off : off+int(l)])
		if err != nil {
			return nil, fmt.Errorf("%w: payload %d: %w", errs.ErrInvalidSnapshot, i, err)
		}
		payloads[i] = raw
		off += int(l)
	}

	p := &Panel{}

	sizes, _, err := encoding.DecodeUvarints(payloads[payloadSizes], groups)
	if err != nil {
		return nil, wrap("group sizes", err)
	}

	values, err := decodeValues(payloads[payloadValues], rows, cols, h.Encoding, engine)
	if err != nil {
		return nil, wrap("values", err)
	}

	if p.Array, err = grouped.FromSizes(values, cols, sizes); err != nil {
		return nil, wrap("array", err)
	}
	if p.Array.Rows() != rows {
		return nil, fmt.Errorf("%w: group sizes sum to %d rows, header has %d",
			errs.ErrInvalidSnapshot, p.Array.Rows(), rows)
	}

	if p.Keys, _, err = encoding.DecodeStrings(payloads[payloadKeys], groups); err != nil {
		return nil, wrap("keys", err)
	}
	if p.Index, err = grouped.NewKeyIndex(p.Keys); err != nil {
		return nil, wrap("keys", err)
	}

	if h.Flags&flagHasLastTimes != 0 {
		if p.LastTimes, _, err = encoding.DecodeDeltaOfDelta(payloads[payloadLastTimes], groups); err != nil {
			return nil, wrap("last times", err)
		}
	}

	return p, nil
}

func decodeValues(data []byte, rows, cols int, enc format.EncodingType, engine endian.EndianEngine) ([]float64, error) {
	if enc == format.TypeRaw {
		values, _, err := encoding.DecodeFloats(data, rows*cols, engine)
		return values, err
	}

	// every gorilla value takes at least one bit
	if cols > 0 && rows > len(data)*8/cols {
		return nil, fmt.Errorf("%w: %d x %d gorilla values in %d bytes", errs.ErrMalformedPayload, rows, cols, len(data))
	}

	values := make([]float64, rows*cols)
	off := 0
	for c := range cols {
		col, n, err := encoding.DecodeGorilla(data[off:], rows)
		if err != nil {
			return nil, err
		}
		for r, v := range col {
			values[r*cols+c] = v
		}
		off += n
	}

	return values, nil
}

func wrap(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrInvalidSnapshot, what, err)
}
