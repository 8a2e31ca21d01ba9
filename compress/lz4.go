package compress

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/marcozanotti/utilsforecast/errs"
)

// lz4MaxRatio bounds the decoded size a block of a given length can claim.
// One LZ4 length byte expands to at most 255 output bytes.
const lz4MaxRatio = 255

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses payloads as one raw LZ4 block prefixed with the
// uvarint length of the uncompressed data.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as one LZ4 block using a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 0, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	dst = binary.AppendUvarint(dst, uint64(len(data)))
	prefix := len(dst)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:cap(dst)])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// lz4 reports incompressible input with n == 0
		return append(dst, literalBlock(data)...), nil
	}

	return dst[:prefix+n], nil
}

// literalBlock encodes data as a single LZ4 sequence of literals.
func literalBlock(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/255+2)
	if len(data) < 15 {
		out = append(out, byte(len(data))<<4)
	} else {
		out = append(out, 0xf0)
		rest := len(data) - 15
		for ; rest >= 255; rest -= 255 {
			out = append(out, 255)
		}
		out = append(out, byte(rest))
	}

	return append(out, data...)
}

// Decompress decodes a block written by Compress into a buffer of exactly
// the recorded size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, k := binary.Uvarint(data)
	if k <= 0 {
		return nil, fmt.Errorf("%w: lz4 size prefix", errs.ErrMalformedPayload)
	}
	block := data[k:]
	if size > math.MaxInt || size > uint64(len(block))*lz4MaxRatio+lz4MaxRatio {
		return nil, fmt.Errorf("%w: lz4 block of %d bytes claims %d decoded bytes",
			errs.ErrMalformedPayload, len(block), size)
	}

	return uncompressBlock(block, int(size))
}

func uncompressBlock(block []byte, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(block, buf)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("%w: lz4 block decoded to %d bytes, expected %d",
			errs.ErrMalformedPayload, n, size)
	}

	return buf, nil
}
