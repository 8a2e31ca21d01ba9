package pool

import "sync"

// Scratch buffer sizes for snapshot payloads.
const (
	PayloadBufferDefaultSize  = 16 << 10
	PayloadBufferMaxThreshold = 4 << 20
)

// ByteBuffer is scratch space for one encoded payload. Encoders append to B
// directly.
type ByteBuffer struct {
	B []byte
}

func newByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the encoded bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of encoded bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset truncates the buffer for the next payload.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Grow ensures n more bytes can be appended without reallocation. Buffers
// above four default sizes grow by a quarter of their capacity at least.
func (bb *ByteBuffer) Grow(n int) {
	free := cap(bb.B) - len(bb.B)
	if free >= n {
		return
	}

	step := PayloadBufferDefaultSize
	if c := cap(bb.B); c > 4*PayloadBufferDefaultSize {
		step = c / 4
	}

	grown := make([]byte, len(bb.B), len(bb.B)+max(step, n))
	copy(grown, bb.B)
	bb.B = grown
}

// ByteBufferPool recycles ByteBuffers. Buffers whose capacity exceeds limit
// are left to the garbage collector.
type ByteBufferPool struct {
	p     sync.Pool
	limit int
}

// NewByteBufferPool returns a pool whose fresh buffers have capacity size.
// A limit of zero keeps every buffer.
func NewByteBufferPool(size, limit int) *ByteBufferPool {
	bp := &ByteBufferPool{limit: limit}
	bp.p.New = func() any { return newByteBuffer(size) }

	return bp
}

// Get returns an empty buffer.
func (bp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bp.p.Get().(*ByteBuffer)
	return bb
}

// Put recycles bb, which must not be used afterwards.
func (bp *ByteBufferPool) Put(bb *ByteBuffer) {
	switch {
	case bb == nil:
		return
	case bp.limit > 0 && cap(bb.B) > bp.limit:
		return
	}

	bb.Reset()
	bp.p.Put(bb)
}

var payloads = NewByteBufferPool(PayloadBufferDefaultSize, PayloadBufferMaxThreshold)

// GetPayloadBuffer takes a buffer from the shared snapshot payload pool.
func GetPayloadBuffer() *ByteBuffer {
	return payloads.Get()
}

// PutPayloadBuffer gives bb back to the shared snapshot payload pool.
func PutPayloadBuffer(bb *ByteBuffer) {
	payloads.Put(bb)
}
