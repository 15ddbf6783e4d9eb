// Package pool provides pooled scratch buffers for the hot paths in the
// HQS codec and the HNF writer, adapted from the teacher's blob-buffer
// pool: a thin growable []byte wrapper backed by sync.Pool so repeated
// super-block encodes and header/block-table writes don't allocate on
// every call.
package pool

import "sync"

// Buffer default/threshold sizes.
//
//   - RecordBufferDefaultSize / RecordBufferMaxThreshold size the pool
//     HQS uses to assemble one tensor's worth of super-block records.
//   - BlockBufferDefaultSize / BlockBufferMaxThreshold size the pool
//     the HNF writer uses to stage the header and block-table prefix
//     in Create and Finalize before writing it to the output file.
const (
	RecordBufferDefaultSize  = 1024 * 64  // 64KiB, a few hundred HQ5K super-blocks
	RecordBufferMaxThreshold = 1024 * 1024 * 4
	BlockBufferDefaultSize   = 1024 * 256
	BlockBufferMaxThreshold  = 1024 * 1024 * 16
)

// ByteBuffer is a growable byte slice wrapper meant to be reused across
// calls via a ByteBufferPool instead of being reallocated each time.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the buffer's current contents.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes currently in the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// ExtendOrGrow extends the buffer by n bytes, growing the backing array
// first if there isn't enough spare capacity, and returns the full
// extended slice.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	needed := start + n
	if needed > cap(bb.B) {
		bb.grow(needed)
	}
	bb.B = bb.B[:needed]

	return bb.B
}

func (bb *ByteBuffer) grow(needed int) {
	growBy := needed - cap(bb.B)
	if cap(bb.B) > 0 && growBy < cap(bb.B)/4 {
		growBy = cap(bb.B) / 4
	}
	newBuf := make([]byte, len(bb.B), cap(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers of a given default size, discarding
// buffers that have grown past maxThreshold instead of returning them
// to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize
// and are discarded, rather than retained, once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool, allocating one if empty.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	recordPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
	blockPool  = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)
)

// GetRecordBuffer retrieves a ByteBuffer from the default HQS record pool.
func GetRecordBuffer() *ByteBuffer { return recordPool.Get() }

// PutRecordBuffer returns a ByteBuffer to the default HQS record pool.
func PutRecordBuffer(bb *ByteBuffer) { recordPool.Put(bb) }

// GetBlockBuffer retrieves a ByteBuffer from the default HNF block pool.
func GetBlockBuffer() *ByteBuffer { return blockPool.Get() }

// PutBlockBuffer returns a ByteBuffer to the default HNF block pool.
func PutBlockBuffer(bb *ByteBuffer) { blockPool.Put(bb) }
