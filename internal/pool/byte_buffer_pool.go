// Package pool provides pooled byte buffers for assembling encoded frame
// files.
package pool

import (
	"io"
	"sync"
)

// Default sizes of the pooled buffers. Record buffers hold one vector payload
// while its byte order is swapped; file buffers hold a whole encoded file.
const (
	RecordBufferDefaultSize  = 1024 * 16       // 16KiB
	RecordBufferMaxThreshold = 1024 * 1024     // 1MiB
	FileBufferDefaultSize    = 1024 * 1024     // 1MiB
	FileBufferMaxThreshold   = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable byte slice. Encoders append to B directly.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with the given capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffer contents.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of bytes written.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer, keeping its memory.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
// The new bytes are not zeroed when existing capacity is reused, so callers
// must overwrite all of them.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures room for n more bytes without reallocating.
//
// Small buffers grow by RecordBufferDefaultSize; buffers past four times that
// grow by a quarter of their capacity, since whole-file buffers would
// otherwise reallocate once per vector.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := RecordBufferDefaultSize
	if cap(bb.B) > 4*RecordBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, n)

	b := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(b, bb.B)
	bb.B = b
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers. Buffers that grew past maxThreshold are
// dropped on Put rather than kept alive by the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial size.
// A maxThreshold of 0 keeps every buffer.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	recordPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
	filePool   = NewByteBufferPool(FileBufferDefaultSize, FileBufferMaxThreshold)
)

// GetRecordBuffer returns a buffer from the shared record pool.
func GetRecordBuffer() *ByteBuffer { return recordPool.Get() }

// PutRecordBuffer returns a buffer to the shared record pool.
func PutRecordBuffer(bb *ByteBuffer) { recordPool.Put(bb) }

// GetFileBuffer returns a buffer from the shared file pool.
func GetFileBuffer() *ByteBuffer { return filePool.Get() }

// PutFileBuffer returns a buffer to the shared file pool.
func PutFileBuffer(bb *ByteBuffer) { filePool.Put(bb) }
