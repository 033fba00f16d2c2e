package pool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("IGWD"))
	bb.MustWrite([]byte{0, 8})
	require.Equal(t, 6, bb.Len())
	require.Equal(t, []byte{'I', 'G', 'W', 'D', 0, 8}, bb.Bytes())

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, bb.Bytes(), out.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 6)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestByteBuffer_WriteToError(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3})

	_, err := bb.WriteTo(failingWriter{})
	require.EqualError(t, err, "disk full")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("enough capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.MustWrite([]byte{1})
		before := &bb.B[:1][0]

		bb.Grow(32)
		require.Equal(t, 64, cap(bb.B))
		require.Same(t, before, &bb.B[:1][0])
	})

	t.Run("small buffer grows by record size", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.MustWrite([]byte{1, 2, 3})

		bb.Grow(100)
		require.Equal(t, 3+RecordBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte{1, 2, 3}, bb.Bytes())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * RecordBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.ExtendOrGrow(size)

		bb.Grow(1)
		require.Equal(t, size+size/4, cap(bb.B))
		require.Equal(t, size, bb.Len())
	})

	t.Run("request beyond growth step", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(RecordBufferDefaultSize * 3)
		require.Equal(t, RecordBufferDefaultSize*3, cap(bb.B))
	})
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{9, 9})

	// Reserve a record prefix, then fill it in place.
	start := bb.Len()
	bb.ExtendOrGrow(9)
	require.Equal(t, 11, bb.Len())
	for i := range 9 {
		bb.B[start+i] = byte(i)
	}
	require.Equal(t, []byte{9, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8}, bb.Bytes())

	bb.ExtendOrGrow(0)
	require.Equal(t, 11, bb.Len())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("get returns empty buffers", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())
		require.Equal(t, 32, cap(bb.B))

		bb.MustWrite([]byte("frame"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("nil put", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(8, 64)
		bb := p.Get()
		bb.Grow(1024)
		bb.MustWrite([]byte{1})
		require.NotPanics(t, func() { p.Put(bb) })

		require.Equal(t, 1, bb.Len(), "dropped buffers are not reset")
	})
}

func TestSharedPools(t *testing.T) {
	rec := GetRecordBuffer()
	require.Equal(t, 0, rec.Len())
	require.GreaterOrEqual(t, cap(rec.B), RecordBufferDefaultSize)
	rec.MustWrite(make([]byte, 100))
	PutRecordBuffer(rec)

	file := GetFileBuffer()
	require.Equal(t, 0, file.Len())
	require.GreaterOrEqual(t, cap(file.B), FileBufferDefaultSize)
	PutFileBuffer(file)
}
