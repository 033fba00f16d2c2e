package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/gwf/format"
	"github.com/klauspost/compress/gzip"
)

// gzipWriterPools pools gzip writers per compression level (index 0 holds the default level).
var gzipWriterPools [gzip.BestCompression + 1]sync.Pool

// GzipCompressor provides gzip compression, the frame format's native codec.
//
// Levels 1 (fastest) to 9 (best) are honoured; 0 or less selects the
// library default. This is the codec written by default, at level 6.
type GzipCompressor struct {
	level int
}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a gzip compressor at the given level.
//
// Parameters:
//   - level: 1-9, or 0 for the default; values above 9 are clamped
//
// Returns:
//   - GzipCompressor: New gzip compressor instance
func NewGzipCompressor(level int) GzipCompressor {
	if level < 0 {
		level = 0
	}
	if level > gzip.BestCompression {
		level = gzip.BestCompression
	}

	return GzipCompressor{level: level}
}

// Type returns format.CompressionGzip.
func (c GzipCompressor) Type() format.CompressionType {
	return format.CompressionGzip
}

// Level returns the configured level, 0 meaning the library default.
func (c GzipCompressor) Level() int {
	return c.level
}

func (c GzipCompressor) getWriter(dst io.Writer) (*gzip.Writer, error) {
	if w, ok := gzipWriterPools[c.level].Get().(*gzip.Writer); ok {
		w.Reset(dst)
		return w, nil
	}

	level := c.level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	return gzip.NewWriterLevel(dst, level)
}

// Compress compresses the input data into a gzip member.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w, err := c.getWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	defer gzipWriterPools[c.level].Put(w)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a gzip member holding size bytes.
func (c GzipCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if size == 0 && len(data) == 0 {
		return []byte{}, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	defer r.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	// The member must end exactly here.
	var probe [1]byte
	n, err := r.Read(probe[:])
	if n != 0 {
		return nil, fmt.Errorf("gzip decompression produced more than %d bytes", size)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	return out, nil
}
