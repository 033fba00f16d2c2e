package compress

import (
	"fmt"

	"github.com/arloliu/gwf/format"
	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression.
//
// Levels 1-3 use the default encoder, 4-6 the "better" encoder and 7 or more
// the "best" encoder. Decoding does not depend on the level.
type S2Compressor struct {
	level int
}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor at the given level.
func NewS2Compressor(level int) S2Compressor {
	return S2Compressor{level: level}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch {
	case c.level >= 7:
		return s2.EncodeBest(nil, data), nil
	case c.level >= 4:
		return s2.EncodeBetter(nil, data), nil
	default:
		return s2.Encode(nil, data), nil
	}
}

// Decompress decompresses an S2 block holding size bytes.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if size == 0 && len(data) == 0 {
		return []byte{}, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("s2 decompression produced %d bytes, expected %d", n, size)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return checkSize("s2", out, size)
}
