package compress

import "github.com/arloliu/gwf/format"

// ZstdCompressor provides Zstandard compression for frame vectors.
//
// This compressor trades compression speed for ratio, which suits archival
// frame files that are written once and read many times.
//
// The level follows the zstd command line scale (1-22); 0 or less selects
// the default (3). The pure Go implementation maps it onto its four speed
// presets; building with the gozstd tag uses the reference C library.
type ZstdCompressor struct {
	level int
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor at the given level.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor(9)
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor(level int) ZstdCompressor {
	if level <= 0 {
		level = defaultZstdLevel
	}

	return ZstdCompressor{level: level}
}

const defaultZstdLevel = 3

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}

// Level returns the configured zstd level.
func (c ZstdCompressor) Level() int {
	return c.level
}
