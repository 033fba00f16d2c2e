package compress

import (
	"fmt"

	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
)

// Compressor compresses frame vector payloads.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller (except for the no-op codec, which returns data itself)
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores frame vector payloads.
type Decompressor interface {
	// Decompress decompresses data whose original length is size bytes.
	//
	// Frame vectors always record their element count, so the decompressed size
	// is known up front: implementations allocate exactly size bytes and return
	// an error if the payload decodes to a different length.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the compression identifier recorded in vector headers.
	Type() format.CompressionType
}

// CreateCodec is a factory function that creates a Codec for the given
// compression type and level.
//
// Levels follow each algorithm's own scale; a level of 0 or less selects the
// algorithm's default. Codecs without levels ignore it.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zstd, S2 or LZ4)
//   - level: Compression level
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(level), nil
	case format.CompressionZstd:
		return NewZstdCompressor(level), nil
	case format.CompressionS2:
		return NewS2Compressor(level), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(level), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, uint8(compressionType))
	}
}

// GetDecompressor returns a Decompressor for the compression type recorded in
// a vector header.
func GetDecompressor(compressionType format.CompressionType) (Decompressor, error) {
	return CreateCodec(compressionType, 0)
}

// checkSize verifies that a decompressed payload has the expected length.
func checkSize(name string, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%s decompression produced %d bytes, expected %d", name, len(out), size)
	}

	return out, nil
}
