//go:build !gozstd

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation overhead.
// The klauspost/compress/zstd decoder operates without allocations after a warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPools pools encoders per speed preset, indexed by zstd.EncoderLevel.
var zstdEncoderPools [zstd.SpeedBestCompression + 1]sync.Pool

func getZstdEncoder(level zstd.EncoderLevel) (*zstd.Encoder, error) {
	if encoder, ok := zstdEncoderPools[level].Get().(*zstd.Encoder); ok {
		return encoder, nil
	}

	return zstd.NewWriter(nil,
		zstd.WithEncoderLevel(level),
		zstd.WithEncoderCRC(false),
		zstd.WithEncoderConcurrency(1),
	)
}

// Compress compresses the input data using Zstandard compression.
// Uses a pooled encoder for the configured speed preset.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	level := zstd.EncoderLevelFromZstd(c.level)

	encoder, err := getZstdEncoder(level)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer zstdEncoderPools[level].Put(encoder)

	// EncodeAll is stateless - safe to use with pooled encoder
	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data holding size bytes.
// Uses a pooled decoder for better performance.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if size == 0 && len(data) == 0 {
		return []byte{}, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// Even if this call fails, the decoder can be reused for next call
	decompressed, err := decoder.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return checkSize("zstd", decompressed, size)
}
