// Package compress provides compression and decompression codecs for frame
// vector payloads.
//
// Every vector in a frame file records the codec that compressed its data and
// the number of elements it holds, so decompression always knows the exact
// output size up front. The codecs use that to allocate a single destination
// buffer and to reject payloads that decode to a different length.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte, size int) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	    Type() format.CompressionType
//	}
//
// # Supported Algorithms
//
// **None** (format.CompressionNone) stores data as is. Compress and Decompress
// return the input slice without copying.
//
// **Gzip** (format.CompressionGzip) is the frame format's native codec and the
// one written by default, at level 6 (format.DefaultCompressionLevel). Levels
// 1 to 9 trade speed for ratio.
//
//	codec, _ := compress.CreateCodec(format.CompressionGzip, 6)
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed, len(data))
//
// **Zstd** (format.CompressionZstd) gives the best ratio for archival frames.
// Levels follow the zstd command line scale. The default build uses the pure
// Go encoder from klauspost/compress; building with the gozstd tag switches to
// the reference C library through valyala/gozstd.
//
// **S2** (format.CompressionS2) is a fast Snappy-compatible codec. Levels up to
// 3 use the default encoder, 4 to 6 the better encoder and 7 or more the best.
//
// **LZ4** (format.CompressionLZ4) has the fastest decompression. Level 0 uses
// the fast compressor and levels 1 to 9 the high compression one.
//
// # Thread Safety
//
// All codecs are safe for concurrent use. Encoders and decoders with internal
// state are pooled per level.
//
// # Error Handling
//
// Decompression fails on corrupted data, on an unknown codec identifier
// (errs.ErrInvalidCompression) and when the decoded length differs from the
// size recorded in the vector header.
package compress
