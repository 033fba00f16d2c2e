package stream

import (
	"fmt"

	"github.com/arloliu/gwf/endian"
	"github.com/arloliu/gwf/errs"
)

// Trailer is the fixed-size block at the end of a frame file.
type Trailer struct {
	NFrames     uint32 // byte offset 0-3, 4-7 reserved
	FileSize    uint64 // byte offset 8-15
	TOCPosition uint64 // byte offset 16-23
	// Checksum is the xxHash64 of every byte before the trailer.
	Checksum uint64 // byte offset 24-31
}

// Bytes serializes the trailer in the given byte order.
func (t Trailer) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, TrailerSize)
	engine.PutUint32(b[0:4], t.NFrames)
	engine.PutUint64(b[8:16], t.FileSize)
	engine.PutUint64(b[16:24], t.TOCPosition)
	engine.PutUint64(b[24:32], t.Checksum)

	return b
}

// ParseTrailer parses a trailer and checks it against the size of the file it
// was read from.
func ParseTrailer(data []byte, engine endian.EndianEngine, size int64) (Trailer, error) {
	if len(data) < TrailerSize {
		return Trailer{}, fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidTrailer, len(data), TrailerSize)
	}

	t := Trailer{
		NFrames:     engine.Uint32(data[0:4]),
		FileSize:    engine.Uint64(data[8:16]),
		TOCPosition: engine.Uint64(data[16:24]),
		Checksum:    engine.Uint64(data[24:32]),
	}

	if t.FileSize != uint64(size) {
		return Trailer{}, fmt.Errorf("%w: recorded size %d, file has %d bytes", errs.ErrInvalidTrailer, t.FileSize, size)
	}
	if t.TOCPosition < HeaderSize || t.TOCPosition > uint64(size-TrailerSize) {
		return Trailer{}, fmt.Errorf("%w: table of contents offset %d out of range", errs.ErrInvalidTrailer, t.TOCPosition)
	}

	return t, nil
}
