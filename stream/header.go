package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/gwf/endian"
	"github.com/arloliu/gwf/errs"
)

// FileHeader is the fixed-size header at the start of a frame file.
type FileHeader struct {
	VersionMajor uint8 // byte offset 5
	VersionMinor uint8 // byte offset 6
	Library      uint8 // byte offset 7
	// Order is the byte order of every multi-byte value in the file except
	// vector samples, which record their own.
	Order endian.EndianEngine // probes at byte offset 8-33
}

// NewFileHeader creates a header for a file written in the given byte order.
func NewFileHeader(order endian.EndianEngine) FileHeader {
	return FileHeader{
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		Library:      LibraryTag,
		Order:        order,
	}
}

// Bytes serializes the header.
func (h FileHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:5], Magic[:])
	b[5] = h.VersionMajor
	b[6] = h.VersionMinor
	b[7] = h.Library

	engine := h.Order
	engine.PutUint16(b[8:10], probe16)
	engine.PutUint32(b[10:14], probe32)
	engine.PutUint64(b[14:22], probe64)
	engine.PutUint32(b[22:26], math.Float32bits(probeF32))
	engine.PutUint64(b[26:34], math.Float64bits(probeF64))
	// bytes 34-39 are reserved

	return b
}

// ParseFileHeader parses and validates a file header.
//
// The byte order is detected from the 16-bit probe; the remaining probes must
// then read back exactly, which rules out files from hosts with a mixed or
// unusual float layout.
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidHeader, len(data), HeaderSize)
	}
	if [5]byte(data[0:5]) != Magic {
		return FileHeader{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidHeader, data[0:5])
	}

	var engine endian.EndianEngine
	switch {
	case binary.LittleEndian.Uint16(data[8:10]) == probe16:
		engine = endian.GetLittleEndianEngine()
	case binary.BigEndian.Uint16(data[8:10]) == probe16:
		engine = endian.GetBigEndianEngine()
	default:
		return FileHeader{}, fmt.Errorf("%w: unrecognized byte order probe %x", errs.ErrInvalidHeader, data[8:10])
	}

	if engine.Uint32(data[10:14]) != probe32 ||
		engine.Uint64(data[14:22]) != probe64 ||
		math.Float32frombits(engine.Uint32(data[22:26])) != probeF32 ||
		math.Float64frombits(engine.Uint64(data[26:34])) != probeF64 {
		return FileHeader{}, fmt.Errorf("%w: byte order probes do not match", errs.ErrInvalidHeader)
	}

	h := FileHeader{
		VersionMajor: data[5],
		VersionMinor: data[6],
		Library:      data[7],
		Order:        engine,
	}
	if h.VersionMajor != VersionMajor {
		return FileHeader{}, fmt.Errorf("%w: unsupported version %d.%d", errs.ErrInvalidHeader, h.VersionMajor, h.VersionMinor)
	}

	return h, nil
}
