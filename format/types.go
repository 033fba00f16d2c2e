package format

import (
	"strings"
)

type (
	VectType        uint16
	ChannelType     uint8
	CompressionType uint8
	RecordClass     uint8
)

// Vector element type tags, numbered as in IGWD frame files.
const (
	VectC      VectType = 0  // VectC represents 8-bit signed integers.
	Vect2S     VectType = 1  // Vect2S represents 16-bit signed integers.
	Vect8R     VectType = 2  // Vect8R represents 64-bit IEEE floats.
	Vect4R     VectType = 3  // Vect4R represents 32-bit IEEE floats.
	Vect4S     VectType = 4  // Vect4S represents 32-bit signed integers.
	Vect8S     VectType = 5  // Vect8S represents 64-bit signed integers.
	Vect8C     VectType = 6  // Vect8C represents complex values of two float32.
	Vect16C    VectType = 7  // Vect16C represents complex values of two float64.
	VectString VectType = 8  // VectString represents fixed-width string bytes.
	Vect2U     VectType = 9  // Vect2U represents 16-bit unsigned integers.
	Vect4U     VectType = 10 // Vect4U represents 32-bit unsigned integers.
	Vect8U     VectType = 11 // Vect8U represents 64-bit unsigned integers.
	Vect1U     VectType = 12 // Vect1U represents 8-bit unsigned integers.
)

const (
	ChannelADC  ChannelType = 0x1 // ChannelADC represents raw digitizer channels (FrAdcData).
	ChannelProc ChannelType = 0x2 // ChannelProc represents processed channels (FrProcData).
	ChannelSim  ChannelType = 0x3 // ChannelSim represents simulated channels (FrSimData).
)

// Compression identifiers. The low byte of a vector's compression field holds
// one of these; None and Gzip use the frame format's own codes.
const (
	CompressionNone CompressionType = 0x0  // CompressionNone represents raw, uncompressed data.
	CompressionGzip CompressionType = 0x1  // CompressionGzip represents gzip (deflate) compression.
	CompressionZstd CompressionType = 0x20 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x21 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x22 // CompressionLZ4 represents LZ4 block compression.
)

// DefaultCompressionLevel is the level used when a caller does not pick one.
const DefaultCompressionLevel = 6

const (
	ClassFrameH RecordClass = 0x1 // ClassFrameH marks a frame header record.
	ClassADC    RecordClass = 0x2 // ClassADC marks an ADC channel record.
	ClassProc   RecordClass = 0x3 // ClassProc marks a processed channel record.
	ClassSim    RecordClass = 0x4 // ClassSim marks a simulated channel record.
	ClassTOC    RecordClass = 0x5 // ClassTOC marks the table of contents record.
)

// ChannelTypes lists the channel types in table-of-contents lookup order.
var ChannelTypes = []ChannelType{ChannelSim, ChannelProc, ChannelADC}

func (v VectType) String() string {
	switch v {
	case VectC:
		return "FR_VECT_C"
	case Vect2S:
		return "FR_VECT_2S"
	case Vect8R:
		return "FR_VECT_8R"
	case Vect4R:
		return "FR_VECT_4R"
	case Vect4S:
		return "FR_VECT_4S"
	case Vect8S:
		return "FR_VECT_8S"
	case Vect8C:
		return "FR_VECT_8C"
	case Vect16C:
		return "FR_VECT_16C"
	case VectString:
		return "FR_VECT_STRING"
	case Vect2U:
		return "FR_VECT_2U"
	case Vect4U:
		return "FR_VECT_4U"
	case Vect8U:
		return "FR_VECT_8U"
	case Vect1U:
		return "FR_VECT_1U"
	default:
		return "Unknown"
	}
}

func (c ChannelType) String() string {
	switch c {
	case ChannelADC:
		return "adc"
	case ChannelProc:
		return "proc"
	case ChannelSim:
		return "sim"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the three channel types.
func (c ChannelType) Valid() bool {
	return c == ChannelADC || c == ChannelProc || c == ChannelSim
}

// Class returns the record class used to store channels of this type.
func (c ChannelType) Class() RecordClass {
	switch c {
	case ChannelADC:
		return ClassADC
	case ChannelProc:
		return ClassProc
	case ChannelSim:
		return ClassSim
	default:
		return 0
	}
}

// ParseChannelType parses "adc", "proc" or "sim", ignoring case.
// The boolean result is false for any other input.
func ParseChannelType(s string) (ChannelType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adc":
		return ChannelADC, true
	case "proc":
		return ChannelProc, true
	case "sim":
		return ChannelSim, true
	default:
		return 0, false
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a codec name such as "gzip" or "zstd", ignoring case.
func ParseCompression(s string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "raw", "":
		return CompressionNone, true
	case "gzip":
		return CompressionGzip, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (r RecordClass) String() string {
	switch r {
	case ClassFrameH:
		return "FrameH"
	case ClassADC:
		return "FrAdcData"
	case ClassProc:
		return "FrProcData"
	case ClassSim:
		return "FrSimData"
	case ClassTOC:
		return "FrTOC"
	default:
		return "Unknown"
	}
}
