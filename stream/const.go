package stream

import "math"

const (
	// HeaderSize is the size in bytes of the file header.
	HeaderSize = 40
	// TrailerSize is the size in bytes of the file trailer.
	TrailerSize = 32
	// recordPrefixSize covers the record length and class.
	recordPrefixSize = 9

	// VersionMajor is the layout version written by this package.
	VersionMajor = 1
	VersionMinor = 0

	// LibraryTag identifies this package as the writer of a file.
	LibraryTag = 'G'
)

// Magic starts every frame file.
var Magic = [5]byte{'I', 'G', 'W', 'D', 0}

// Byte order probes stored in the header.
const (
	probe16 uint16 = 0x1234
	probe32 uint32 = 0x12345678
	probe64 uint64 = 0x0123456789abcdef
)

var (
	probeF32 = float32(math.Pi)
	probeF64 = math.Pi
)

// littleEndianData is set in a vector's compression field when its sample
// bytes are little-endian.
const littleEndianData = 0x100
