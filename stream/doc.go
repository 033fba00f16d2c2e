// Package stream reads and writes frame files.
//
// # File Layout
//
// A frame file is a fixed-size header, a sequence of records, a table of
// contents record and a fixed-size trailer:
//
//	+----------------------+  0
//	| FileHeader (40)      |  magic "IGWD\0", version, byte order probes
//	+----------------------+  40
//	| FrameH record        |  frame 0 header
//	| ADC/Proc/Sim records |  frame 0 channels
//	| FrameH record        |  frame 1 header
//	| ...                  |
//	+----------------------+  Trailer.TOCPosition
//	| TOC record           |  frame and channel record offsets
//	+----------------------+  size - 32
//	| Trailer (32)         |  frame count, size, TOC offset, checksum
//	+----------------------+  size
//
// Every record starts with its total length (uint64) and class (uint8). All
// integers and floats are written in the byte order announced by the header
// probes. Vector sample data carries its own byte order flag in the vector's
// compression field, so files written on hosts of either order can be read
// back on any host; the Reader always returns native order samples.
//
// The trailer checksum is the xxHash64 of every byte before the trailer. It is
// verified only when the Reader is created with WithChecksumVerification.
package stream
