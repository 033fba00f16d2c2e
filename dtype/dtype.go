// Package dtype maps frame vector type tags to native Go element types.
//
// Every supported vector tag corresponds to exactly one DType and every DType
// to exactly one Go element type, so the mapping can be queried in either
// direction:
//
//	dt, err := dtype.NativeFor(format.Vect8R) // dtype.Float64
//	tag, err := dtype.TagFor(dtype.Of[int16]()) // format.Vect2S
//
// Sample buffers are stored as native byte order bytes; View and Bytes convert
// between a byte buffer and a typed slice without copying.
package dtype

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
)

// DType identifies a native sample element type.
type DType uint8

const (
	Invalid DType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
	String
)

// Char is one byte of a fixed-width string vector. It is distinct from uint8
// so that FR_VECT_STRING and FR_VECT_1U map to different Go types.
type Char byte

// Element is the set of Go types a sample buffer can hold.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | complex64 | complex128 |
		Char
}

type entry struct {
	tag    format.VectType
	size   int
	name   string
	goType reflect.Type
}

var entries = [...]entry{
	Int8:       {format.VectC, 1, "int8", reflect.TypeFor[int8]()},
	Int16:      {format.Vect2S, 2, "int16", reflect.TypeFor[int16]()},
	Int32:      {format.Vect4S, 4, "int32", reflect.TypeFor[int32]()},
	Int64:      {format.Vect8S, 8, "int64", reflect.TypeFor[int64]()},
	Uint8:      {format.Vect1U, 1, "uint8", reflect.TypeFor[uint8]()},
	Uint16:     {format.Vect2U, 2, "uint16", reflect.TypeFor[uint16]()},
	Uint32:     {format.Vect4U, 4, "uint32", reflect.TypeFor[uint32]()},
	Uint64:     {format.Vect8U, 8, "uint64", reflect.TypeFor[uint64]()},
	Float32:    {format.Vect4R, 4, "float32", reflect.TypeFor[float32]()},
	Float64:    {format.Vect8R, 8, "float64", reflect.TypeFor[float64]()},
	Complex64:  {format.Vect8C, 8, "complex64", reflect.TypeFor[complex64]()},
	Complex128: {format.Vect16C, 16, "complex128", reflect.TypeFor[complex128]()},
	String:     {format.VectString, 1, "string", reflect.TypeFor[Char]()},
}

var byTag = func() map[format.VectType]DType {
	m := make(map[format.VectType]DType, len(entries))
	for d := Int8; d <= String; d++ {
		m[entries[d].tag] = d
	}

	return m
}()

// All returns every supported DType.
func All() []DType {
	out := make([]DType, 0, len(entries)-1)
	for d := Int8; d <= String; d++ {
		out = append(out, d)
	}

	return out
}

// Valid reports whether d is a supported element type.
func (d DType) Valid() bool {
	return d >= Int8 && d <= String
}

// Size returns the size of one element in bytes, or 0 for an invalid DType.
func (d DType) Size() int {
	if !d.Valid() {
		return 0
	}

	return entries[d].size
}

// SwapWidth returns the width of the scalar words that must be byte swapped
// when converting element data between byte orders. Complex types swap their
// real and imaginary parts independently.
func (d DType) SwapWidth() int {
	switch d {
	case Complex64, Complex128:
		return d.Size() / 2
	default:
		return d.Size()
	}
}

// GoType returns the Go element type for d, or nil for an invalid DType.
func (d DType) GoType() reflect.Type {
	if !d.Valid() {
		return nil
	}

	return entries[d].goType
}

func (d DType) String() string {
	if !d.Valid() {
		return "invalid"
	}

	return entries[d].name
}

// NativeFor returns the element type stored by vectors tagged with tag.
func NativeFor(tag format.VectType) (DType, error) {
	d, ok := byTag[tag]
	if !ok {
		return Invalid, &errs.UnsupportedTypeError{Type: fmt.Sprintf("vector type %d (%s)", uint16(tag), tag)}
	}

	return d, nil
}

// TagFor returns the vector type tag used to store elements of type d.
func TagFor(d DType) (format.VectType, error) {
	if !d.Valid() {
		return 0, &errs.UnsupportedTypeError{Type: d.String()}
	}

	return entries[d].tag, nil
}

// FromGoType returns the DType for a Go element type.
func FromGoType(t reflect.Type) (DType, error) {
	for d := Int8; d <= String; d++ {
		if entries[d].goType == t {
			return d, nil
		}
	}

	name := "<nil>"
	if t != nil {
		name = t.String()
	}

	return Invalid, &errs.UnsupportedTypeError{Type: name}
}

// Of returns the DType of the element type T.
func Of[T Element]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	case Char:
		return String
	default:
		return Invalid
	}
}

// View reinterprets a native byte order buffer as a slice of T without copying.
// Trailing bytes that do not form a whole element are ignored.
func View[T Element](b []byte) []T {
	size := Of[T]().Size()
	n := len(b) / size
	if n == 0 {
		return []T{}
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// Bytes reinterprets a typed slice as its native byte order bytes without copying.
func Bytes[T Element](v []T) []byte {
	if len(v) == 0 {
		return []byte{}
	}
	size := Of[T]().Size()

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*size)
}

// Alloc returns a zeroed buffer for n elements of type d, aligned for d.
func Alloc(d DType, n int) []byte {
	size := d.Size() * n
	if size == 0 {
		return []byte{}
	}
	// Back the buffer with uint64 words so 8-byte element types are aligned.
	words := make([]uint64, (size+7)/8)

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
}
