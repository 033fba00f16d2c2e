package frame

import (
	"fmt"

	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/format"
)

// Dimension describes one axis of a Vect.
type Dimension struct {
	// Nx is the number of samples along the axis.
	Nx uint64
	// Dx is the spacing between samples, in UnitX.
	Dx float64
	// StartX is the axis origin relative to the containing channel record.
	StartX float64
	// UnitX is the unit of Dx and StartX, "s" for time series.
	UnitX string
}

// NewDimension creates a Dimension.
func NewDimension(nx uint64, dx float64, unitX string, startX float64) Dimension {
	return Dimension{Nx: nx, Dx: dx, StartX: startX, UnitX: unitX}
}

// Vect is a named, typed sample array.
type Vect struct {
	Name string
	Type format.VectType
	// Compress is the codec the vector was stored with. It is informational
	// on read; writers choose their own codec.
	Compress format.CompressionType
	Dims     []Dimension
	UnitY    string
	// Data holds the samples in native byte order.
	Data []byte
}

// NewVect creates a vector with zeroed storage for the samples described by
// dims. The element count is the product of every dimension's Nx.
func NewVect(name string, t format.VectType, unitY string, dims ...Dimension) (*Vect, error) {
	d, err := dtype.NativeFor(t)
	if err != nil {
		return nil, err
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("vector %s: at least one dimension is required", name)
	}

	n := uint64(1)
	for _, dim := range dims {
		n *= dim.Nx
	}

	return &Vect{
		Name:  name,
		Type:  t,
		Dims:  dims,
		UnitY: unitY,
		Data:  dtype.Alloc(d, int(n)),
	}, nil
}

// DType returns the native element type of the vector.
func (v *Vect) DType() (dtype.DType, error) {
	return dtype.NativeFor(v.Type)
}

// NData returns the number of elements held in Data.
func (v *Vect) NData() int {
	d, err := dtype.NativeFor(v.Type)
	if err != nil {
		return 0
	}

	return len(v.Data) / d.Size()
}

// Dim returns dimension i, or the zero Dimension if the vector has fewer.
func (v *Vect) Dim(i int) Dimension {
	if i < 0 || i >= len(v.Dims) {
		return Dimension{}
	}

	return v.Dims[i]
}
