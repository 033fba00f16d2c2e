package gwf

import (
	"fmt"
	"math"

	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/series"
)

// decodeVector returns the samples of v that overlap span as a series
// starting origin plus the vector's x offset.
//
// The boolean result is false, with a nil error, when v is not a sample
// vector of channel name or does not overlap span. The returned series is a
// view of v.Data.
func decodeVector(v *frame.Vect, origin gps.Time, span gps.Span, name string) (*series.Series, bool, error) {
	if v.Name != "" && name != "" && v.Name != name {
		return nil, false, nil
	}

	d, err := v.DType()
	if err != nil {
		return nil, false, fmt.Errorf("vector %s: %w", v.Name, err)
	}

	dim := v.Dim(0)
	dx := dim.Dx
	if !(dx > 0) || math.IsInf(dx, 0) {
		return nil, false, fmt.Errorf("vector %s: invalid sample spacing %v", v.Name, dx)
	}

	n := v.NData()
	start := origin.AddSeconds(dim.StartX)
	first, last := series.TrimIndices(start, n, dx, span)
	if first >= n || last < first {
		return nil, false, nil
	}
	// A zero-length request keeps an empty series anchored on its sample.
	if last == first && !span.IsZeroLength() {
		return nil, false, nil
	}

	fragName := v.Name
	if fragName == "" {
		fragName = name
	}
	size := d.Size()
	s, err := series.FromBytes(fragName, d, v.Data[first*size:last*size],
		start.AddSeconds(float64(first)*dx), dx,
		series.WithUnit(v.UnitY), series.WithChannel(fragName))
	if err != nil {
		return nil, false, err
	}

	return s, true, nil
}
