// Package series holds regularly sampled time series decoded from, or
// destined for, frame files.
//
// A Series stores its samples as a native byte order buffer tagged with a
// dtype.DType. Slicing and cropping return views that share that buffer but
// never its spare capacity: appending to a view always reallocates, so a view
// can never overwrite the samples of the series it was taken from.
package series

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/internal/options"
)

// ContiguityTolerance is the largest gap or overlap accepted between the end
// of a series and the start of one appended to it: 2^-18 seconds.
const ContiguityTolerance = time.Second >> 18

// Series is a regularly sampled time series.
type Series struct {
	name    string
	channel string
	unit    string
	t0      gps.Time
	dt      float64
	dtype   dtype.DType
	data    []byte
}

// New creates a series holding a copy of values, sampled every dt seconds
// from t0.
func New[T dtype.Element](name string, t0 gps.Time, dt float64, values []T, opts ...Option) (*Series, error) {
	d := dtype.Of[T]()
	data := dtype.Alloc(d, len(values))
	copy(data, dtype.Bytes(values))

	return newSeries(name, d, data, t0, dt, opts)
}

// FromBytes creates a series over data, a native byte order buffer of
// elements of type d. The buffer is used as is, without copying.
func FromBytes(name string, d dtype.DType, data []byte, t0 gps.Time, dt float64, opts ...Option) (*Series, error) {
	if !d.Valid() {
		return nil, &errs.UnsupportedTypeError{Type: d.String()}
	}
	if len(data)%d.Size() != 0 {
		return nil, fmt.Errorf("series %s: %d bytes is not a whole number of %s elements", name, len(data), d)
	}

	return newSeries(name, d, data[:len(data):len(data)], t0, dt, opts)
}

func newSeries(name string, d dtype.DType, data []byte, t0 gps.Time, dt float64, opts []Option) (*Series, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("series %s: invalid sample spacing %v", name, dt)
	}

	s := &Series{
		name:    name,
		channel: name,
		t0:      t0,
		dt:      dt,
		dtype:   d,
		data:    data,
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Channel returns the channel the series was recorded from.
func (s *Series) Channel() string { return s.channel }

// Unit returns the unit of the sample values.
func (s *Series) Unit() string { return s.unit }

// T0 returns the time of the first sample.
func (s *Series) T0() gps.Time { return s.t0 }

// Dt returns the sample spacing in seconds.
func (s *Series) Dt() float64 { return s.dt }

// SampleRate returns the number of samples per second.
func (s *Series) SampleRate() float64 { return 1 / s.dt }

// DType returns the element type of the samples.
func (s *Series) DType() dtype.DType { return s.dtype }

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.data) / s.dtype.Size() }

// Bytes returns the native byte order sample buffer. The caller must not
// modify it unless it owns the series.
func (s *Series) Bytes() []byte { return s.data }

// Duration returns the time covered by the samples.
func (s *Series) Duration() time.Duration {
	return gps.Seconds(float64(s.Len()) * s.dt)
}

// End returns the time just after the last sample.
func (s *Series) End() gps.Time {
	return s.t0.Add(s.Duration())
}

// Span returns the half-open interval covered by the samples.
func (s *Series) Span() gps.Span {
	return gps.NewSpan(s.t0, s.End())
}

// TimeAt returns the time of sample i.
func (s *Series) TimeAt(i int) gps.Time {
	return s.t0.AddSeconds(float64(i) * s.dt)
}

// Values returns the samples of s as a []T without copying.
func Values[T dtype.Element](s *Series) ([]T, error) {
	if want := dtype.Of[T](); want != s.dtype {
		return nil, fmt.Errorf("series %s holds %s, not %s: %w", s.name, s.dtype, want, errs.ErrIncompatibleSeries)
	}

	return dtype.View[T](s.data), nil
}

// Float64s returns a copy of the samples converted to float64. Complex and
// string series cannot be converted.
func (s *Series) Float64s() ([]float64, error) {
	out := make([]float64, s.Len())

	switch s.dtype {
	case dtype.Int8:
		convert(out, dtype.View[int8](s.data))
	case dtype.Int16:
		convert(out, dtype.View[int16](s.data))
	case dtype.Int32:
		convert(out, dtype.View[int32](s.data))
	case dtype.Int64:
		convert(out, dtype.View[int64](s.data))
	case dtype.Uint8:
		convert(out, dtype.View[uint8](s.data))
	case dtype.Uint16:
		convert(out, dtype.View[uint16](s.data))
	case dtype.Uint32:
		convert(out, dtype.View[uint32](s.data))
	case dtype.Uint64:
		convert(out, dtype.View[uint64](s.data))
	case dtype.Float32:
		convert(out, dtype.View[float32](s.data))
	case dtype.Float64:
		copy(out, dtype.View[float64](s.data))
	default:
		return nil, &errs.UnsupportedTypeError{Type: s.dtype.String() + " to float64"}
	}

	return out, nil
}

func convert[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32](dst []float64, src []T) {
	for i, v := range src {
		dst[i] = float64(v)
	}
}

// FormatValue formats sample i as text.
func (s *Series) FormatValue(i int) string {
	switch s.dtype {
	case dtype.Int8:
		return strconv.FormatInt(int64(dtype.View[int8](s.data)[i]), 10)
	case dtype.Int16:
		return strconv.FormatInt(int64(dtype.View[int16](s.data)[i]), 10)
	case dtype.Int32:
		return strconv.FormatInt(int64(dtype.View[int32](s.data)[i]), 10)
	case dtype.Int64:
		return strconv.FormatInt(dtype.View[int64](s.data)[i], 10)
	case dtype.Uint8:
		return strconv.FormatUint(uint64(dtype.View[uint8](s.data)[i]), 10)
	case dtype.Uint16:
		return strconv.FormatUint(uint64(dtype.View[uint16](s.data)[i]), 10)
	case dtype.Uint32:
		return strconv.FormatUint(uint64(dtype.View[uint32](s.data)[i]), 10)
	case dtype.Uint64:
		return strconv.FormatUint(dtype.View[uint64](s.data)[i], 10)
	case dtype.Float32:
		return strconv.FormatFloat(float64(dtype.View[float32](s.data)[i]), 'g', -1, 32)
	case dtype.Float64:
		return strconv.FormatFloat(dtype.View[float64](s.data)[i], 'g', -1, 64)
	case dtype.Complex64:
		return strconv.FormatComplex(complex128(dtype.View[complex64](s.data)[i]), 'g', -1, 64)
	case dtype.Complex128:
		return strconv.FormatComplex(dtype.View[complex128](s.data)[i], 'g', -1, 128)
	case dtype.String:
		return strconv.QuoteRune(rune(s.data[i]))
	default:
		return ""
	}
}

// Slice returns a view of samples [i, j). The view shares the buffer of s but
// not its spare capacity.
func (s *Series) Slice(i, j int) *Series {
	size := s.dtype.Size()
	lo, hi := i*size, j*size
	out := *s
	out.data = s.data[lo:hi:hi]
	out.t0 = s.TimeAt(i)

	return &out
}

// Crop returns a view of the samples overlapping span, using the same index
// arithmetic as frame vector decoding. Cropping to a span that does not
// overlap the series yields an empty series.
func (s *Series) Crop(span gps.Span) *Series {
	n := s.Len()
	first, last := TrimIndices(s.t0, n, s.dt, span)
	first = min(max(first, 0), n)
	last = min(max(last, first), n)

	return s.Slice(first, last)
}

// Clone returns a deep copy of s with its own buffer.
func (s *Series) Clone() *Series {
	out := *s
	out.data = dtype.Alloc(s.dtype, s.Len())
	copy(out.data, s.data)

	return &out
}

// Append appends the samples of other to s in place.
//
// other must have the same sample spacing, unit and element type as s and
// must start where s ends, within ContiguityTolerance. When s has no spare
// capacity, which is always the case for views, a new buffer is allocated and
// s stops sharing memory with anything else.
func (s *Series) Append(other *Series) error {
	if other.dtype != s.dtype {
		return fmt.Errorf("%w: cannot append %s samples to %s series %s", errs.ErrIncompatibleSeries, other.dtype, s.dtype, s.name)
	}
	if other.dt != s.dt {
		return fmt.Errorf("%w: cannot append series with dt %v to %s with dt %v", errs.ErrIncompatibleSeries, other.dt, s.name, s.dt)
	}
	if other.unit != s.unit {
		return fmt.Errorf("%w: cannot append series with unit %q to %s with unit %q", errs.ErrIncompatibleSeries, other.unit, s.name, s.unit)
	}

	end := s.End()
	gap := other.t0.Sub(end)
	if gap < 0 {
		gap = -gap
	}
	if gap > ContiguityTolerance {
		return fmt.Errorf("%w: %s ends at %s but appended data starts at %s", errs.ErrDiscontiguous, s.name, end, other.t0)
	}

	s.grow(len(other.data))
	s.data = append(s.data, other.data...)

	return nil
}

// grow makes room for n more bytes, reallocating through dtype.Alloc so the
// buffer stays aligned for its element type.
func (s *Series) grow(n int) {
	if cap(s.data)-len(s.data) >= n {
		return
	}

	size := s.dtype.Size()
	want := (len(s.data) + n) / size
	capacity := max(want, 2*s.Len())
	buf := dtype.Alloc(s.dtype, capacity)
	copy(buf, s.data)
	s.data = buf[:len(s.data)]
}

func (s *Series) String() string {
	return fmt.Sprintf("Series(%s, %s, %d samples at %g Hz, t0=%s)", s.name, s.dtype, s.Len(), s.SampleRate(), s.t0)
}
