package series

import (
	"math"
	"time"

	"github.com/arloliu/gwf/gps"
)

// halfNanosecond absorbs the rounding of sample times to GPS nanoseconds, so a
// sample whose exact time is within half a nanosecond of a boundary is treated
// as lying on it.
const halfNanosecond = 0.5

// TrimIndices returns the half-open index range [first, last) of the samples
// of a regularly sampled buffer that overlap span.
//
// The buffer holds n samples spaced dt seconds apart starting at t0. first is
// the sample at or immediately before span.Start; last excludes every sample
// starting at or after span.End. An unbounded side of span does not trim.
// The result may have last <= first when the span does not overlap, and first
// may equal n when the span starts after the buffer ends.
func TrimIndices(t0 gps.Time, n int, dt float64, span gps.Span) (first, last int) {
	step := dt * float64(time.Second)
	last = n

	if span.HasStart() {
		if d := float64(span.Start.Sub(t0)); d > 0 {
			first = int(math.Floor((d + halfNanosecond) / step))
		}
	}

	if span.HasEnd() {
		end := t0.Add(gps.Seconds(float64(n) * dt))
		if over := float64(end.Sub(span.End)); over > 0 {
			drop := math.Ceil((over - halfNanosecond) / step)
			if drop > 0 {
				last = n - int(drop)
			}
		}
	}

	return first, last
}
