package gwf

import (
	"fmt"

	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/series"
)

// decodeChannel returns the samples of channel record c in a frame starting at
// epoch that overlap span, joined across the record's vectors in order.
//
// The boolean result is false, with a nil error, when nothing in the record
// overlaps span.
func decodeChannel(c frame.Channel, epoch gps.Time, span gps.Span, name string) (*series.Series, bool, error) {
	dataStart := epoch.AddSeconds(c.DataOffset())

	if span.HasEnd() && !dataStart.Before(span.End) {
		return nil, false, nil
	}
	if tr := c.TimeRange(); tr != 0 && span.HasStart() && dataStart.AddSeconds(tr).Before(span.Start) {
		return nil, false, nil
	}

	var out *series.Series
	data := c.Base().Data
	for i := 0; i < len(data); i++ {
		frag, ok, err := decodeVector(data[i], dataStart, span, name)
		if err != nil {
			return nil, false, fmt.Errorf("channel %s: %w", c.Base().Name, err)
		}
		if !ok {
			continue
		}
		if out == nil {
			out = frag
			continue
		}
		if err := out.Append(frag); err != nil {
			return nil, false, fmt.Errorf("channel %s: %w", c.Base().Name, err)
		}
	}

	return out, out != nil, nil
}
