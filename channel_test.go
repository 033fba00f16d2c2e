package gwf

import (
	"testing"

	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/series"
	"github.com/stretchr/testify/require"
)

func TestDecodeChannel_JoinsVectors(t *testing.T) {
	c := frame.NewProcData("H1:TEST", "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 10, 0, 0, 0, 0)
	c.AppendData(float64Vect(t, "H1:TEST", ramp(0, 5), 1, 0))
	c.AppendData(float64Vect(t, "H1:AUX", ramp(100, 10), 1, 0))
	c.AppendData(float64Vect(t, "H1:TEST", ramp(5, 5), 1, 5))

	tests := []struct {
		name   string
		span   gps.Span
		values []float64
		t0     gps.Time
	}{
		{"unbounded", gps.Span{}, ramp(0, 10), sec(100)},
		{"across vectors", gps.NewSpan(sec(103), sec(107)), []float64{3, 4, 5, 6}, sec(103)},
		{"second vector only", gps.NewSpan(sec(106), sec(108)), []float64{6, 7}, sec(106)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok, err := decodeChannel(c, sec(100), tt.span, "H1:TEST")
			require.NoError(t, err)
			require.True(t, ok)

			values, err := series.Values[float64](s)
			require.NoError(t, err)
			require.Equal(t, tt.values, values)
			require.Equal(t, tt.t0, s.T0())
		})
	}

	// Joining must not write into the first vector.
	require.Equal(t, ramp(0, 5), vectValues(c.Data[0]))
}

func TestDecodeChannel_TimeOffset(t *testing.T) {
	c := frame.NewSimData("H1:SIM", "", 4, 0.5, 0, 0)
	c.AppendData(float64Vect(t, "H1:SIM", ramp(0, 2), 0.25, 0))

	s, ok, err := decodeChannel(c, sec(100), gps.Span{}, "H1:SIM")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, gps.New(100, 500_000_000), s.T0())
	require.Equal(t, sec(101), s.End())
}

func TestDecodeChannel_Skip(t *testing.T) {
	proc := frame.NewProcData("H1:TEST", "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 10, 0, 0, 0, 0)
	proc.AppendData(float64Vect(t, "H1:TEST", ramp(0, 10), 1, 0))

	tests := []struct {
		name string
		c    frame.Channel
		span gps.Span
	}{
		{"request ends at data start", proc, gps.NewSpan(sec(90), sec(100))},
		{"request starts after time range", proc, gps.NewSpan(sec(111), sec(120))},
		{"request starts at data end", proc, gps.NewSpan(sec(110), 0)},
		{"no vectors", frame.NewADCData("H1:TEST", 0, 0, 16, 1), gps.Span{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok, err := decodeChannel(tt.c, sec(100), tt.span, "H1:TEST")
			require.NoError(t, err)
			require.False(t, ok)
			require.Nil(t, s)
		})
	}
}

func TestDecodeChannel_Discontiguous(t *testing.T) {
	c := frame.NewProcData("H1:TEST", "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 10, 0, 0, 0, 0)
	c.AppendData(float64Vect(t, "H1:TEST", ramp(0, 4), 1, 0))
	c.AppendData(float64Vect(t, "H1:TEST", ramp(6, 4), 1, 6))

	_, _, err := decodeChannel(c, sec(100), gps.Span{}, "H1:TEST")
	require.ErrorIs(t, err, errs.ErrDiscontiguous)
}
