package gwf

import (
	"errors"
	"testing"

	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/stretchr/testify/require"
)

func resolverStream(t *testing.T) *fakeStream {
	t.Helper()

	f := frame.NewFrame("test", 0, 0, gps.New(100, 0), 1)
	f.AppendADC(frame.NewADCData("H1:SHARED", 0, 0, 16, 16))
	f.AppendProc(frame.NewProcData("H1:SHARED", "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 1, 0, 0, 0, 0))
	f.AppendSim(frame.NewSimData("H1:SHARED", "", 16, 0, 0, 0))
	f.AppendADC(frame.NewADCData("H1:ADC", 0, 1, 16, 16))
	f.AppendProc(frame.NewProcData("H1:ADC_PROC", "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 1, 0, 0, 0, 0))
	f.AppendADC(frame.NewADCData("H1:ADC_PROC", 0, 2, 16, 16))

	return newFakeStream(f)
}

func TestTypeResolver(t *testing.T) {
	s := resolverStream(t)
	r := newTypeResolver(s, "test.gwf", map[string]format.ChannelType{"H1:DECLARED": format.ChannelSim})

	types, err := r.resolve([]string{"H1:SHARED", "H1:ADC", "H1:ADC_PROC", "H1:DECLARED"})
	require.NoError(t, err)
	require.Equal(t, map[string]format.ChannelType{
		"H1:SHARED":   format.ChannelSim,
		"H1:ADC":      format.ChannelADC,
		"H1:ADC_PROC": format.ChannelProc,
		"H1:DECLARED": format.ChannelSim,
	}, types)
	require.Equal(t, 1, s.tocCalls)
}

func TestTypeResolver_DeclaredOnly(t *testing.T) {
	s := resolverStream(t)
	r := newTypeResolver(s, "test.gwf", map[string]format.ChannelType{"H1:SHARED": format.ChannelADC})

	types, err := r.resolve([]string{"H1:SHARED"})
	require.NoError(t, err)
	require.Equal(t, format.ChannelADC, types["H1:SHARED"])
	require.Zero(t, s.tocCalls)
}

func TestTypeResolver_NotFound(t *testing.T) {
	r := newTypeResolver(resolverStream(t), "test.gwf", nil)

	_, err := r.resolve([]string{"H1:ADC", "H1:MISSING"})
	require.ErrorIs(t, err, errs.ErrChannelNotFound)

	var notFound *errs.ChannelNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "H1:MISSING", notFound.Channel)
	require.Equal(t, "test.gwf", notFound.Source)
}

func TestParseChannelTypes(t *testing.T) {
	types, err := parseChannelTypes(map[string]string{"A": "ADC", "B": " Proc", "C": "sim"})
	require.NoError(t, err)
	require.Equal(t, map[string]format.ChannelType{
		"A": format.ChannelADC,
		"B": format.ChannelProc,
		"C": format.ChannelSim,
	}, types)

	_, err = parseChannelTypes(map[string]string{"H1:TEST": "fft"})
	require.ErrorIs(t, err, errs.ErrInvalidChannelType)

	var invalid *errs.InvalidChannelTypeError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, "H1:TEST", invalid.Channel)
	require.Equal(t, "fft", invalid.Type)
}
