package gwf

import (
	"fmt"
	"testing"

	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/stretchr/testify/require"
)

// fakeStream serves in-memory frames. It hands out the same records on every
// call, so the vector buffers behave like memory owned by the stream.
type fakeStream struct {
	frames []*frame.Frame
	count  int
	toc    *frame.TOC

	tocCalls     int
	frameReads   []int
	channelReads []int
	closed       bool
}

func newFakeStream(frames ...*frame.Frame) *fakeStream {
	toc := frame.NewTOC()
	for i, f := range frames {
		toc.AddFrame(frame.TOCFrame{GTime: f.GTime, Dt: f.Dt, Run: f.Run, Number: f.Number, Position: 1})
		for _, ct := range format.ChannelTypes {
			for _, c := range f.Channels(ct) {
				toc.SetPosition(ct, c.Base().Name, i, 1)
			}
		}
	}

	return &fakeStream{frames: frames, count: len(frames), toc: toc}
}

func (s *fakeStream) FrameCount() int { return s.count }

func (s *fakeStream) ReadFrame(i int) (*frame.Frame, error) {
	if i < 0 || i >= len(s.frames) {
		return nil, fmt.Errorf("%w: frame %d", errs.ErrFrameOutOfRange, i)
	}
	s.frameReads = append(s.frameReads, i)

	return s.frames[i], nil
}

func (s *fakeStream) TOC() *frame.TOC {
	s.tocCalls++
	return s.toc
}

func (s *fakeStream) ReadChannel(i int, name string, ct format.ChannelType) (frame.Channel, bool, error) {
	if i < 0 || i >= len(s.frames) {
		return nil, false, fmt.Errorf("%w: frame %d", errs.ErrFrameOutOfRange, i)
	}
	s.channelReads = append(s.channelReads, i)
	c, ok := s.frames[i].Channel(name, ct)

	return c, ok, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// fakeOpener serves fake streams by source name.
func fakeOpener(streams map[string]*fakeStream) Opener {
	return func(source string) (Stream, error) {
		s, ok := streams[source]
		if !ok {
			return nil, fmt.Errorf("no such source %q", source)
		}

		return s, nil
	}
}

func float64Vect(t *testing.T, name string, values []float64, dx, startX float64) *frame.Vect {
	t.Helper()

	v, err := frame.NewVect(name, format.Vect8R, "m", frame.NewDimension(uint64(len(values)), dx, "s", startX))
	require.NoError(t, err)
	copy(dtype.View[float64](v.Data), values)

	return v
}

func vectValues(v *frame.Vect) []float64 {
	return append([]float64(nil), dtype.View[float64](v.Data)...)
}

func ramp(from, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(from + i)
	}

	return out
}

// procFrame builds a one-second frame at start holding channel name with rate
// samples numbered from first.
func procFrame(t *testing.T, start int64, name string, rate, first int) *frame.Frame {
	t.Helper()

	f := frame.NewFrame("test", 0, uint32(start), gps.New(start, 0), 1)
	c := frame.NewProcData(name, "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 1, 0, 0, 0, 0)
	c.AppendData(float64Vect(t, name, ramp(first, rate), 1/float64(rate), 0))
	f.AppendProc(c)

	return f
}
