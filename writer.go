package gwf

import (
	"fmt"

	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/log"
	"github.com/arloliu/gwf/series"
)

// adcBits is the digitizer resolution recorded for written ADC channels.
const adcBits = 16

// Write writes every series of d into a single frame stored at path.
//
// Available options: WithSpan, WithStart, WithEnd, WithChannelTypes,
// WithFrameName, WithRun, WithCompression, WithSerializer, WithLogger.
func Write(path string, d *series.Dict, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	f, err := buildFrame(cfg, d)
	if err != nil {
		return err
	}

	if err := cfg.serializer(path, []*frame.Frame{f}, cfg.compression, cfg.level); err != nil {
		cfg.logger.Debug("write failed", log.String("path", path), log.Err(err))
		return err
	}
	cfg.logger.Debug("frame written", log.String("path", path), log.GPS("epoch", f.GTime))

	return nil
}

// BuildFrame assembles the frame that Write would store for d.
//
// Without an explicit start (or end), every series must share the same start
// (or end) time, otherwise an errs.InconsistentSpanError is returned. Series
// are cropped to the frame span. Each becomes a channel record of the type
// given by WithChannelTypes, proc by default, named after its channel.
func BuildFrame(d *series.Dict, opts ...Option) (*frame.Frame, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return buildFrame(cfg, d)
}

func buildFrame(cfg *config, d *series.Dict) (*frame.Frame, error) {
	if d == nil || d.Len() == 0 {
		return nil, errs.ErrEmptyDict
	}
	types, err := parseChannelTypes(cfg.channelTypes)
	if err != nil {
		return nil, err
	}

	span, err := frameSpan(d, cfg.span)
	if err != nil {
		return nil, err
	}

	f := frame.NewFrame(cfg.frameName, cfg.run, 0, span.Start, span.Duration().Seconds(), detectorsOf(d)...)

	i := 0
	for key, s := range d.All() {
		ct, ok := types[channelName(s)]
		if !ok {
			ct, ok = types[key]
		}
		if !ok {
			ct = format.ChannelProc
		}

		c, err := newChannel(f, s.Crop(span), ct, uint32(i))
		if err != nil {
			return nil, err
		}
		f.Append(c)
		i++
	}

	cfg.logger.Debug("built frame",
		log.String("name", f.Name), log.Span("span", f.Span()), log.Int("channels", d.Len()))

	return f, nil
}

// frameSpan fills the open sides of span from the series of d, which must
// all agree on them.
func frameSpan(d *series.Dict, span gps.Span) (gps.Span, error) {
	if !span.HasStart() {
		first := true
		for _, s := range d.All() {
			if first {
				span.Start = s.T0()
				first = false
			} else if s.T0() != span.Start {
				return gps.Span{}, &errs.InconsistentSpanError{Edge: "start"}
			}
		}
	}

	if !span.HasEnd() {
		first := true
		for _, s := range d.All() {
			if first {
				span.End = s.End()
				first = false
			} else if s.End() != span.End {
				return gps.Span{}, &errs.InconsistentSpanError{Edge: "end"}
			}
		}
	}

	if !span.End.After(span.Start) {
		return gps.Span{}, fmt.Errorf("%w: frame span %s is empty", errs.ErrInconsistentSpan, span)
	}

	return span, nil
}

func detectorsOf(d *series.Dict) []frame.Detector {
	var out []frame.Detector
	seen := make(map[string]bool)
	for _, s := range d.All() {
		det, ok := frame.DetectorFor(channelName(s))
		if !ok || seen[det.Prefix] {
			continue
		}
		seen[det.Prefix] = true
		out = append(out, det)
	}

	return out
}

func channelName(s *series.Series) string {
	if s.Channel() != "" {
		return s.Channel()
	}

	return s.Name()
}

// newChannel builds the record of type ct holding s. number is the position of
// s in the frame, used as the ADC channel number.
func newChannel(f *frame.Frame, s *series.Series, ct format.ChannelType, number uint32) (frame.Channel, error) {
	name := channelName(s)
	offset := s.T0().Sub(f.GTime).Seconds()

	var c frame.Channel
	switch ct {
	case format.ChannelADC:
		adc := frame.NewADCData(name, 0, number, adcBits, s.SampleRate())
		adc.TimeOffset = offset
		c = adc
	case format.ChannelProc:
		c = frame.NewProcData(name, s.Name(), frame.ProcTimeSeries, frame.ProcUnknownSubType,
			offset, s.Duration().Seconds(), 0, 0, 0, 0)
	case format.ChannelSim:
		c = frame.NewSimData(name, s.Name(), s.SampleRate(), offset, 0, 0)
	default:
		return nil, &errs.InvalidChannelTypeError{Channel: name, Type: ct.String()}
	}

	v, err := newVect(name, s)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", name, err)
	}
	c.Base().AppendData(v)

	return c, nil
}

// newVect copies the samples of s into a time series vector named like its
// channel record, which is what readers match vectors against.
func newVect(name string, s *series.Series) (*frame.Vect, error) {
	tag, err := dtype.TagFor(s.DType())
	if err != nil {
		return nil, err
	}

	v, err := frame.NewVect(name, tag, s.Unit(), frame.NewDimension(uint64(s.Len()), s.Dt(), "s", 0))
	if err != nil {
		return nil, err
	}
	copy(v.Data, s.Bytes())

	return v, nil
}
