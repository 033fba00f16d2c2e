package gwf

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/log"
	"github.com/arloliu/gwf/series"
)

// Read reads channels from the frame files in sources, in order, and joins
// each channel's data across files.
//
// Sources must be in time order and contiguous for each channel. The returned
// dict holds one series per channel, in the order of channels.
//
// Available options: WithSpan, WithStart, WithEnd, WithChannelTypes,
// WithLogger, WithOpener, WithChecksumVerification.
func Read(sources []string, channels []string, opts ...Option) (*series.Dict, error) {
	if len(sources) == 0 {
		return nil, errs.ErrNoSources
	}
	channels = uniqueNames(channels)
	if len(channels) == 0 {
		return nil, errs.ErrNoChannels
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	known, err := parseChannelTypes(cfg.channelTypes)
	if err != nil {
		return nil, err
	}

	var out *series.Dict
	for i, source := range sources {
		d, err := readSource(cfg, source, channels, known)
		if err != nil {
			cfg.logger.Debug("read failed", log.String("source", source), log.Err(err))
			return nil, err
		}

		if i == 0 {
			out = d
			continue
		}
		// The first file's series may view memory owned by its stream, so
		// take ownership before anything is appended to them.
		if i == 1 {
			out = out.Own()
		}
		if err := out.Append(d); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}

	return out, nil
}

// ReadFile reads channels from a single frame file.
func ReadFile(source string, channels []string, opts ...Option) (*series.Dict, error) {
	return Read([]string{source}, channels, opts...)
}

func readSource(cfg *config, source string, channels []string, known map[string]format.ChannelType) (d *series.Dict, err error) {
	s, err := cfg.opener(source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", source, cerr)
		}
	}()

	cfg.logger.Debug("reading frame file",
		log.String("source", source), log.Int("frames", s.FrameCount()), log.Span("span", cfg.span))

	return readStream(s, source, channels, known, cfg.span, cfg.logger)
}

// readStream reads channels from every frame of s that overlaps span.
func readStream(s Stream, source string, channels []string, known map[string]format.ChannelType,
	span gps.Span, logger log.Logger,
) (*series.Dict, error) {
	types, err := newTypeResolver(s, source, known).resolve(channels)
	if err != nil {
		return nil, err
	}

	out := series.NewDict()
	nframes := s.FrameCount()

	for i := 0; ; i++ {
		f, err := s.ReadFrame(i)
		if err != nil {
			// The frame count can be stale; running off the end past it is
			// the normal way out.
			if errors.Is(err, errs.ErrFrameOutOfRange) && i >= nframes {
				break
			}

			return nil, fmt.Errorf("%s: %w", source, err)
		}

		if !span.Overlaps(f.Span()) {
			logger.Debug("skipping frame", log.Int("frame", i), log.GPS("epoch", f.GTime), log.Span("frame_span", f.Span()))
			continue
		}

		for _, name := range channels {
			c, ok, err := s.ReadChannel(i, name, types[name])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", source, err)
			}
			if !ok {
				continue
			}

			frag, ok, err := decodeChannel(c, f.GTime, span, name)
			if err != nil {
				return nil, fmt.Errorf("%s: frame %d: %w", source, i, err)
			}
			if !ok {
				continue
			}

			if cur, found := out.Get(name); found {
				if err := cur.Append(frag); err != nil {
					return nil, fmt.Errorf("%s: frame %d: %w", source, i, err)
				}
			} else {
				out.Set(name, frag)
			}
		}

		if covers(out, channels, span) {
			logger.Debug("requested span covered", log.Int("frame", i), log.Span("span", span))
			break
		}
	}

	var result *multierror.Error
	for _, name := range channels {
		if _, ok := out.Get(name); ok {
			continue
		}
		e := &errs.ChannelReadError{Channel: name, Source: source}
		if span.HasStart() || span.HasEnd() {
			e.Span = span.String()
		}
		result = multierror.Append(result, e)
	}
	if err := result.ErrorOrNil(); err != nil {
		if len(result.Errors) == 1 {
			return nil, result.Errors[0]
		}

		return nil, err
	}

	ordered := series.NewDict()
	for _, name := range channels {
		s, _ := out.Get(name)
		ordered.Set(name, s)
	}

	return ordered, nil
}

// covers reports whether span is bounded and every channel in d covers it.
func covers(d *series.Dict, channels []string, span gps.Span) bool {
	if !span.Bounded() {
		return false
	}
	for _, name := range channels {
		s, ok := d.Get(name)
		if !ok || !s.Span().Covers(span) {
			return false
		}
	}

	return true
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
