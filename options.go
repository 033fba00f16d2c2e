package gwf

import (
	"github.com/arloliu/gwf/compress"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/internal/options"
	"github.com/arloliu/gwf/log"
	"github.com/arloliu/gwf/stream"
)

// DefaultFrameName is the frame name written when none is given.
const DefaultFrameName = "gwf"

type config struct {
	span         gps.Span
	channelTypes map[string]string
	logger       log.Logger

	// read
	opener Opener

	// write
	frameName   string
	run         int32
	compression format.CompressionType
	level       int
	serializer  Serializer
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		logger:      log.Discard(),
		opener:      FileOpener(),
		frameName:   DefaultFrameName,
		compression: format.CompressionGzip,
		level:       format.DefaultCompressionLevel,
		serializer:  FileSerializer(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Option configures Read, Write and BuildFrame. Options that do not apply to
// an operation are ignored by it.
type Option = options.Option[*config]

// WithSpan restricts a read to span, or sets the frame boundaries of a write.
// A zero Start or End leaves that side open.
func WithSpan(span gps.Span) Option {
	return options.NoError(func(c *config) {
		c.span = span
	})
}

// WithStart sets the start of the span.
func WithStart(t gps.Time) Option {
	return options.NoError(func(c *config) {
		c.span.Start = t
	})
}

// WithEnd sets the end of the span.
func WithEnd(t gps.Time) Option {
	return options.NoError(func(c *config) {
		c.span.End = t
	})
}

// WithChannelTypes declares the type ("adc", "proc" or "sim", any case) of
// some channels. On read this bypasses the table of contents lookup for them;
// on write it picks the record type, which otherwise defaults to proc.
func WithChannelTypes(types map[string]string) Option {
	return options.NoError(func(c *config) {
		if c.channelTypes == nil {
			c.channelTypes = make(map[string]string, len(types))
		}
		for name, t := range types {
			c.channelTypes[name] = t
		}
	})
}

// WithLogger sets the logger for debug output. The default discards it.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithOpener replaces the way Read opens its sources.
func WithOpener(opener Opener) Option {
	return options.NoError(func(c *config) {
		if opener != nil {
			c.opener = opener
		}
	})
}

// WithChecksumVerification makes Read verify the checksum of every file it
// opens. It replaces any opener set before it.
func WithChecksumVerification() Option {
	return options.NoError(func(c *config) {
		c.opener = FileOpener(stream.WithChecksumVerification())
	})
}

// WithFrameName sets the name of a written frame. The default is "gwf".
func WithFrameName(name string) Option {
	return options.NoError(func(c *config) {
		c.frameName = name
	})
}

// WithRun sets the run number of a written frame.
func WithRun(run int32) Option {
	return options.NoError(func(c *config) {
		c.run = run
	})
}

// WithCompression selects the codec and level of a write. The default is gzip
// at level 6.
func WithCompression(ct format.CompressionType, level int) Option {
	return options.New(func(c *config) error {
		if _, err := compress.CreateCodec(ct, level); err != nil {
			return err
		}
		c.compression = ct
		c.level = level

		return nil
	})
}

// WithSerializer replaces the way Write stores its frame.
func WithSerializer(s Serializer) Option {
	return options.NoError(func(c *config) {
		if s != nil {
			c.serializer = s
		}
	})
}
