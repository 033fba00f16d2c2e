package series

import "github.com/arloliu/gwf/internal/options"

// Option configures a Series at construction.
type Option = options.Option[*Series]

// WithUnit sets the physical unit of the sample values, such as "strain" or "counts".
func WithUnit(unit string) Option {
	return options.NoError(func(s *Series) {
		s.unit = unit
	})
}

// WithChannel sets the channel the series was recorded from when it differs
// from the series name.
func WithChannel(channel string) Option {
	return options.NoError(func(s *Series) {
		s.channel = channel
	})
}
