package gwf

import (
	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
)

// parseChannelTypes converts caller supplied type names.
func parseChannelTypes(types map[string]string) (map[string]format.ChannelType, error) {
	out := make(map[string]format.ChannelType, len(types))
	for name, t := range types {
		ct, ok := format.ParseChannelType(t)
		if !ok {
			return nil, &errs.InvalidChannelTypeError{Channel: name, Type: t}
		}
		out[name] = ct
	}

	return out, nil
}

// typeResolver finds the record type of channels in one stream. The table of
// contents is fetched on the first lookup that needs it.
type typeResolver struct {
	stream Stream
	source string
	known  map[string]format.ChannelType
	toc    *frame.TOC
}

func newTypeResolver(s Stream, source string, known map[string]format.ChannelType) *typeResolver {
	return &typeResolver{stream: s, source: source, known: known}
}

// resolve returns the type of every channel in names.
func (r *typeResolver) resolve(names []string) (map[string]format.ChannelType, error) {
	out := make(map[string]format.ChannelType, len(names))
	for _, name := range names {
		ct, err := r.lookup(name)
		if err != nil {
			return nil, err
		}
		out[name] = ct
	}

	return out, nil
}

// lookup checks the Sim, Proc and ADC name lists in that order.
func (r *typeResolver) lookup(name string) (format.ChannelType, error) {
	if ct, ok := r.known[name]; ok {
		return ct, nil
	}

	if r.toc == nil {
		r.toc = r.stream.TOC()
	}
	if r.toc != nil {
		for _, ct := range format.ChannelTypes {
			if r.toc.Contains(ct, name) {
				return ct, nil
			}
		}
	}

	return 0, &errs.ChannelNotFoundError{Channel: name, Source: r.source}
}
