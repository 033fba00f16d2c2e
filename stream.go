package gwf

import (
	"slices"

	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/stream"
)

// Stream gives frame-by-frame access to one frame file. *stream.Reader
// implements it.
type Stream interface {
	// FrameCount returns the number of frames the stream reported when it
	// was opened.
	FrameCount() int
	// ReadFrame returns the header of frame i. It fails with an error
	// matching errs.ErrFrameOutOfRange when i is past the last frame.
	ReadFrame(i int) (*frame.Frame, error)
	// TOC returns the table of contents of the stream.
	TOC() *frame.TOC
	// ReadChannel returns the record of channel name of type ct in frame i.
	// The boolean result is false when the frame does not hold the channel.
	ReadChannel(i int, name string, ct format.ChannelType) (frame.Channel, bool, error)
	// Close releases the stream.
	Close() error
}

// Opener opens the frame file named by source.
type Opener func(source string) (Stream, error)

// Serializer writes frames to path with the given codec and level.
type Serializer func(path string, frames []*frame.Frame, ct format.CompressionType, level int) error

var _ Stream = (*stream.Reader)(nil)

// FileOpener returns an Opener for frame files on disk.
func FileOpener(opts ...stream.ReaderOption) Opener {
	return func(source string) (Stream, error) {
		r, err := stream.Open(source, opts...)
		if err != nil {
			return nil, err
		}

		return r, nil
	}
}

// FileSerializer returns a Serializer writing frame files on disk.
func FileSerializer(opts ...stream.WriterOption) Serializer {
	return func(path string, frames []*frame.Frame, ct format.CompressionType, level int) error {
		w, err := stream.NewWriter(slices.Concat(opts, []stream.WriterOption{stream.WithCompression(ct, level)})...)
		if err != nil {
			return err
		}

		return w.WriteFile(path, frames)
	}
}
