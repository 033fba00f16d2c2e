package stream

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/gwf/compress"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/internal/hash"
	"github.com/arloliu/gwf/internal/options"
	"github.com/arloliu/gwf/internal/pool"
)

// Writer serializes frames into frame files.
//
// A Writer holds only its configuration and may be reused and shared.
type Writer struct {
	cfg   *writerConfig
	codec compress.Codec
}

// NewWriter creates a Writer.
//
// Example:
//
//	w, err := stream.NewWriter(stream.WithCompression(format.CompressionZstd, 9))
//	if err != nil {
//		return err
//	}
//	err = w.WriteFile("H-H1_TEST-1126259462-4.gwf", frames)
func NewWriter(opts ...WriterOption) (*Writer, error) {
	cfg := defaultWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, cfg.level)
	if err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, codec: codec}, nil
}

// Encode writes frames as one complete frame file to dst.
func (w *Writer) Encode(dst io.Writer, frames []*frame.Frame) error {
	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := w.encode(buf, frames); err != nil {
		return err
	}

	if _, err := buf.WriteTo(dst); err != nil {
		return fmt.Errorf("write frame file: %w", err)
	}

	return nil
}

// WriteFile writes frames to a new file at path, replacing any existing file.
func (w *Writer) WriteFile(path string, frames []*frame.Frame) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close frame file: %w", cerr)
		}
	}()

	return w.Encode(f, frames)
}

func (w *Writer) encode(buf *pool.ByteBuffer, frames []*frame.Frame) error {
	e := &recordEncoder{buf: buf, order: w.cfg.order, codec: w.codec}
	buf.MustWrite(NewFileHeader(w.cfg.order).Bytes())

	toc := frame.NewTOC()
	for i, f := range frames {
		toc.AddFrame(frame.TOCFrame{
			GTime:    f.GTime,
			Dt:       f.Dt,
			Run:      f.Run,
			Number:   f.Number,
			Position: e.pos(),
		})
		if err := e.frameHeader(f); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		for _, ct := range []format.ChannelType{format.ChannelADC, format.ChannelProc, format.ChannelSim} {
			for _, c := range f.Channels(ct) {
				toc.SetPosition(ct, c.Base().Name, i, e.pos())
				if err := e.channel(c); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
		}
	}

	tocPos := e.pos()
	if err := e.toc(toc); err != nil {
		return err
	}

	trailer := Trailer{
		NFrames:     uint32(len(frames)),
		FileSize:    uint64(buf.Len() + TrailerSize),
		TOCPosition: uint64(tocPos),
		Checksum:    hash.Sum(buf.Bytes()),
	}
	buf.MustWrite(trailer.Bytes(w.cfg.order))

	return nil
}
