package stream

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/internal/hash"
	"github.com/arloliu/gwf/internal/options"
)

// Reader provides random access to the frames and channel records of a frame
// file. The header, trailer and table of contents are decoded when the Reader
// is created; frame headers and channel records are decoded on demand.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r       io.ReaderAt
	size    int64
	closer  io.Closer
	header  FileHeader
	trailer Trailer
	toc     *frame.TOC
}

// NewReader creates a Reader over size bytes of r.
func NewReader(r io.ReaderAt, size int64, opts ...ReaderOption) (*Reader, error) {
	cfg := &readerConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if size < HeaderSize+TrailerSize {
		return nil, fmt.Errorf("%w: file of %d bytes is too small", errs.ErrInvalidHeader, size)
	}

	sr := &Reader{r: r, size: size}

	buf := make([]byte, HeaderSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("read file header: %w", err)
	}
	header, err := ParseFileHeader(buf)
	if err != nil {
		return nil, err
	}
	sr.header = header

	buf = make([]byte, TrailerSize)
	if _, err := r.ReadAt(buf, size-TrailerSize); err != nil {
		return nil, fmt.Errorf("read file trailer: %w", err)
	}
	trailer, err := ParseTrailer(buf, header.Order, size)
	if err != nil {
		return nil, err
	}
	sr.trailer = trailer

	if cfg.verifyChecksum {
		if err := sr.verifyChecksum(); err != nil {
			return nil, err
		}
	}

	class, payload, err := sr.readRecord(int64(trailer.TOCPosition))
	if err != nil {
		return nil, fmt.Errorf("table of contents: %w", err)
	}
	if class != format.ClassTOC {
		return nil, fmt.Errorf("%w: expected table of contents, found %s", errs.ErrInvalidRecord, class)
	}
	toc, err := decodeTOC(payload, header.Order)
	if err != nil {
		return nil, err
	}
	if len(toc.Frames) != int(trailer.NFrames) {
		return nil, fmt.Errorf("%w: trailer counts %d frames, table of contents %d",
			errs.ErrInvalidTrailer, trailer.NFrames, len(toc.Frames))
	}
	sr.toc = toc

	return sr, nil
}

// Open opens the frame file at path. The returned Reader owns the file and
// closes it on Close.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat frame file: %w", err)
	}

	r, err := NewReader(f, info.Size(), opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f

	return r, nil
}

// Header returns the file header.
func (r *Reader) Header() FileHeader {
	return r.header
}

// FrameCount returns the number of frames in the file.
func (r *Reader) FrameCount() int {
	return len(r.toc.Frames)
}

// TOC returns the table of contents. The caller must not modify it.
func (r *Reader) TOC() *frame.TOC {
	return r.toc
}

// ReadFrame decodes the header of frame i. The returned frame holds no
// channel records; use ReadChannel to fetch them.
//
// It returns errs.ErrFrameOutOfRange when i is not a frame index.
func (r *Reader) ReadFrame(i int) (*frame.Frame, error) {
	if i < 0 || i >= len(r.toc.Frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", errs.ErrFrameOutOfRange, i, len(r.toc.Frames))
	}

	class, payload, err := r.readRecord(r.toc.Frames[i].Position)
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", i, err)
	}
	if class != format.ClassFrameH {
		return nil, fmt.Errorf("%w: frame %d: expected frame header, found %s", errs.ErrInvalidRecord, i, class)
	}

	return decodeFrameHeader(payload, r.header.Order)
}

// ReadChannel decodes the record of channel name of type ct in frame i.
//
// The boolean result is false, with a nil error, when frame i holds no such
// channel. It returns errs.ErrFrameOutOfRange when i is not a frame index.
func (r *Reader) ReadChannel(i int, name string, ct format.ChannelType) (frame.Channel, bool, error) {
	if i < 0 || i >= len(r.toc.Frames) {
		return nil, false, fmt.Errorf("%w: frame %d of %d", errs.ErrFrameOutOfRange, i, len(r.toc.Frames))
	}
	if !ct.Valid() {
		return nil, false, &errs.InvalidChannelTypeError{Channel: name, Type: ct.String()}
	}

	pos, ok := r.toc.Position(ct, name, i)
	if !ok {
		return nil, false, nil
	}

	class, payload, err := r.readRecord(pos)
	if err != nil {
		return nil, false, fmt.Errorf("frame %d: channel %s: %w", i, name, err)
	}
	if class != ct.Class() {
		return nil, false, fmt.Errorf("%w: frame %d: channel %s: expected %s record, found %s",
			errs.ErrInvalidRecord, i, name, ct.Class(), class)
	}

	c, err := decodeChannel(class, payload, r.header.Order)
	if err != nil {
		return nil, false, fmt.Errorf("frame %d: %w", i, err)
	}

	return c, true, nil
}

// Close releases the underlying file when the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil

	return err
}

// readRecord reads the record starting at pos.
func (r *Reader) readRecord(pos int64) (format.RecordClass, []byte, error) {
	limit := r.size - TrailerSize
	if pos < HeaderSize || pos+recordPrefixSize > limit {
		return 0, nil, fmt.Errorf("%w: record offset %d out of range", errs.ErrInvalidRecord, pos)
	}

	prefix := make([]byte, recordPrefixSize)
	if _, err := r.r.ReadAt(prefix, pos); err != nil {
		return 0, nil, fmt.Errorf("read record prefix: %w", err)
	}
	length := r.header.Order.Uint64(prefix[0:8])
	if length < recordPrefixSize || length > uint64(limit-pos) {
		return 0, nil, fmt.Errorf("%w: record length %d out of range at offset %d", errs.ErrInvalidRecord, length, pos)
	}

	record := make([]byte, length)
	if _, err := r.r.ReadAt(record, pos); err != nil && !errors.Is(err, io.EOF) {
		return 0, nil, fmt.Errorf("read record: %w", err)
	}

	return splitRecord(record, r.header.Order)
}

func (r *Reader) verifyChecksum() error {
	d := hash.NewDigest()
	if _, err := io.Copy(d, io.NewSectionReader(r.r, 0, r.size-TrailerSize)); err != nil {
		return fmt.Errorf("read frame file: %w", err)
	}
	if sum := d.Sum64(); sum != r.trailer.Checksum {
		return fmt.Errorf("%w: computed %016x, recorded %016x", errs.ErrChecksumMismatch, sum, r.trailer.Checksum)
	}

	return nil
}
