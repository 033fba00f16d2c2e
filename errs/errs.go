// Package errs defines the errors returned by the gwf packages.
//
// Sentinel errors can be matched with errors.Is. The structured errors
// (UnsupportedTypeError, ChannelNotFoundError, ...) also match their sentinel
// through errors.Is, and can be extracted with errors.As for their details.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is matched by every UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported data type")
	// ErrChannelNotFound is matched by every ChannelNotFoundError.
	ErrChannelNotFound = errors.New("channel not found in table of contents")
	// ErrChannelRead is matched by every ChannelReadError.
	ErrChannelRead = errors.New("failed to read channel")
	// ErrInconsistentSpan is matched by every InconsistentSpanError.
	ErrInconsistentSpan = errors.New("inconsistent series span")
	// ErrInvalidChannelType is matched by every InvalidChannelTypeError.
	ErrInvalidChannelType = errors.New("invalid channel type")

	// ErrFrameOutOfRange is returned by a stream when a frame index is past its last frame.
	ErrFrameOutOfRange = errors.New("frame index out of range")
	// ErrInvalidHeader is returned when a file header fails validation.
	ErrInvalidHeader = errors.New("invalid frame file header")
	// ErrInvalidTrailer is returned when the end-of-file trailer fails validation.
	ErrInvalidTrailer = errors.New("invalid frame file trailer")
	// ErrInvalidRecord is returned when a record is truncated or of an unexpected class.
	ErrInvalidRecord = errors.New("invalid frame record")
	// ErrChecksumMismatch is returned when the file checksum does not match its content.
	ErrChecksumMismatch = errors.New("frame file checksum mismatch")
	// ErrInvalidCompression is returned for an unknown compression identifier.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrIncompatibleSeries is returned when appending series with different dt, unit or type.
	ErrIncompatibleSeries = errors.New("incompatible series")
	// ErrDiscontiguous is returned when appending a series that does not start where the other ends.
	ErrDiscontiguous = errors.New("cannot append discontiguous series")
	// ErrEmptyDict is returned when writing a frame with no series.
	ErrEmptyDict = errors.New("no series to write")
	// ErrNoSources is returned when reading with an empty source list.
	ErrNoSources = errors.New("no frame files to read")
	// ErrNoChannels is returned when reading with an empty channel list.
	ErrNoChannels = errors.New("no channels requested")
)

// UnsupportedTypeError reports an element type or vector type tag with no mapping.
type UnsupportedTypeError struct {
	// Type describes the offending type, either a Go type name or a vector tag.
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedType, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ChannelNotFoundError reports a channel absent from a stream's table of contents.
type ChannelNotFoundError struct {
	Channel string
	Source  string
}

func (e *ChannelNotFoundError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("channel %s not found in table of contents", e.Channel)
	}

	return fmt.Sprintf("channel %s not found in table of contents of %s", e.Channel, e.Source)
}

func (e *ChannelNotFoundError) Is(target error) bool {
	return target == ErrChannelNotFound
}

// ChannelReadError reports a channel that matched no data after a full scan of a file.
type ChannelReadError struct {
	Channel string
	Source  string
	// Span is the requested interval, empty when the request was unbounded.
	Span string
}

func (e *ChannelReadError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed to read %q from %q", e.Channel, e.Source)
	if e.Span != "" {
		sb.WriteString(" for ")
		sb.WriteString(e.Span)
	}

	return sb.String()
}

func (e *ChannelReadError) Is(target error) bool {
	return target == ErrChannelRead
}

// InconsistentSpanError reports series that cannot share one frame because their
// start (or end) times differ and no explicit boundary was given.
type InconsistentSpanError struct {
	// Edge is "start" or "end".
	Edge string
}

func (e *InconsistentSpanError) Error() string {
	return fmt.Sprintf("cannot write multiple series to a single frame with different %s times, "+
		"please write into different frames", e.Edge)
}

func (e *InconsistentSpanError) Is(target error) bool {
	return target == ErrInconsistentSpan
}

// InvalidChannelTypeError reports a channel type string other than adc, proc or sim.
type InvalidChannelTypeError struct {
	Channel string
	Type    string
}

func (e *InvalidChannelTypeError) Error() string {
	return fmt.Sprintf("invalid channel type %q for %s, please select one of 'adc', 'proc', or 'sim'",
		e.Type, e.Channel)
}

func (e *InvalidChannelTypeError) Is(target error) bool {
	return target == ErrInvalidChannelType
}
