package gps

import "time"

// Span is the half-open interval [Start, End).
//
// A zero Start or End leaves that side unbounded.
type Span struct {
	Start Time
	End   Time
}

// NewSpan returns the span [start, end).
func NewSpan(start, end Time) Span {
	return Span{Start: start, End: end}
}

// HasStart reports whether the span is bounded below.
func (s Span) HasStart() bool {
	return !s.Start.IsZero()
}

// HasEnd reports whether the span is bounded above.
func (s Span) HasEnd() bool {
	return !s.End.IsZero()
}

// Bounded reports whether both sides of the span are set.
func (s Span) Bounded() bool {
	return s.HasStart() && s.HasEnd()
}

// IsZeroLength reports whether the span is bounded and Start equals End.
func (s Span) IsZeroLength() bool {
	return s.Bounded() && s.Start == s.End
}

// Duration returns End-Start. It is only meaningful for bounded spans.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Contains reports whether t lies in the span.
func (s Span) Contains(t Time) bool {
	if s.HasStart() && t < s.Start {
		return false
	}
	if s.HasEnd() && t >= s.End {
		return false
	}

	return true
}

// Covers reports whether other lies entirely within s.
func (s Span) Covers(other Span) bool {
	if s.HasStart() && (!other.HasStart() || other.Start < s.Start) {
		return false
	}
	if s.HasEnd() && (!other.HasEnd() || other.End > s.End) {
		return false
	}

	return true
}

// Overlaps reports whether s and other share at least one instant.
func (s Span) Overlaps(other Span) bool {
	if s.HasEnd() && other.HasStart() && other.Start >= s.End {
		return false
	}
	if other.HasEnd() && s.HasStart() && s.Start >= other.End {
		return false
	}

	return true
}

// String formats the span as "[start ... end)", using "-inf" and "+inf" for open sides.
func (s Span) String() string {
	start, end := "-inf", "+inf"
	if s.HasStart() {
		start = s.Start.String()
	}
	if s.HasEnd() {
		end = s.End.String()
	}

	return "[" + start + " ... " + end + ")"
}
