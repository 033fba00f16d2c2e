// Package gps provides exact GPS timestamps and half-open time spans.
//
// A Time counts nanoseconds since the GPS epoch (1980-01-06 00:00:00 UTC) in
// an int64, which keeps frame, channel and vector timing free of floating
// point drift. Differences between times are plain time.Duration values.
package gps

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Time is a GPS timestamp in nanoseconds since the GPS epoch.
type Time int64

const nsPerSecond = int64(time.Second)

// New returns the time sec seconds plus nsec nanoseconds after the GPS epoch.
// nsec may be outside [0, 1e9).
func New(sec, nsec int64) Time {
	return Time(sec*nsPerSecond + nsec)
}

// FromFloat converts floating point GPS seconds to a Time, rounding to the
// nearest nanosecond.
func FromFloat(f float64) Time {
	sec := math.Floor(f)
	frac := math.Round((f - sec) * float64(nsPerSecond))

	return New(int64(sec), int64(frac))
}

// Seconds converts a floating point number of seconds to a duration rounded
// to the nearest nanosecond.
func Seconds(f float64) time.Duration {
	return time.Duration(math.Round(f * float64(nsPerSecond)))
}

// Parse parses a decimal GPS time such as "1126259462" or "1126259462.391".
// Digits beyond nanosecond resolution are rejected.
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid GPS time %q", s)
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" && (!hasFrac || fracPart == "") {
		return 0, fmt.Errorf("invalid GPS time %q", s)
	}

	var sec int64
	if intPart != "" {
		v, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid GPS time %q", s)
		}
		sec = v
	}

	var nsec int64
	if hasFrac && fracPart != "" {
		if len(fracPart) > 9 {
			return 0, fmt.Errorf("invalid GPS time %q: sub-nanosecond precision", s)
		}
		v, err := strconv.ParseInt(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid GPS time %q", s)
		}
		nsec = v
	}

	t := New(sec, nsec)
	if neg {
		t = -t
	}

	return t, nil
}

// Seconds returns the integer GPS seconds of t, rounded towards negative infinity.
func (t Time) Seconds() int64 {
	sec := int64(t) / nsPerSecond
	if int64(t)%nsPerSecond < 0 {
		sec--
	}

	return sec
}

// Nanoseconds returns the nanosecond remainder of t in [0, 1e9).
func (t Time) Nanoseconds() int64 {
	ns := int64(t) % nsPerSecond
	if ns < 0 {
		ns += nsPerSecond
	}

	return ns
}

// IsZero reports whether t is the zero time, used as the "unset" sentinel.
func (t Time) IsZero() bool {
	return t == 0
}

// Add returns t+d.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d)
}

// AddSeconds returns t plus f seconds, rounded to the nearest nanosecond.
func (t Time) AddSeconds(f float64) Time {
	return t.Add(Seconds(f))
}

// Sub returns the duration t-u.
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(t - u)
}

// Before reports whether t is before u.
func (t Time) Before(u Time) bool {
	return t < u
}

// After reports whether t is after u.
func (t Time) After(u Time) bool {
	return t > u
}

// Float returns t as floating point GPS seconds. Precision is lost below
// roughly a microsecond for present-day GPS times.
func (t Time) Float() float64 {
	return float64(t.Seconds()) + float64(t.Nanoseconds())/float64(nsPerSecond)
}

// String formats t as decimal seconds without trailing zeros.
func (t Time) String() string {
	if t < 0 {
		return "-" + (-t).String()
	}

	sec := strconv.FormatInt(t.Seconds(), 10)
	ns := t.Nanoseconds()
	if ns == 0 {
		return sec
	}

	frac := strings.TrimRight(fmt.Sprintf("%09d", ns), "0")

	return sec + "." + frac
}
