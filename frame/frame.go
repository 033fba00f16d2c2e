package frame

import (
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/gps"
)

// Frame is one frame header with its channel records.
type Frame struct {
	Name        string
	Run         int32
	Number      uint32
	DataQuality uint32
	// GTime is the frame start.
	GTime gps.Time
	// ULeapS is the number of leap seconds between GPS and UTC at GTime.
	ULeapS uint16
	// Dt is the frame duration in seconds.
	Dt        float64
	Detectors []Detector

	ADC  []*ADCData
	Proc []*ProcData
	Sim  []*SimData
}

// NewFrame creates an empty frame starting at gtime and lasting dt seconds.
func NewFrame(name string, run int32, number uint32, gtime gps.Time, dt float64, detectors ...Detector) *Frame {
	return &Frame{
		Name:      name,
		Run:       run,
		Number:    number,
		GTime:     gtime,
		ULeapS:    LeapSeconds(gtime),
		Dt:        dt,
		Detectors: detectors,
	}
}

// Span returns the interval covered by the frame.
func (f *Frame) Span() gps.Span {
	return gps.NewSpan(f.GTime, f.GTime.AddSeconds(f.Dt))
}

// AppendADC appends an ADC record.
func (f *Frame) AppendADC(c *ADCData) { f.ADC = append(f.ADC, c) }

// AppendProc appends a processed record.
func (f *Frame) AppendProc(c *ProcData) { f.Proc = append(f.Proc, c) }

// AppendSim appends a simulated record.
func (f *Frame) AppendSim(c *SimData) { f.Sim = append(f.Sim, c) }

// Append appends c to the record list matching its type.
func (f *Frame) Append(c Channel) {
	switch c := c.(type) {
	case *ADCData:
		f.AppendADC(c)
	case *ProcData:
		f.AppendProc(c)
	case *SimData:
		f.AppendSim(c)
	}
}

// Channel returns the first record of type t named name.
func (f *Frame) Channel(name string, t format.ChannelType) (Channel, bool) {
	switch t {
	case format.ChannelADC:
		return find(f.ADC, name)
	case format.ChannelProc:
		return find(f.Proc, name)
	case format.ChannelSim:
		return find(f.Sim, name)
	default:
		return nil, false
	}
}

// Channels returns every record of type t in order.
func (f *Frame) Channels(t format.ChannelType) []Channel {
	switch t {
	case format.ChannelADC:
		return toChannels(f.ADC)
	case format.ChannelProc:
		return toChannels(f.Proc)
	case format.ChannelSim:
		return toChannels(f.Sim)
	default:
		return nil
	}
}

func find[C Channel](list []C, name string) (Channel, bool) {
	for _, c := range list {
		if c.Base().Name == name {
			return c, true
		}
	}

	return nil, false
}

func toChannels[C Channel](list []C) []Channel {
	out := make([]Channel, len(list))
	for i, c := range list {
		out[i] = c
	}

	return out
}

// leapSeconds lists the GPS times at which the GPS-UTC offset increased,
// starting from 1980 when it was zero.
var leapSeconds = []gps.Time{
	gps.New(46828800, 0),   // 1981-07-01
	gps.New(78364801, 0),   // 1982-07-01
	gps.New(109900802, 0),  // 1983-07-01
	gps.New(173059203, 0),  // 1985-07-01
	gps.New(252028804, 0),  // 1988-01-01
	gps.New(315187205, 0),  // 1990-01-01
	gps.New(346723206, 0),  // 1991-01-01
	gps.New(393984007, 0),  // 1992-07-01
	gps.New(425520008, 0),  // 1993-07-01
	gps.New(457056009, 0),  // 1994-07-01
	gps.New(504489610, 0),  // 1996-01-01
	gps.New(551750411, 0),  // 1997-07-01
	gps.New(599184012, 0),  // 1999-01-01
	gps.New(820108813, 0),  // 2006-01-01
	gps.New(914803214, 0),  // 2009-01-01
	gps.New(1025136015, 0), // 2012-07-01
	gps.New(1119744016, 0), // 2015-07-01
	gps.New(1167264017, 0), // 2017-01-01
}

// LeapSeconds returns the number of leap seconds between GPS and UTC at t.
func LeapSeconds(t gps.Time) uint16 {
	var n uint16
	for _, ls := range leapSeconds {
		if t.Before(ls) {
			break
		}
		n++
	}

	return n
}
