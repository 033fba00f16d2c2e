package frame

import "github.com/arloliu/gwf/format"

// Channel is implemented by the three channel record types: *ADCData,
// *ProcData and *SimData.
type Channel interface {
	// Base returns the fields shared by every channel record.
	Base() *ChannelBase
	// Type returns the channel record type.
	Type() format.ChannelType
	// DataOffset returns the offset in seconds of the record's data from the
	// frame start.
	DataOffset() float64
	// TimeRange returns the duration in seconds covered by the record, or 0
	// when the record type does not declare one.
	TimeRange() float64

	sealed()
}

// ChannelBase holds the fields common to all channel records.
type ChannelBase struct {
	Name    string
	Comment string
	// Data lists the vectors of the record in order. The vector holding the
	// channel samples is usually the only one, and usually named like the
	// channel.
	Data []*Vect
}

// Base returns b.
func (b *ChannelBase) Base() *ChannelBase { return b }

// AppendData appends a vector to the record.
func (b *ChannelBase) AppendData(v *Vect) { b.Data = append(b.Data, v) }

// ADCData is a raw digitizer channel record.
type ADCData struct {
	ChannelBase

	ChannelGroup  uint32
	ChannelNumber uint32
	NBits         uint32
	Bias          float32
	Slope         float32
	Units         string
	SampleRate    float64
	TimeOffset    float64
	FShift        float64
	Phase         float32
	DataValid     uint16
}

// NewADCData creates an ADC record. The calibration slope defaults to 1.
func NewADCData(name string, group, number, nBits uint32, sampleRate float64) *ADCData {
	return &ADCData{
		ChannelBase:   ChannelBase{Name: name},
		ChannelGroup:  group,
		ChannelNumber: number,
		NBits:         nBits,
		Slope:         1,
		SampleRate:    sampleRate,
	}
}

func (c *ADCData) Type() format.ChannelType { return format.ChannelADC }
func (c *ADCData) DataOffset() float64 { return c.TimeOffset }
func (c *ADCData) TimeRange() float64 { return 0 }
func (c *ADCData) sealed() {}

// ProcType classifies the content of a processed record.
type ProcType uint16

const (
	ProcUnknown          ProcType = 0
	ProcTimeSeries       ProcType = 1
	ProcFrequencySeries  ProcType = 2
	ProcOtherSeries1D    ProcType = 3
	ProcTimeFrequency    ProcType = 4
	ProcWavelets         ProcType = 5
	ProcMultiDimensional ProcType = 6
)

// ProcSubType refines ProcType for frequency series.
type ProcSubType uint16

// ProcUnknownSubType is used for everything that is not a frequency series.
const ProcUnknownSubType ProcSubType = 0

// ProcData is a processed channel record.
type ProcData struct {
	ChannelBase

	ProcType   ProcType
	SubType    ProcSubType
	TimeOffset float64
	TRange     float64
	FShift     float64
	Phase      float32
	FRange     float64
	BW         float64
}

// NewProcData creates a processed record.
func NewProcData(name, comment string, typ ProcType, subType ProcSubType,
	timeOffset, tRange, fShift float64, phase float32, fRange, bw float64,
) *ProcData {
	return &ProcData{
		ChannelBase: ChannelBase{Name: name, Comment: comment},
		ProcType:    typ,
		SubType:     subType,
		TimeOffset:  timeOffset,
		TRange:      tRange,
		FShift:      fShift,
		Phase:       phase,
		FRange:      fRange,
		BW:          bw,
	}
}

func (c *ProcData) Type() format.ChannelType { return format.ChannelProc }
func (c *ProcData) DataOffset() float64 { return c.TimeOffset }
func (c *ProcData) TimeRange() float64 { return c.TRange }
func (c *ProcData) sealed() {}

// SimData is a simulated channel record.
type SimData struct {
	ChannelBase

	SampleRate float64
	TimeOffset float64
	FShift     float64
	Phase      float32
}

// NewSimData creates a simulated record.
func NewSimData(name, comment string, sampleRate, timeOffset, fShift float64, phase float32) *SimData {
	return &SimData{
		ChannelBase: ChannelBase{Name: name, Comment: comment},
		SampleRate:  sampleRate,
		TimeOffset:  timeOffset,
		FShift:      fShift,
		Phase:       phase,
	}
}

func (c *SimData) Type() format.ChannelType { return format.ChannelSim }
func (c *SimData) DataOffset() float64 { return c.TimeOffset }
func (c *SimData) TimeRange() float64 { return 0 }
func (c *SimData) sealed() {}
