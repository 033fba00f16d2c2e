package stream

import (
	"fmt"
	"math"

	"github.com/arloliu/gwf/compress"
	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/endian"
	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
)

// recordDecoder reads the payload of one record. The first short read sets
// err; later reads return zero values so callers check err once at the end.
type recordDecoder struct {
	b     []byte
	off   int
	order endian.EndianEngine
	err   error
}

func (d *recordDecoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.b)-d.off < n {
		d.err = fmt.Errorf("%w: truncated at offset %d", errs.ErrInvalidRecord, d.off)
		return nil
	}
	out := d.b[d.off : d.off+n]
	d.off += n

	return out
}

func (d *recordDecoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return d.order.Uint16(b)
	}

	return 0
}

func (d *recordDecoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return d.order.Uint32(b)
	}

	return 0
}

func (d *recordDecoder) u64() uint64 {
	if b := d.take(8); b != nil {
		return d.order.Uint64(b)
	}

	return 0
}

func (d *recordDecoder) i32() int32 { return int32(d.u32()) }
func (d *recordDecoder) f32() float32 { return math.Float32frombits(d.u32()) }
func (d *recordDecoder) f64() float64 { return math.Float64frombits(d.u64()) }
func (d *recordDecoder) str() string { return string(d.take(int(d.u16()))) }

func (d *recordDecoder) gtime() gps.Time {
	sec := d.u32()
	nsec := d.u32()

	return gps.New(int64(sec), int64(nsec))
}

// splitRecord validates a record prefix and returns its class and payload.
func splitRecord(b []byte, order endian.EndianEngine) (format.RecordClass, []byte, error) {
	if len(b) < recordPrefixSize {
		return 0, nil, fmt.Errorf("%w: %d bytes is shorter than a record prefix", errs.ErrInvalidRecord, len(b))
	}
	length := order.Uint64(b[0:8])
	if length < recordPrefixSize || length > uint64(len(b)) {
		return 0, nil, fmt.Errorf("%w: record length %d out of range", errs.ErrInvalidRecord, length)
	}

	return format.RecordClass(b[8]), b[recordPrefixSize:length], nil
}

func decodeFrameHeader(payload []byte, order endian.EndianEngine) (*frame.Frame, error) {
	d := &recordDecoder{b: payload, order: order}

	f := &frame.Frame{}
	f.Name = d.str()
	f.Run = d.i32()
	f.Number = d.u32()
	f.DataQuality = d.u32()
	f.GTime = d.gtime()
	f.ULeapS = d.u16()
	f.Dt = d.f64()

	n := int(d.u16())
	for i := 0; i < n && d.err == nil; i++ {
		det := frame.Detector{}
		det.Prefix = d.str()
		det.Name = d.str()
		det.Longitude = d.f64()
		det.Latitude = d.f64()
		det.Elevation = d.f32()
		f.Detectors = append(f.Detectors, det)
	}

	if d.err != nil {
		return nil, fmt.Errorf("frame header: %w", d.err)
	}

	return f, nil
}

func decodeChannel(class format.RecordClass, payload []byte, order endian.EndianEngine) (frame.Channel, error) {
	d := &recordDecoder{b: payload, order: order}
	base := frame.ChannelBase{Name: d.str(), Comment: d.str()}

	var c frame.Channel
	switch class {
	case format.ClassADC:
		adc := &frame.ADCData{ChannelBase: base}
		adc.ChannelGroup = d.u32()
		adc.ChannelNumber = d.u32()
		adc.NBits = d.u32()
		adc.Bias = d.f32()
		adc.Slope = d.f32()
		adc.Units = d.str()
		adc.SampleRate = d.f64()
		adc.TimeOffset = d.f64()
		adc.FShift = d.f64()
		adc.Phase = d.f32()
		adc.DataValid = d.u16()
		c = adc
	case format.ClassProc:
		proc := &frame.ProcData{ChannelBase: base}
		proc.ProcType = frame.ProcType(d.u16())
		proc.SubType = frame.ProcSubType(d.u16())
		proc.TimeOffset = d.f64()
		proc.TRange = d.f64()
		proc.FShift = d.f64()
		proc.Phase = d.f32()
		proc.FRange = d.f64()
		proc.BW = d.f64()
		c = proc
	case format.ClassSim:
		sim := &frame.SimData{ChannelBase: base}
		sim.SampleRate = d.f64()
		sim.TimeOffset = d.f64()
		sim.FShift = d.f64()
		sim.Phase = d.f32()
		c = sim
	default:
		return nil, fmt.Errorf("%w: class %d is not a channel record", errs.ErrInvalidRecord, class)
	}

	n := int(d.u32())
	for i := 0; i < n && d.err == nil; i++ {
		v, err := decodeVect(d)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", base.Name, err)
		}
		c.Base().AppendData(v)
	}

	if d.err != nil {
		return nil, fmt.Errorf("channel %s: %w", base.Name, d.err)
	}

	return c, nil
}

func decodeVect(d *recordDecoder) (*frame.Vect, error) {
	v := &frame.Vect{}
	v.Name = d.str()
	compressField := d.u16()
	v.Type = format.VectType(d.u16())
	nData := d.u64()
	nBytes := d.u64()

	nDim := int(d.u32())
	for i := 0; i < nDim && d.err == nil; i++ {
		dim := frame.Dimension{}
		dim.Nx = d.u64()
		dim.Dx = d.f64()
		dim.StartX = d.f64()
		dim.UnitX = d.str()
		v.Dims = append(v.Dims, dim)
	}
	v.UnitY = d.str()
	if nBytes > uint64(len(d.b)) {
		return nil, fmt.Errorf("%w: vector %s declares %d bytes", errs.ErrInvalidRecord, v.Name, nBytes)
	}
	payload := d.take(int(nBytes))
	if d.err != nil {
		return nil, d.err
	}

	dt, err := dtype.NativeFor(v.Type)
	if err != nil {
		return nil, fmt.Errorf("vector %s: %w", v.Name, err)
	}
	if nData > uint64(math.MaxInt/dt.Size()) {
		return nil, fmt.Errorf("%w: vector %s declares %d elements", errs.ErrInvalidRecord, v.Name, nData)
	}
	size := int(nData) * dt.Size()

	v.Compress = format.CompressionType(compressField & 0xff)
	dec, err := compress.GetDecompressor(v.Compress)
	if err != nil {
		return nil, fmt.Errorf("vector %s: %w", v.Name, err)
	}
	raw, err := dec.Decompress(payload, size)
	if err != nil {
		return nil, fmt.Errorf("vector %s: %w", v.Name, err)
	}

	// Samples are handed out through typed views, so they must live in a
	// buffer aligned for their element type and owned by the vector. Neither
	// the record payload nor a decompressor's output guarantees that.
	data := dtype.Alloc(dt, int(nData))
	copy(data, raw)

	littleEndian := compressField&littleEndianData != 0
	if littleEndian != endian.IsNativeLittleEndian() {
		endian.Swap(data, dt.SwapWidth())
	}
	v.Data = data

	return v, nil
}

func decodeTOC(payload []byte, order endian.EndianEngine) (*frame.TOC, error) {
	d := &recordDecoder{b: payload, order: order}
	toc := frame.NewTOC()

	nFrames := int(d.u32())
	if nFrames > len(payload) {
		return nil, fmt.Errorf("%w: table of contents declares %d frames", errs.ErrInvalidRecord, nFrames)
	}
	for i := 0; i < nFrames && d.err == nil; i++ {
		f := frame.TOCFrame{}
		f.GTime = d.gtime()
		f.Dt = d.f64()
		f.Run = d.i32()
		f.Number = d.u32()
		f.Position = int64(d.u64())
		toc.AddFrame(f)
	}

	for _, ct := range []format.ChannelType{format.ChannelADC, format.ChannelProc, format.ChannelSim} {
		nNames := int(d.u32())
		for j := 0; j < nNames && d.err == nil; j++ {
			name := d.str()
			for i := 0; i < nFrames && d.err == nil; i++ {
				if pos := int64(d.u64()); pos != 0 {
					toc.SetPosition(ct, name, i, pos)
				}
			}
		}
	}

	if d.err != nil {
		return nil, fmt.Errorf("table of contents: %w", d.err)
	}

	return toc, nil
}
