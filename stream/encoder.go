package stream

import (
	"fmt"
	"math"

	"github.com/arloliu/gwf/compress"
	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/endian"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/internal/pool"
)

// recordEncoder appends records to a file buffer in one byte order.
type recordEncoder struct {
	buf   *pool.ByteBuffer
	order endian.EndianEngine
	codec compress.Codec
}

func (e *recordEncoder) pos() int64 { return int64(e.buf.Len()) }

func (e *recordEncoder) u16(v uint16) { e.buf.B = e.order.AppendUint16(e.buf.B, v) }
func (e *recordEncoder) u32(v uint32) { e.buf.B = e.order.AppendUint32(e.buf.B, v) }
func (e *recordEncoder) u64(v uint64) { e.buf.B = e.order.AppendUint64(e.buf.B, v) }
func (e *recordEncoder) i32(v int32) { e.u32(uint32(v)) }
func (e *recordEncoder) f32(v float32) { e.u32(math.Float32bits(v)) }
func (e *recordEncoder) f64(v float64) { e.u64(math.Float64bits(v)) }

func (e *recordEncoder) str(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes is too long for a frame record", len(s))
	}
	e.u16(uint16(len(s)))
	e.buf.B = append(e.buf.B, s...)

	return nil
}

func (e *recordEncoder) gtime(t gps.Time) {
	e.u32(uint32(t.Seconds()))
	e.u32(uint32(t.Nanoseconds()))
}

// begin reserves the record prefix and returns the record offset.
func (e *recordEncoder) begin(class format.RecordClass) int {
	start := e.buf.Len()
	e.buf.ExtendOrGrow(recordPrefixSize)
	e.buf.B[start+8] = uint8(class)

	return start
}

// end patches the length of the record started at start.
func (e *recordEncoder) end(start int) {
	e.order.PutUint64(e.buf.B[start:start+8], uint64(e.buf.Len()-start))
}

func (e *recordEncoder) frameHeader(f *frame.Frame) error {
	start := e.begin(format.ClassFrameH)

	if err := e.str(f.Name); err != nil {
		return err
	}
	e.i32(f.Run)
	e.u32(f.Number)
	e.u32(f.DataQuality)
	e.gtime(f.GTime)
	e.u16(f.ULeapS)
	e.f64(f.Dt)

	e.u16(uint16(len(f.Detectors)))
	for _, d := range f.Detectors {
		if err := e.str(d.Prefix); err != nil {
			return err
		}
		if err := e.str(d.Name); err != nil {
			return err
		}
		e.f64(d.Longitude)
		e.f64(d.Latitude)
		e.f32(d.Elevation)
	}

	e.end(start)

	return nil
}

func (e *recordEncoder) channel(c frame.Channel) error {
	base := c.Base()
	start := e.begin(c.Type().Class())

	if err := e.str(base.Name); err != nil {
		return err
	}
	if err := e.str(base.Comment); err != nil {
		return err
	}

	switch c := c.(type) {
	case *frame.ADCData:
		e.u32(c.ChannelGroup)
		e.u32(c.ChannelNumber)
		e.u32(c.NBits)
		e.f32(c.Bias)
		e.f32(c.Slope)
		if err := e.str(c.Units); err != nil {
			return err
		}
		e.f64(c.SampleRate)
		e.f64(c.TimeOffset)
		e.f64(c.FShift)
		e.f32(c.Phase)
		e.u16(c.DataValid)
	case *frame.ProcData:
		e.u16(uint16(c.ProcType))
		e.u16(uint16(c.SubType))
		e.f64(c.TimeOffset)
		e.f64(c.TRange)
		e.f64(c.FShift)
		e.f32(c.Phase)
		e.f64(c.FRange)
		e.f64(c.BW)
	case *frame.SimData:
		e.f64(c.SampleRate)
		e.f64(c.TimeOffset)
		e.f64(c.FShift)
		e.f32(c.Phase)
	}

	e.u32(uint32(len(base.Data)))
	for _, v := range base.Data {
		if err := e.vect(v); err != nil {
			return fmt.Errorf("channel %s: %w", base.Name, err)
		}
	}

	e.end(start)

	return nil
}

func (e *recordEncoder) vect(v *frame.Vect) error {
	d, err := v.DType()
	if err != nil {
		return err
	}
	if len(v.Data)%d.Size() != 0 {
		return fmt.Errorf("vector %s: %d bytes is not a whole number of %s elements", v.Name, len(v.Data), d)
	}

	scratch := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(scratch)

	payload, ct, err := e.vectPayload(v.Data, d, scratch)
	if err != nil {
		return fmt.Errorf("vector %s: %w", v.Name, err)
	}

	compressField := uint16(ct)
	if endian.IsLittleEndian(e.order) {
		compressField |= littleEndianData
	}

	if err := e.str(v.Name); err != nil {
		return err
	}
	e.u16(compressField)
	e.u16(uint16(v.Type))
	e.u64(uint64(len(v.Data) / d.Size()))
	e.u64(uint64(len(payload)))

	e.u32(uint32(len(v.Dims)))
	for _, dim := range v.Dims {
		e.u64(dim.Nx)
		e.f64(dim.Dx)
		e.f64(dim.StartX)
		if err := e.str(dim.UnitX); err != nil {
			return err
		}
	}
	if err := e.str(v.UnitY); err != nil {
		return err
	}
	e.buf.MustWrite(payload)

	return nil
}

// vectPayload converts native samples to the file byte order, using scratch
// when they must be swapped, and compresses them. Data that does not shrink is
// stored uncompressed.
func (e *recordEncoder) vectPayload(data []byte, d dtype.DType, scratch *pool.ByteBuffer) ([]byte, format.CompressionType, error) {
	raw := data
	if !endian.CompareNativeEndian(e.order) && d.SwapWidth() > 1 {
		scratch.MustWrite(data)
		endian.Swap(scratch.B, d.SwapWidth())
		raw = scratch.B
	}

	if e.codec.Type() != format.CompressionNone && len(raw) > 0 {
		compressed, err := e.codec.Compress(raw)
		if err != nil {
			return nil, 0, err
		}
		if len(compressed) < len(raw) {
			return compressed, e.codec.Type(), nil
		}
	}

	return raw, format.CompressionNone, nil
}

func (e *recordEncoder) toc(t *frame.TOC) error {
	start := e.begin(format.ClassTOC)

	e.u32(uint32(len(t.Frames)))
	for _, f := range t.Frames {
		e.gtime(f.GTime)
		e.f64(f.Dt)
		e.i32(f.Run)
		e.u32(f.Number)
		e.u64(uint64(f.Position))
	}

	for _, ct := range []format.ChannelType{format.ChannelADC, format.ChannelProc, format.ChannelSim} {
		names := t.Names(ct)
		e.u32(uint32(len(names)))
		for _, name := range names {
			if err := e.str(name); err != nil {
				return err
			}
			for i := range t.Frames {
				pos, _ := t.Position(ct, name, i)
				e.u64(uint64(pos))
			}
		}
	}

	e.end(start)

	return nil
}
