package stream

import (
	"bytes"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/endian"
	"github.com/arloliu/gwf/errs"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/frame"
	"github.com/arloliu/gwf/gps"
	"github.com/stretchr/testify/require"
)

func rampVect(t *testing.T, name string, n int, dt float64) *frame.Vect {
	t.Helper()

	v, err := frame.NewVect(name, format.Vect8R, "strain", frame.NewDimension(uint64(n), dt, "s", 0))
	require.NoError(t, err)
	values := dtype.View[float64](v.Data)
	for i := range values {
		values[i] = float64(i) * 0.5
	}

	return v
}

func testFrames(t *testing.T) []*frame.Frame {
	t.Helper()

	h1, _ := frame.DetectorByPrefix("H1")
	frames := make([]*frame.Frame, 0, 2)
	for i := range 2 {
		start := gps.New(1126259462+int64(i), 0)
		f := frame.NewFrame("gwf", 5, uint32(i), start, 1, h1)

		adc := frame.NewADCData("H1:ADC", 0, 0, 16, 16)
		av, err := frame.NewVect("H1:ADC", format.Vect2S, "counts", frame.NewDimension(16, 1.0/16, "s", 0))
		require.NoError(t, err)
		counts := dtype.View[int16](av.Data)
		for j := range counts {
			counts[j] = int16(j*100 - 800)
		}
		adc.AppendData(av)
		f.AppendADC(adc)

		proc := frame.NewProcData("H1:PROC", "H1:PROC", frame.ProcTimeSeries, frame.ProcUnknownSubType,
			0, 1, 0, 0, 0, 0)
		proc.AppendData(rampVect(t, "H1:PROC", 64, 1.0/64))
		cv, err := frame.NewVect("H1:PROC_Z", format.Vect16C, "", frame.NewDimension(4, 0.25, "s", 0))
		require.NoError(t, err)
		copy(dtype.View[complex128](cv.Data), []complex128{1 + 2i, -3i, 4, 0})
		proc.AppendData(cv)
		f.AppendProc(proc)

		// Only the first frame carries the simulated channel.
		if i == 0 {
			sim := frame.NewSimData("H1:SIM", "", 8, 0.5, 0, 0)
			sv, err := frame.NewVect("H1:SIM", format.Vect4R, "m", frame.NewDimension(4, 1.0/8, "s", 0))
			require.NoError(t, err)
			copy(dtype.View[float32](sv.Data), []float32{1.5, -2.25, 3, 0})
			sim.AppendData(sv)
			f.AppendSim(sim)
		}

		frames = append(frames, f)
	}

	return frames
}

func encodeFrames(t *testing.T, frames []*frame.Frame, opts ...WriterOption) []byte {
	t.Helper()

	w, err := NewWriter(opts...)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.Encode(&buf, frames))

	return buf.Bytes()
}

func requireChannelEqual(t *testing.T, want, got frame.Channel) {
	t.Helper()

	for _, v := range got.Base().Data {
		v.Compress = format.CompressionNone
	}
	require.Equal(t, want, got)
}

func TestWriter_RoundTrip(t *testing.T) {
	orders := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}
	codecs := []struct {
		ct    format.CompressionType
		level int
	}{
		{format.CompressionNone, 0},
		{format.CompressionGzip, 6},
		{format.CompressionZstd, 3},
		{format.CompressionS2, 1},
		{format.CompressionLZ4, 0},
		{format.CompressionLZ4, 9},
	}

	for orderName, order := range orders {
		for _, c := range codecs {
			t.Run(orderName+"/"+c.ct.String(), func(t *testing.T) {
				frames := testFrames(t)
				data := encodeFrames(t, frames, WithByteOrder(order), WithCompression(c.ct, c.level))

				r, err := NewReader(bytes.NewReader(data), int64(len(data)), WithChecksumVerification())
				require.NoError(t, err)
				defer r.Close()

				require.Equal(t, order, r.Header().Order)
				require.Equal(t, len(frames), r.FrameCount())

				for i, want := range frames {
					got, err := r.ReadFrame(i)
					require.NoError(t, err)
					require.Equal(t, want.Name, got.Name)
					require.Equal(t, want.Run, got.Run)
					require.Equal(t, want.Number, got.Number)
					require.Equal(t, want.GTime, got.GTime)
					require.Equal(t, want.ULeapS, got.ULeapS)
					require.Equal(t, want.Dt, got.Dt)
					require.Equal(t, want.Detectors, got.Detectors)
					require.Empty(t, got.ADC)
					require.Empty(t, got.Proc)

					for _, ct := range []format.ChannelType{format.ChannelADC, format.ChannelProc, format.ChannelSim} {
						for _, wc := range want.Channels(ct) {
							gc, ok, err := r.ReadChannel(i, wc.Base().Name, ct)
							require.NoError(t, err)
							require.True(t, ok)
							requireChannelEqual(t, wc, gc)
						}
					}
				}
			})
		}
	}
}

func TestReader_TOC(t *testing.T) {
	frames := testFrames(t)
	data := encodeFrames(t, frames)

	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	toc := r.TOC()
	require.Len(t, toc.Frames, 2)
	require.Equal(t, gps.New(1126259463, 0), toc.Frames[1].GTime)
	require.Equal(t, int32(5), toc.Frames[1].Run)
	require.Equal(t, []string{"H1:ADC"}, toc.Names(format.ChannelADC))
	require.Equal(t, []string{"H1:PROC"}, toc.Names(format.ChannelProc))
	require.Equal(t, []string{"H1:SIM"}, toc.Names(format.ChannelSim))

	_, ok := toc.Position(format.ChannelSim, "H1:SIM", 0)
	require.True(t, ok)
	_, ok = toc.Position(format.ChannelSim, "H1:SIM", 1)
	require.False(t, ok)
}

func TestReader_ReadChannelAbsent(t *testing.T) {
	data := encodeFrames(t, testFrames(t))
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	c, ok, err := r.ReadChannel(1, "H1:SIM", format.ChannelSim)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, c)

	_, ok, err = r.ReadChannel(0, "H1:MISSING", format.ChannelProc)
	require.NoError(t, err)
	require.False(t, ok)

	// Present, but as a different type.
	_, ok, err = r.ReadChannel(0, "H1:ADC", format.ChannelProc)
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = r.ReadChannel(0, "H1:ADC", format.ChannelType(7))
	require.ErrorIs(t, err, errs.ErrInvalidChannelType)
}

func TestReader_FrameOutOfRange(t *testing.T) {
	data := encodeFrames(t, testFrames(t))
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, i := range []int{-1, 2, 10} {
		_, err := r.ReadFrame(i)
		require.ErrorIs(t, err, errs.ErrFrameOutOfRange)

		_, _, err = r.ReadChannel(i, "H1:ADC", format.ChannelADC)
		require.ErrorIs(t, err, errs.ErrFrameOutOfRange)
	}
}

func TestReader_EmptyFile(t *testing.T) {
	data := encodeFrames(t, nil)
	r, err := NewReader(bytes.NewReader(data), int64(len(data)), WithChecksumVerification())
	require.NoError(t, err)
	require.Equal(t, 0, r.FrameCount())

	_, err = r.ReadFrame(0)
	require.ErrorIs(t, err, errs.ErrFrameOutOfRange)
}

func TestReader_ChecksumMismatch(t *testing.T) {
	data := encodeFrames(t, testFrames(t), WithCompression(format.CompressionNone, 0))
	// Flip a byte inside the first frame header record.
	data[HeaderSize+recordPrefixSize+3] ^= 0xff

	_, err := NewReader(bytes.NewReader(data), int64(len(data)), WithChecksumVerification())
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestReader_Corrupt(t *testing.T) {
	good := encodeFrames(t, testFrames(t))

	t.Run("bad magic", func(t *testing.T) {
		data := bytes.Clone(good)
		data[1] = 'X'
		_, err := NewReader(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("too small", func(t *testing.T) {
		data := good[:HeaderSize]
		_, err := NewReader(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("truncated", func(t *testing.T) {
		data := good[:len(good)-1]
		_, err := NewReader(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrInvalidTrailer)
	})

	t.Run("bad toc position", func(t *testing.T) {
		data := bytes.Clone(good)
		order := endian.GetNativeEngine()
		trailer := data[len(data)-TrailerSize:]
		order.PutUint64(trailer[16:24], HeaderSize)
		_, err := NewReader(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, errs.ErrInvalidRecord)
	})
}

func TestParseFileHeader(t *testing.T) {
	for _, order := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		h, err := ParseFileHeader(NewFileHeader(order).Bytes())
		require.NoError(t, err)
		require.Equal(t, order, h.Order)
		require.Equal(t, uint8(VersionMajor), h.VersionMajor)
		require.Equal(t, uint8(LibraryTag), h.Library)
	}

	b := NewFileHeader(endian.GetLittleEndianEngine()).Bytes()
	b[5] = 9
	_, err := ParseFileHeader(b)
	require.ErrorIs(t, err, errs.ErrInvalidHeader)

	b = NewFileHeader(endian.GetLittleEndianEngine()).Bytes()
	b[12] ^= 0x01
	_, err = ParseFileHeader(b)
	require.ErrorIs(t, err, errs.ErrInvalidHeader)

	_, err = ParseFileHeader(b[:10])
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestTrailer(t *testing.T) {
	order := endian.GetBigEndianEngine()
	want := Trailer{NFrames: 3, FileSize: 4096, TOCPosition: 2048, Checksum: 0xdeadbeef}

	got, err := ParseTrailer(want.Bytes(order), order, 4096)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = ParseTrailer(want.Bytes(order), order, 4095)
	require.ErrorIs(t, err, errs.ErrInvalidTrailer)

	want.TOCPosition = 4090
	_, err = ParseTrailer(want.Bytes(order), order, 4096)
	require.ErrorIs(t, err, errs.ErrInvalidTrailer)
}

func TestNewWriter_InvalidCompression(t *testing.T) {
	_, err := NewWriter(WithCompression(format.CompressionType(0x7f), 1))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestWriter_StringTooLong(t *testing.T) {
	f := frame.NewFrame(string(make([]byte, 70000)), 0, 0, gps.New(1, 0), 1)
	w, err := NewWriter()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Error(t, w.Encode(&buf, []*frame.Frame{f}))
	require.Zero(t, buf.Len())
}

func TestWriteFileOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "H-H1_TEST-1126259462-2.gwf")
	frames := testFrames(t)

	w, err := NewWriter(WithCompression(format.CompressionZstd, 19))
	require.NoError(t, err)
	require.NoError(t, w.WriteFile(path, frames))

	r, err := Open(path, WithChecksumVerification())
	require.NoError(t, err)
	require.Equal(t, 2, r.FrameCount())

	c, ok, err := r.ReadChannel(1, "H1:PROC", format.ChannelProc)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{0, 0.5, 1, 1.5}, dtype.View[float64](c.Base().Data[0].Data)[:4])

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing.gwf"))
	require.Error(t, err)
}

func TestReader_VectorAlignment(t *testing.T) {
	f := frame.NewFrame("align", 0, 0, gps.New(1000, 0), 1)
	proc := frame.NewProcData("H1:FLAT", "", frame.ProcTimeSeries, frame.ProcUnknownSubType, 0, 1, 0, 0, 0, 0)
	v, err := frame.NewVect("H1:FLAT", format.Vect16C, "", frame.NewDimension(512, 1.0/512, "s", 0))
	require.NoError(t, err)
	values := dtype.View[complex128](v.Data)
	for i := range values {
		values[i] = complex(1, -1)
	}
	proc.AppendData(v)
	f.AppendProc(proc)

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionGzip, format.CompressionZstd, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			data := encodeFrames(t, []*frame.Frame{f}, WithCompression(ct, 0), WithByteOrder(endian.GetBigEndianEngine()))
			r, err := NewReader(bytes.NewReader(data), int64(len(data)))
			require.NoError(t, err)
			defer r.Close()

			c, ok, err := r.ReadChannel(0, "H1:FLAT", format.ChannelProc)
			require.NoError(t, err)
			require.True(t, ok)

			got := c.Base().Data[0]
			require.Equal(t, ct, got.Compress)
			require.Zero(t, uintptr(unsafe.Pointer(unsafe.SliceData(got.Data)))%8)
			for _, x := range dtype.View[complex128](got.Data) {
				require.Equal(t, complex(1, -1), x)
			}
		})
	}
}
