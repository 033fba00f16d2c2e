// Package gwf reads and writes gravitational-wave frame (GWF) files.
//
// A frame file holds a sequence of frames, each covering a stretch of GPS
// time and carrying named channel records of three kinds: raw digitizer (ADC),
// processed (Proc) and simulated (Sim) data. Each record holds one or more
// sample vectors. This package locates the requested channels in one or more
// files, trims their samples to a GPS interval and stitches the pieces into
// continuous series; and it builds frames from series and writes them out.
//
// # Reading
//
//	data, err := gwf.Read(
//	    []string{"H-H1_TEST-1126259456-16.gwf", "H-H1_TEST-1126259472-16.gwf"},
//	    []string{"H1:GDS-CALIB_STRAIN"},
//	    gwf.WithSpan(gps.NewSpan(gps.New(1126259460, 0), gps.New(1126259480, 0))),
//	)
//	if err != nil {
//	    return err
//	}
//	strain, _ := data.Get("H1:GDS-CALIB_STRAIN")
//	values, err := series.Values[float64](strain)
//
// Files must be given in time order. Every requested channel must cover the
// whole interval, or Read fails: errs.ChannelNotFoundError when a file's table
// of contents does not list the channel, errs.ChannelReadError when no frame in
// the interval holds it.
//
// # Writing
//
//	d := series.NewDict()
//	s, _ := series.New("H1:TEST", gps.New(1126259462, 0), 1.0/16384, samples, series.WithUnit("strain"))
//	d.Set(s.Name(), s)
//	err := gwf.Write("H-H1_TEST-1126259462-4.gwf", d,
//	    gwf.WithChannelTypes(map[string]string{"H1:TEST": "adc"}),
//	    gwf.WithCompression(format.CompressionZstd, 9),
//	)
//
// All series are written into a single frame; without WithSpan they must share
// the same start and end.
//
// # Package Structure
//
// The file layout itself is implemented by the stream package, the records by
// the frame package and the series container by the series package. This
// package only talks to streams through the Stream, Opener and Serializer
// contracts, so other frame file implementations can be plugged in with
// WithOpener and WithSerializer.
package gwf
