package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gwf"
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/series"
	"github.com/arloliu/gwf/stream"
)

// isolate keeps the user's config file and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"GWF_LOG_LEVEL", "GWF_COMPRESSION", "GWF_COMPRESSION_LEVEL",
		"GWF_FRAME_NAME", "GWF_RUN", "GWF_VERIFY",
	} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), err
}

// writeInput writes H1:TEST, eight float64 samples at 4 Hz from GPS 1000.
func writeInput(t *testing.T) string {
	t.Helper()

	s, err := series.New("H1:TEST", gps.New(1000, 0), 0.25,
		[]float64{0, 1, 2, 3, 4, 5, 6, 7}, series.WithUnit("m"))
	require.NoError(t, err)

	d := series.NewDict()
	d.Set(s.Name(), s)

	path := filepath.Join(t.TempDir(), "in.gwf")
	require.NoError(t, gwf.Write(path, d))

	return path
}

// writeFlat writes H1:FLAT, 1024 equal samples, which every codec shrinks.
func writeFlat(t *testing.T) string {
	t.Helper()

	values := make([]float64, 1024)
	for i := range values {
		values[i] = 1.5
	}
	s, err := series.New("H1:FLAT", gps.New(1000, 0), 1.0/256, values)
	require.NoError(t, err)

	d := series.NewDict()
	d.Set(s.Name(), s)

	path := filepath.Join(t.TempDir(), "flat.gwf")
	require.NoError(t, gwf.Write(path, d, gwf.WithCompression(format.CompressionNone, 0)))

	return path
}

func TestReadCommand(t *testing.T) {
	isolate(t)
	in := writeInput(t)

	t.Run("all samples", func(t *testing.T) {
		out, err := execute(t, "read", "-c", "H1:TEST", "--verify", in)
		require.NoError(t, err)
		require.Equal(t, `# H1:TEST t0=1000 dt=0.25 n=8 unit="m" dtype=float64
1000,0
1000.25,1
1000.5,2
1000.75,3
1001,4
1001.25,5
1001.5,6
1001.75,7
`, out)
	})

	t.Run("span", func(t *testing.T) {
		out, err := execute(t, "read", "-c", "H1:TEST", "--start", "1001", "--end", "1001.5", in)
		require.NoError(t, err)
		require.Equal(t, `# H1:TEST t0=1001 dt=0.25 n=2 unit="m" dtype=float64
1001,4
1001.25,5
`, out)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := execute(t, "read", in)
		require.ErrorContains(t, err, "channel")

		_, err = execute(t, "read", "-c", "H1:TEST", "--start", "soon", in)
		require.ErrorContains(t, err, "--start")

		_, err = execute(t, "read", "-c", "H1:MISSING", in)
		require.Error(t, err)

		_, err = execute(t, "read", "-c", "H1:TEST", "--type", "H1:TEST=fft", in)
		require.Error(t, err)

		_, err = execute(t, "read", "-c", "H1:TEST")
		require.Error(t, err)
	})
}

func TestCopyCommand(t *testing.T) {
	isolate(t)
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "out.gwf")

	_, err := execute(t, "copy", "-c", "H1:TEST", "--out", out,
		"--compression", "zstd", "--name", "COPY", "--run", "5",
		"--out-type", "H1:TEST=sim", "--start", "1000.5", in)
	require.NoError(t, err)

	r, err := stream.Open(out, stream.WithChecksumVerification())
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 1, r.FrameCount())
	toc := r.TOC()
	require.Equal(t, int32(5), toc.Frames[0].Run)
	require.Equal(t, gps.FromFloat(1000.5), toc.Frames[0].GTime)
	require.Equal(t, []string{"H1:TEST"}, toc.Names(format.ChannelSim))
	require.Empty(t, toc.Names(format.ChannelProc))

	f, err := r.ReadFrame(0)
	require.NoError(t, err)
	require.Equal(t, "COPY", f.Name)

	_, ok, err := r.ReadChannel(0, "H1:TEST", format.ChannelSim)
	require.NoError(t, err)
	require.True(t, ok)

	d, err := gwf.ReadFile(out, []string{"H1:TEST"})
	require.NoError(t, err)
	s, ok := d.Get("H1:TEST")
	require.True(t, ok)
	values, err := series.Values[float64](s)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3, 4, 5, 6, 7}, values)
}

func TestCopyCommand_ConfigPrecedence(t *testing.T) {
	isolate(t)
	in := writeFlat(t)
	out := filepath.Join(t.TempDir(), "out.gwf")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("compression = \"lz4\"\nrun = 2\nframe_name = \"FILE\"\n"), 0o600))
	t.Setenv("GWF_FRAME_NAME", "ENV")

	_, err := execute(t, "copy", "--config", cfgPath, "-c", "H1:FLAT", "-o", out, "--run", "9", in)
	require.NoError(t, err)

	r, err := stream.Open(out)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, int32(9), r.TOC().Frames[0].Run)

	f, err := r.ReadFrame(0)
	require.NoError(t, err)
	require.Equal(t, "ENV", f.Name)

	c, ok, err := r.ReadChannel(0, "H1:FLAT", format.ChannelProc)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, format.CompressionLZ4, c.Base().Data[0].Compress)
}

func TestCopyCommand_InvalidConfig(t *testing.T) {
	isolate(t)
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "out.gwf")

	_, err := execute(t, "copy", "-c", "H1:TEST", "-o", out, "--compression", "brotli", in)
	require.ErrorContains(t, err, "unknown compression")

	t.Setenv("GWF_RUN", "many")
	_, err = execute(t, "copy", "-c", "H1:TEST", "-o", out, in)
	require.ErrorContains(t, err, "run")

	_, err = execute(t, "copy", "--config", filepath.Join(t.TempDir(), "missing.toml"), "-c", "H1:TEST", "-o", out, in)
	require.ErrorContains(t, err, "load config")
}

func TestInfoCommand(t *testing.T) {
	isolate(t)
	in := writeInput(t)

	out, err := execute(t, "info", in)
	require.NoError(t, err)
	require.Contains(t, out, "1 frames")
	require.Contains(t, out, "frame 0: run=0 number=0 start=1000 dt=2\n")
	require.Contains(t, out, "proc H1:TEST\n")

	_, err = execute(t, "info", filepath.Join(t.TempDir(), "missing.gwf"))
	require.Error(t, err)
}
