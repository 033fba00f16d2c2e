package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/gwf"
	"github.com/arloliu/gwf/log"
)

func newCopyCommand(a *app) *cobra.Command {
	var (
		sel      selection
		out      string
		outTypes map[string]string
	)

	cmd := &cobra.Command{
		Use:   "copy [flags] FILE...",
		Short: "Copy channels into a new single-frame file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := a.readOptions(&sel)
			if err != nil {
				return err
			}

			d, err := gwf.Read(args, sel.channels, opts...)
			if err != nil {
				return err
			}

			ct, err := a.cfg.CompressionType()
			if err != nil {
				return err
			}

			// The read span already cropped the data; writing derives the
			// frame span from the series themselves.
			err = gwf.Write(out, d,
				gwf.WithChannelTypes(outTypes),
				gwf.WithCompression(ct, a.cfg.CompressionLevel),
				gwf.WithFrameName(a.cfg.FrameName),
				gwf.WithRun(int32(a.cfg.Run)),
				gwf.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			a.logger.Info("frame written",
				log.String("path", out),
				log.Int("channels", d.Len()),
				log.String("compression", a.cfg.Compression),
			)

			return nil
		},
	}

	fs := cmd.Flags()
	sel.register(fs)
	fs.StringVarP(&out, "out", "o", "", "output file")
	fs.StringToStringVar(&outTypes, "out-type", nil, "output record types as name=adc|proc|sim, proc by default")
	fs.BoolVar(&a.cfg.Verify, "verify", a.cfg.Verify, "verify file checksums before reading")
	fs.StringVar(&a.cfg.Compression, "compression", a.cfg.Compression, "codec: none, gzip, zstd, s2, lz4")
	fs.IntVar(&a.cfg.CompressionLevel, "level", a.cfg.CompressionLevel, "codec level, 0 for the codec default")
	fs.StringVar(&a.cfg.FrameName, "name", a.cfg.FrameName, "frame name")
	fs.IntVar(&a.cfg.Run, "run", a.cfg.Run, "run number")
	_ = cmd.MarkFlagRequired("channel")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
