package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/stream"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "List the frames and channels of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var opts []stream.ReaderOption
			if a.cfg.Verify {
				opts = append(opts, stream.WithChecksumVerification())
			}

			r, err := stream.Open(args[0], opts...)
			if err != nil {
				return err
			}
			defer r.Close()

			h := r.Header()
			toc := r.TOC()

			w := bufio.NewWriter(a.stdout)
			fmt.Fprintf(w, "version %d.%d, %d frames\n", h.VersionMajor, h.VersionMinor, r.FrameCount())
			for i, f := range toc.Frames {
				fmt.Fprintf(w, "frame %d: run=%d number=%d start=%s dt=%g\n", i, f.Run, f.Number, f.GTime, f.Dt)
			}
			for _, ct := range format.ChannelTypes {
				for _, name := range toc.Names(ct) {
					fmt.Fprintf(w, "%s %s\n", ct, name)
				}
			}

			return w.Flush()
		},
	}
}
