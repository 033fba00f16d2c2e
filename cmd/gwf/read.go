package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/gwf"
)

func newReadCommand(a *app) *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "read [flags] FILE...",
		Short: "Print channel samples as CSV",
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

			w := bufio.NewWriter(a.stdout)
			for name, s := range d.All() {
				fmt.Fprintf(w, "# %s t0=%s dt=%g n=%d unit=%q dtype=%s\n",
					name, s.T0(), s.Dt(), s.Len(), s.Unit(), s.DType())
				for i := range s.Len() {
					fmt.Fprintf(w, "%s,%s\n", s.TimeAt(i), s.FormatValue(i))
				}
			}

			return w.Flush()
		},
	}

	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&a.cfg.Verify, "verify", a.cfg.Verify, "verify file checksums before reading")
	_ = cmd.MarkFlagRequired("channel")

	return cmd
}
