// Command gwf reads channels from gravitational-wave frame files and writes
// them back out.
//
// Configuration is resolved from lowest to highest precedence: defaults,
// ~/.gwf/config.toml (or --config), GWF_* environment variables and flags.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/arloliu/gwf"
	"github.com/arloliu/gwf/gps"
	"github.com/arloliu/gwf/internal/cliconfig"
	"github.com/arloliu/gwf/log"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gwf:", err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	cfg        cliconfig.Config
	configPath string
	stdout     io.Writer
	stderr     io.Writer
	logger     log.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		cfg:    cliconfig.DefaultConfig(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:           "gwf",
		Short:         "Read and write gravitational-wave frame files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file path (default ~/.gwf/config.toml)")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(newReadCommand(a), newCopyCommand(a), newInfoCommand(a))

	return root
}

// load merges the config file and environment into a.cfg, leaving flags the
// user set on the command line untouched, and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	path := a.configPath
	if path == "" {
		path = cliconfig.DefaultConfigPath()
	}
	if path != "" && (a.configPath != "" || cliconfig.FileExists(path)) {
		fc, err := cliconfig.LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		cliconfig.ApplyFileConfig(&a.cfg, fc, changed)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, err := a.cfg.Level()
	if err != nil {
		return err
	}
	a.logger = log.NewZerologAdapter(cliconfig.NewLogger(a.stderr, level))

	return nil
}

// selection holds the flags choosing what to read.
type selection struct {
	channels []string
	start    string
	end      string
	types    map[string]string
}

func (s *selection) register(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&s.channels, "channel", "c", nil, "channel to read, may be repeated")
	fs.StringVar(&s.start, "start", "", "GPS start time, inclusive")
	fs.StringVar(&s.end, "end", "", "GPS end time, exclusive")
	fs.StringToStringVar(&s.types, "type", nil, "channel types as name=adc|proc|sim")
}

// options converts the selection into read options.
func (s *selection) options() ([]gwf.Option, error) {
	var span gps.Span
	if s.start != "" {
		t, err := gps.Parse(s.start)
		if err != nil {
			return nil, fmt.Errorf("parse --start: %w", err)
		}
		span.Start = t
	}
	if s.end != "" {
		t, err := gps.Parse(s.end)
		if err != nil {
			return nil, fmt.Errorf("parse --end: %w", err)
		}
		span.End = t
	}

	return []gwf.Option{gwf.WithSpan(span), gwf.WithChannelTypes(s.types)}, nil
}

func (a *app) readOptions(sel *selection) ([]gwf.Option, error) {
	opts, err := sel.options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, gwf.WithLogger(a.logger))
	if a.cfg.Verify {
		opts = append(opts, gwf.WithChecksumVerification())
	}

	return opts, nil
}
