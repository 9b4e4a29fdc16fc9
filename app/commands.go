package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/k0kubun/pp"
	"github.com/ktr0731/cenum/config"
	"github.com/ktr0731/cenum/cui"
	"github.com/ktr0731/cenum/logger"
	"github.com/ktr0731/cenum/meta"
	"github.com/ktr0731/cenum/present"
	isattypkg "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var usageFormat = `
Usage: %s [--help] [--version] [options ...] [FILE [FILE ...]]

Positional arguments:
        FILE                    .proto files or YAML schema files (.yaml, .yml)

Options:
%s
`

// isatty reports whether fd is a terminal. It is replaced in tests.
var isatty = func(fd uintptr) bool {
	return isattypkg.IsTerminal(fd) || isattypkg.IsCygwinTerminal(fd)
}

type command struct {
	*cobra.Command

	flags *flags
	ui    cui.UI
}

// runFunc is a common entrypoint for Run func.
func runFunc(
	flags *flags,
	f func(*cobra.Command, *mergedConfig) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := flags.validate(); err != nil {
			return errors.Wrap(err, "invalid flag condition")
		}

		switch {
		case flags.meta.version:
			printVersion(cmd.OutOrStdout())
			return nil
		case flags.meta.help:
			printUsage(cmd)
			return nil
		}

		if flags.meta.verbose {
			logger.SetOutput(os.Stderr)
		}

		// Pass Flags instead of LocalFlags because the config is merged with common and local flags.
		cfg, err := mergeConfig(cmd.Flags(), flags, args)
		if err != nil {
			var verr *config.ValidationError
			if errors.As(err, &verr) {
				printUsage(cmd)
				return err
			}
			return errors.Wrap(err, "failed to merge command line flags and config files")
		}
		logger.SetPrefix(cfg.Log.Prefix)
		logger.Scriptln(func() []interface{} {
			return []interface{}{"config:", pp.Sprint(cfg.Config)}
		})

		// The entrypoint for the command.
		return f(cmd, cfg)
	}
}

func newCommand(flags *flags, ui cui.UI) *command {
	cmd := &cobra.Command{
		Use: meta.AppName,
		RunE: runFunc(flags, func(cmd *cobra.Command, cfg *mergedConfig) error {
			if isTerminal(os.Stderr) {
				ui = cui.NewColored(ui)
			}
			if err := generate(cmd.Context(), cfg, ui.Writer()); err != nil {
				return err
			}
			if cfg.Output.Dir != "" {
				ui.Info(fmt.Sprintf("wrote outputs to %s", cfg.Output.Dir))
			}
			return nil
		}),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	bindFlags(cmd.PersistentFlags(), flags, ui.Writer())
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		cmd.PersistentFlags().Usage()
	})
	cmd.SetOut(ui.Writer())
	return &command{cmd, flags, ui}
}

func bindFlags(f *pflag.FlagSet, flags *flags, w io.Writer) {
	initFlagSet(f, w)

	f.StringSliceVar(&flags.common.path, "path", nil, "proto import paths")
	f.StringVarP(
		&flags.common.format,
		"format", "f", present.FormatC, fmt.Sprintf("output format (%s)", strings.Join(present.Formats(), ", ")))
	f.StringVarP(&flags.common.out, "out", "o", "", "output directory. if it is empty, outputs are written to stdout")
	f.StringVar(&flags.common.dllexport, "dllexport", "", "declaration prefix of exported descriptors (c format only)")
	f.StringVar(&flags.common.goPackage, "go-package", "", "package name of generated Go source (go format only)")

	f.BoolVar(&flags.meta.verbose, "verbose", false, "verbose output")
	f.BoolVarP(&flags.meta.version, "version", "v", false, "display version and exit")
	f.BoolVarP(&flags.meta.help, "help", "h", false, "display help text and exit")
}

func initFlagSet(f *pflag.FlagSet, w io.Writer) {
	f.SortFlags = false
	f.SetOutput(w)
	f.Usage = usageFunc(w, f)
}

// usage is the generator for usage output.
func usageFunc(out io.Writer, f *pflag.FlagSet) func() {
	return func() {
		printVersion(out)
		var buf bytes.Buffer
		w := tabwriter.NewWriter(&buf, 0, 8, 8, ' ', tabwriter.TabIndent)
		f.VisitAll(func(f *pflag.Flag) {
			if f.Hidden {
				return
			}
			cmd := "--" + f.Name
			if f.Shorthand != "" {
				cmd += ", -" + f.Shorthand
			}
			name, _ := pflag.UnquoteUsage(f)
			if name != "" {
				cmd += " " + name
			}
			usage := f.Usage
			if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
				usage += fmt.Sprintf(` (default "%s")`, f.DefValue)
			}
			fmt.Fprintf(w, "        %s\t%s\n", cmd, usage)
		})
		w.Flush()
		fmt.Fprintf(out, usageFormat, meta.AppName, buf.String())
	}
}
