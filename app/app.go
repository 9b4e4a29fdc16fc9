// Package app provides the entrypoint for cenum.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/ktr0731/cenum/config"
	"github.com/ktr0731/cenum/cui"
	"github.com/ktr0731/cenum/gen"
	"github.com/ktr0731/cenum/idl"
	"github.com/ktr0731/cenum/idl/proto"
	"github.com/ktr0731/cenum/idl/yaml"
	"github.com/ktr0731/cenum/logger"
	"github.com/ktr0731/cenum/meta"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// App is the root component for running the application.
type App struct {
	cui cui.UI
	cmd *command
}

// New instantiates a new App instance. ui must not be a nil.
func New(ui cui.UI) *App {
	var flags flags
	return &App{
		cui: ui,
		cmd: newCommand(&flags, ui),
	}
}

// Run starts the application. The return value means the exit code.
func (a *App) Run(args []string) int {
	if args == nil {
		// cobra reads os.Args if args is nil.
		args = []string{}
	}
	a.cmd.SetArgs(args)
	err := a.cmd.Execute()
	if err == nil {
		return 0
	}
	a.cui.Error(fmt.Sprintf("%s: %s", meta.AppName, err))
	return 1
}

// printUsage shows the command usage text to cui.Writer.
func printUsage(cmd interface{ Help() error }) {
	_ = cmd.Help() // Help never return errors.
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", meta.AppName, meta.Version.String())
}

// mergedConfig is the config merged with flags that are available only from the command line.
type mergedConfig struct {
	*config.Config
}

func mergeConfig(fs *pflag.FlagSet, flags *flags, files []string) (*mergedConfig, error) {
	cfg, err := config.Get(fs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	cfg.Default.ProtoFile = append(cfg.Default.ProtoFile, files...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &mergedConfig{Config: cfg}, nil
}

// generate loads all input files, then generates and writes outputs.
func generate(ctx context.Context, cfg *mergedConfig, w io.Writer) error {
	files, err := loadFiles(ctx, cfg.Default.ProtoPath, cfg.Default.ProtoFile)
	if err != nil {
		return err
	}
	logger.Scriptln(func() []interface{} {
		return []interface{}{"loaded files:", pp.Sprint(files)}
	})

	p, err := gen.NewPresenter(cfg.Output.Format, gen.PresenterOptions{
		DLLExport: cfg.Output.DLLExport,
		GoPackage: cfg.Output.GoPackage,
	})
	if err != nil {
		return err
	}
	outs, err := gen.New(p).Generate(ctx, files)
	if err != nil {
		return errors.Wrap(err, "failed to generate")
	}

	if cfg.Output.Dir == "" {
		return gen.WriteTo(w, p, outs)
	}
	return gen.Write(cfg.Output.Dir, outs)
}

// loadFiles loads YAML schema files and proto files. The order of fnames is kept.
// All proto files are compiled at once so that they can share imports.
func loadFiles(ctx context.Context, importPaths, fnames []string) ([]*idl.File, error) {
	files := make([]*idl.File, len(fnames))
	var protoIdx []int
	var protoFiles []string
	for i, fname := range fnames {
		if !isYAML(fname) {
			protoIdx = append(protoIdx, i)
			protoFiles = append(protoFiles, fname)
			continue
		}
		f, err := yaml.LoadFile(fname)
		if err != nil {
			return nil, err
		}
		files[i] = f
	}
	if len(protoFiles) == 0 {
		return files, nil
	}

	protos, err := proto.LoadFiles(ctx, importPaths, protoFiles)
	if err != nil {
		return nil, err
	}
	for i, f := range protos {
		files[protoIdx[i]] = f
	}
	return files, nil
}

func isYAML(fname string) bool {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty(f.Fd())
}
