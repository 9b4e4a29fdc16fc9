// Package gen provides the pipeline that builds enum tables from schemas and renders them.
package gen

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/ktr0731/cenum/enumtable"
	"github.com/ktr0731/cenum/idl"
	"github.com/ktr0731/cenum/logger"
	"github.com/ktr0731/cenum/naming"
	"github.com/ktr0731/cenum/present"
	"github.com/ktr0731/cenum/present/csource"
	"github.com/ktr0731/cenum/present/gosource"
	"github.com/ktr0731/cenum/present/json"
	"github.com/ktr0731/cenum/present/name"
	"github.com/ktr0731/cenum/present/table"
	"github.com/ktr0731/cenum/present/yaml"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// PresenterOptions holds format specific options for NewPresenter.
type PresenterOptions struct {
	// DLLExport is used by the C format.
	DLLExport string
	// GoPackage is used by the Go format.
	GoPackage string
}

// NewPresenter returns the presenter for format. format should be one of present.Formats.
func NewPresenter(format string, opts PresenterOptions) (present.Presenter, error) {
	switch format {
	case present.FormatC:
		return csource.New(csource.DLLExport(opts.DLLExport)), nil
	case present.FormatGo:
		return gosource.New(gosource.Package(opts.GoPackage)), nil
	case present.FormatTable:
		return table.NewPresenter(), nil
	case present.FormatYAML:
		return yaml.NewPresenter(), nil
	case present.FormatJSON:
		return json.NewPresenter("  "), nil
	case present.FormatName:
		return name.NewPresenter(), nil
	default:
		return nil, errors.Errorf("unknown format '%s'", format)
	}
}

// Option represents an option for New.
type Option func(*Generator)

// Workers sets the maximum number of files processed at the same time.
func Workers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// Namer replaces the identifier convention. The default is naming.C.
func Namer(n naming.Namer) Option {
	return func(g *Generator) {
		g.namer = n
	}
}

// Generator builds tables of each file and renders them by the presenter.
type Generator struct {
	presenter present.Presenter
	namer     naming.Namer
	workers   int
}

// New instantiates a new Generator. p must not be nil.
func New(p present.Presenter, opts ...Option) *Generator {
	g := &Generator{
		presenter: p,
		namer:     naming.C{},
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates all files, then builds and renders them. Outputs keep the order of files.
// If some files are invalid, Generate reports all of their failures and renders nothing.
func (g *Generator) Generate(ctx context.Context, files []*idl.File) ([]*present.Output, error) {
	var result error
	for _, f := range files {
		if err := f.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		return nil, result
	}

	outs := make([][]*present.Output, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, f := range files {
		i, f := i, f
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := g.generate(f)
			if err != nil {
				return err
			}
			outs[i] = o
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var flatten []*present.Output
	for _, o := range outs {
		flatten = append(flatten, o...)
	}
	return flatten, nil
}

func (g *Generator) generate(f *idl.File) ([]*present.Output, error) {
	pf := &present.File{
		Name:    f.Name,
		Package: f.Package,
		Tables:  make([]*enumtable.Builder, 0, len(f.Enums)),
	}
	for _, e := range f.Enums {
		b, err := enumtable.New(e, g.namer)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build tables of %s", e.FullName)
		}
		pf.Tables = append(pf.Tables, b)
	}

	outs, err := g.presenter.Present(pf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to present %s", f.Name)
	}
	logger.Printf("%s: %d enums, %d outputs", f.Name, len(pf.Tables), len(outs))
	return outs, nil
}

// Write writes outs to files under dir. Parent directories are created if needed.
func Write(dir string, outs []*present.Output) error {
	for _, o := range outs {
		p := filepath.Join(dir, filepath.FromSlash(o.Name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return errors.Wrapf(err, "failed to create the output directory of %s", o.Name)
		}
		if err := os.WriteFile(p, o.Content, 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", p)
		}
		logger.Printf("wrote %s", p)
	}
	return nil
}

// WriteTo writes outs rendered by p to w in order. If there are multiple
// outputs and p implements present.Separator, each output is preceded by its separator.
// Otherwise, outputs are simply concatenated.
func WriteTo(w io.Writer, p present.Presenter, outs []*present.Output) error {
	sep, ok := p.(present.Separator)
	for _, o := range outs {
		if ok && len(outs) > 1 {
			if _, err := io.WriteString(w, sep.Separator(o.Name)); err != nil {
				return errors.Wrap(err, "failed to write")
			}
		}
		if _, err := w.Write(o.Content); err != nil {
			return errors.Wrap(err, "failed to write")
		}
	}
	return nil
}
