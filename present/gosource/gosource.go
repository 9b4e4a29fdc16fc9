// Package gosource provides a presenter that renders enum tables as Go code.
// The generated code depends on package enumdesc.
package gosource

import (
	"bytes"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"github.com/ktr0731/cenum/enumtable"
	"github.com/ktr0731/cenum/naming"
	"github.com/ktr0731/cenum/present"
	"github.com/pkg/errors"
)

const (
	enumdescPath = "github.com/ktr0731/cenum/enumdesc"
	fileExt      = ".enum.go"
	defaultPkg   = "enums"
)

// Option represents an option for New.
type Option func(*Presenter)

// Package sets the package name of generated files. If it is empty, the name
// is derived from the proto package.
func Package(name string) Option {
	return func(p *Presenter) {
		p.pkg = name
	}
}

// Presenter renders a Go file for each source file.
type Presenter struct {
	pkg string
}

// New instantiates a new Presenter.
func New(opts ...Option) *Presenter {
	p := &Presenter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present renders f as <base>.enum.go.
func (p *Presenter) Present(f *present.File) ([]*present.Output, error) {
	pkg := p.pkg
	if pkg == "" {
		pkg = PackageName(f.Package)
	}

	gf := jen.NewFile(pkg)
	gf.HeaderComment("Code generated by cenum. DO NOT EDIT.")
	gf.HeaderComment("source: " + f.Name)
	gf.ImportName(enumdescPath, "enumdesc")

	for _, t := range f.Tables {
		genEnum(gf, t)
	}

	var buf bytes.Buffer
	if err := gf.Render(&buf); err != nil {
		return nil, errors.Wrapf(err, "failed to render Go code of %s", f.Name)
	}
	return []*present.Output{
		{Name: present.BaseName(f.Name) + fileExt, Content: buf.Bytes()},
	}, nil
}

// Separator returns a Go comment line with name.
func (p *Presenter) Separator(name string) string {
	return "// " + name + "\n"
}

// TypeName returns the Go type name of the enum whose lower-case name is lcName.
// For example, "foo__bar__color" is converted to "FooBarColor".
func TypeName(lcName string) string {
	return inflect.Camelize(strings.ReplaceAll(lcName, naming.Separator, "_"))
}

// PackageName derives a Go package name from a proto package.
func PackageName(protoPkg string) string {
	if i := strings.LastIndexByte(protoPkg, '.'); i != -1 {
		protoPkg = protoPkg[i+1:]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(protoPkg) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9' && b.Len() != 0) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return defaultPkg
	}
	return b.String()
}

func genEnum(f *jen.File, t *enumtable.Builder) {
	d := t.Descriptor()
	typ := TypeName(d.LCName)
	descName := typ + "Descriptor"

	f.Commentf("%s is the enum %s.", typ, d.FullName)
	f.Type().Id(typ).Int32()

	f.Const().DefsFunc(func(g *jen.Group) {
		for _, v := range t.Enum().Values {
			g.Id(typ + "_" + v.Name).Id(typ).Op("=").Lit(int(v.Number))
		}
	})

	f.Commentf("%s describes %s.", descName, typ)
	f.Var().Id(descName).Op("=").Op("&").Qual(enumdescPath, "EnumDescriptor").Values(jen.Dict{
		jen.Id("FullName"):       jen.Lit(d.FullName),
		jen.Id("Name"):           jen.Lit(d.ShortName),
		jen.Id("CName"):          jen.Lit(d.CName),
		jen.Id("PackageName"):    jen.Lit(d.PackageName),
		jen.Id("ValuesByNumber"): genValues(t.ValuesByNumber()),
		jen.Id("ValuesByName"):   genValues(t.ValuesByName()),
	})

	f.Func().Params(jen.Id("x").Id(typ)).Id("String").Params().String().Block(
		jen.If(
			jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id(descName).Dot("ValueByNumber").Call(jen.Int32().Call(jen.Id("x"))),
			jen.Id("ok"),
		).Block(
			jen.Return(jen.Id("v").Dot("Name")),
		),
		jen.Return(jen.Qual("strconv", "Itoa").Call(jen.Int().Call(jen.Id("x")))),
	)
}

func genValues(entries []enumtable.Entry) jen.Code {
	return jen.Index().Qual(enumdescPath, "EnumValue").ValuesFunc(func(g *jen.Group) {
		for _, e := range entries {
			g.Values(jen.Dict{
				jen.Id("Name"):  jen.Lit(e.Name),
				jen.Id("CName"): jen.Lit(e.CName),
				jen.Id("Value"): jen.Lit(int(e.Value)),
			})
		}
	})
}
