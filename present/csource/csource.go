// Package csource provides a presenter that renders enum tables as protobuf-c compatible C code.
package csource

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ktr0731/cenum/enumtable"
	"github.com/ktr0731/cenum/present"
	"github.com/ktr0731/cenum/printer"
	"github.com/pkg/errors"
)

const (
	headerExt = ".pb-c.h"
	sourceExt = ".pb-c.c"
)

// Option represents an option for New.
type Option func(*Presenter)

// DLLExport sets the declaration prefixed to extern declarations, e.g. "FOO_API".
func DLLExport(decl string) Option {
	return func(p *Presenter) {
		p.dllexport = decl
	}
}

// Presenter renders a header and a source file for each source file.
type Presenter struct {
	dllexport string
}

// New instantiates a new Presenter.
func New(opts ...Option) *Presenter {
	p := &Presenter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present renders f as <base>.pb-c.h and <base>.pb-c.c.
func (p *Presenter) Present(f *present.File) ([]*present.Output, error) {
	base := present.BaseName(f.Name)

	header, err := p.header(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render the header of %s", f.Name)
	}
	source, err := p.source(f, base+headerExt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render the source of %s", f.Name)
	}
	return []*present.Output{
		{Name: base + headerExt, Content: header},
		{Name: base + sourceExt, Content: source},
	}, nil
}

// Separator returns a C comment line with name.
func (p *Presenter) Separator(name string) string {
	return "// " + name + "\n"
}

func (p *Presenter) header(f *present.File) ([]byte, error) {
	var buf bytes.Buffer
	pr := printer.New(&buf)
	vars := printer.Vars{
		"filename":  f.Name,
		"guard":     "PROTOBUF_C_" + filenameIdentifier(f.Name) + "__INCLUDED",
		"dllexport": "",
	}
	if p.dllexport != "" {
		vars["dllexport"] = p.dllexport + " "
	}

	pr.Print(vars,
		"/* Generated by cenum. DO NOT EDIT! */\n"+
			"/* Generated from: $filename$ */\n"+
			"\n"+
			"#ifndef $guard$\n"+
			"#define $guard$\n"+
			"\n"+
			"#include <protobuf-c/protobuf-c.h>\n"+
			"\n"+
			"PROTOBUF_C__BEGIN_DECLS\n"+
			"\n")

	for _, t := range f.Tables {
		printDefinition(pr, t)
		pr.Print(nil, "\n")
	}
	for _, t := range f.Tables {
		vars["symbol"] = t.Descriptor().Symbol
		pr.Print(vars, "extern $dllexport$const ProtobufCEnumDescriptor    $symbol$;\n")
	}

	pr.Print(vars,
		"\n"+
			"PROTOBUF_C__END_DECLS\n"+
			"\n"+
			"#endif  /* $guard$ */\n")
	return buf.Bytes(), pr.Err()
}

func printDefinition(pr *printer.Printer, t *enumtable.Builder) {
	vars := printer.Vars{"classname": t.Descriptor().CName}
	pr.Print(vars, "typedef enum _$classname$ {\n")
	pr.Indent()
	for _, c := range t.TypeDefinition() {
		vars["name"] = c.Name
		vars["number"] = strconv.FormatInt(int64(c.Value), 10)
		pr.Print(vars, "$name$ = $number$,\n")
	}
	pr.Outdent()
	pr.Print(vars, "} $classname$;\n")
}

func (p *Presenter) source(f *present.File, header string) ([]byte, error) {
	var buf bytes.Buffer
	pr := printer.New(&buf)
	vars := printer.Vars{
		"filename": f.Name,
		"header":   header,
	}
	pr.Print(vars,
		"/* Generated by cenum. DO NOT EDIT! */\n"+
			"/* Generated from: $filename$ */\n"+
			"\n"+
			"#include \"$header$\"\n")

	for _, t := range f.Tables {
		pr.Print(nil, "\n")
		printDescriptor(pr, t)
	}
	return buf.Bytes(), pr.Err()
}

func printDescriptor(pr *printer.Printer, t *enumtable.Builder) {
	d := t.Descriptor()
	vars := printer.Vars{
		"fullname":           d.FullName,
		"shortname":          d.ShortName,
		"cname":              d.CName,
		"packagename":        d.PackageName,
		"symbol":             d.Symbol,
		"by_number":          d.ByNumber,
		"by_name":            d.ByName,
		"unique_value_count": strconv.Itoa(d.NUnique),
		"value_count":        strconv.Itoa(d.TotalCount),
	}

	pr.Print(vars,
		"const ProtobufCEnumValue $by_number$[$unique_value_count$] =\n"+
			"{\n")
	printValues(pr, t.ValuesByNumber())
	pr.Print(vars, "};\n")

	pr.Print(vars,
		"const ProtobufCEnumValue $by_name$[$value_count$] =\n"+
			"{\n")
	printValues(pr, t.ValuesByName())
	pr.Print(vars, "};\n")

	pr.Print(vars,
		"const ProtobufCEnumDescriptor $symbol$ =\n"+
			"{\n")
	pr.Indent()
	pr.Print(vars,
		"\"$fullname$\",\n"+
			"\"$shortname$\",\n"+
			"\"$cname$\",\n"+
			"\"$packagename$\",\n"+
			"$unique_value_count$,\n"+
			"$by_number$,\n"+
			"$value_count$,\n"+
			"$by_name$\n")
	pr.Outdent()
	pr.Print(vars, "};\n")
}

func printValues(pr *printer.Printer, entries []enumtable.Entry) {
	pr.Indent()
	for _, e := range entries {
		pr.Print(printer.Vars{
			"enum_value_name":   e.Name,
			"c_enum_value_name": e.CName,
			"value":             strconv.FormatInt(int64(e.Value), 10),
		}, "{ \"$enum_value_name$\", \"$c_enum_value_name$\", $value$ },\n")
	}
	pr.Outdent()
}

// filenameIdentifier escapes characters which can't be used in C identifiers
// as "_" followed by their hex code without padding, e.g. "foo.proto" is "foo_2eproto".
func filenameIdentifier(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%x", c)
	}
	return b.String()
}
