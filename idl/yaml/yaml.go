// Package yaml loads idl.File from YAML schema files.
//
// A schema file is formatted like:
//
//	package: foo.bar
//	enums:
//	  - name: Color
//	    values:
//	      - name: RED
//	        number: 0
//	      - name: GREEN
//	        number: 1
//
// Values are kept in the order they appear in the document.
package yaml

import (
	"io"
	"os"

	"github.com/ktr0731/cenum/idl"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type file struct {
	Package string  `yaml:"package"`
	Enums   []*enum `yaml:"enums"`
}

type enum struct {
	Name   string   `yaml:"name"`
	Values []*value `yaml:"values"`
}

type value struct {
	Name   string `yaml:"name"`
	Number int32  `yaml:"number"`
}

// Load decodes a schema from r. name is used as the file name of the returned idl.File.
// Load doesn't validate enums; call (*idl.File).Validate for that.
func Load(r io.Reader, name string) (*idl.File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &idl.File{Name: name}, nil
		}
		return nil, errors.Wrapf(err, "yaml: failed to decode %s", name)
	}

	out := &idl.File{
		Name:    name,
		Package: f.Package,
		Enums:   make([]*idl.Enum, 0, len(f.Enums)),
	}
	for i, e := range f.Enums {
		if e == nil || e.Name == "" {
			return nil, errors.Errorf("yaml: %s: enum #%d has no name", name, i)
		}
		ie := &idl.Enum{
			FullName: idl.FullyQualifiedName(f.Package, e.Name),
			Name:     e.Name,
			Package:  f.Package,
			Values:   make([]*idl.Value, 0, len(e.Values)),
		}
		for j, v := range e.Values {
			if v == nil || v.Name == "" {
				return nil, errors.Errorf("yaml: %s: value #%d of %s has no name", name, j, ie.FullName)
			}
			ie.Values = append(ie.Values, &idl.Value{Name: v.Name, Number: v.Number})
		}
		out.Enums = append(out.Enums, ie)
	}
	return out, nil
}

// LoadFile opens fname and loads it by Load.
func LoadFile(fname string) (*idl.File, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "yaml: failed to open the schema file")
	}
	defer f.Close()
	return Load(f, fname)
}
