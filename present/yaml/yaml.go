// Package yaml provides a YAML presenter.
package yaml

import (
	"bytes"

	"github.com/ktr0731/cenum/present"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const fileExt = ".enum.yaml"

// Presenter is a presenter that formats tables into a YAML document.
type Presenter struct {
	indent int
}

// Present renders f as <base>.enum.yaml.
func (p *Presenter) Present(f *present.File) ([]*present.Output, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(p.indent)
	if err := enc.Encode(present.NewDocument(f)); err != nil {
		return nil, errors.Wrap(err, "failed to format tables into YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush YAML encoder")
	}
	return []*present.Output{
		{Name: present.BaseName(f.Name) + fileExt, Content: buf.Bytes()},
	}, nil
}

// Separator returns the YAML document marker so that each output is a separate document.
func (p *Presenter) Separator(string) string {
	return "---\n"
}

func NewPresenter() *Presenter {
	return &Presenter{indent: 2}
}
