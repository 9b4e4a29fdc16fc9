// Package json provides a JSON presenter that formatting.
package json

import (
	gojson "encoding/json"

	"github.com/ktr0731/cenum/present"
	"github.com/pkg/errors"
)

const fileExt = ".enum.json"

// Presenter is a presenter that formats tables into JSON string.
type Presenter struct {
	indent string
}

// Present renders f as <base>.enum.json. If indent is not empty, Present indents the output.
func (p *Presenter) Present(f *present.File) ([]*present.Output, error) {
	doc := present.NewDocument(f)
	var (
		b   []byte
		err error
	)
	if p.indent == "" {
		b, err = gojson.Marshal(doc)
	} else {
		b, err = gojson.MarshalIndent(doc, "", p.indent)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to format tables into JSON string")
	}
	return []*present.Output{
		{Name: present.BaseName(f.Name) + fileExt, Content: append(b, '\n')},
	}, nil
}

func NewPresenter(indent string) *Presenter {
	return &Presenter{indent: indent}
}
