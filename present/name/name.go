package name

import (
	"strings"

	"github.com/ktr0731/cenum/present"
)

const fileExt = ".enum.names"

// Presenter is a presenter that formats tables into the list of fully-qualified value names.
type Presenter struct{}

// Present lists values of every enum of f in the order of the by-name table.
// Each line is formatted as <enum full name>.<value name>.
func (p *Presenter) Present(f *present.File) ([]*present.Output, error) {
	var rows []string
	for _, t := range f.Tables {
		d := t.Descriptor()
		for _, e := range t.ValuesByName() {
			rows = append(rows, d.FullName+"."+e.Name)
		}
	}
	var content string
	if len(rows) != 0 {
		content = strings.Join(rows, "\n") + "\n"
	}
	return []*present.Output{
		{Name: present.BaseName(f.Name) + fileExt, Content: []byte(content)},
	}, nil
}

func NewPresenter() *Presenter {
	return &Presenter{}
}
