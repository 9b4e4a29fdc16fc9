// Package table provides a table like formatting.
package table

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ktr0731/cenum/enumtable"
	"github.com/ktr0731/cenum/present"
	"github.com/olekukonko/tablewriter"
)

const fileExt = ".enum.txt"

var header = []string{"name", "c name", "value"}

// Presenter renders the tables of each enum as text tables.
type Presenter struct{}

// Present renders f as <base>.enum.txt.
func (p *Presenter) Present(f *present.File) ([]*present.Output, error) {
	var w bytes.Buffer
	for i, t := range f.Tables {
		if i != 0 {
			w.WriteString("\n")
		}
		d := t.Descriptor()
		fmt.Fprintf(&w, "%s (%s): %d unique values, %d values\n", d.FullName, d.CName, d.NUnique, d.TotalCount)

		vals := t.Enum().Values
		var def []enumtable.Entry
		for j, c := range t.TypeDefinition() {
			def = append(def, enumtable.Entry{Name: vals[j].Name, CName: c.Name, Value: c.Value})
		}
		render(&w, "definition", def)
		render(&w, "by number", t.ValuesByNumber())
		render(&w, "by name", t.ValuesByName())
	}
	return []*present.Output{
		{Name: present.BaseName(f.Name) + fileExt, Content: w.Bytes()},
	}, nil
}

func render(w *bytes.Buffer, title string, entries []enumtable.Entry) {
	fmt.Fprintf(w, "%s:\n", title)
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, e := range entries {
		table.Append([]string{e.Name, e.CName, strconv.FormatInt(int64(e.Value), 10)})
	}
	table.Render()
}

func NewPresenter() *Presenter {
	return &Presenter{}
}
