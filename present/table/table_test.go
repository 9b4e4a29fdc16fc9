package table

import (
	"strings"
	"testing"

	"github.com/ktr0731/cenum/enumtable"
	"github.com/ktr0731/cenum/idl"
	"github.com/ktr0731/cenum/present"
)

func TestPresenter(t *testing.T) {
	b, err := enumtable.New(&idl.Enum{
		FullName: "foo.Color",
		Name:     "Color",
		Package:  "foo",
		Values: []*idl.Value{
			{Name: "RED", Number: 0},
			{Name: "CRIMSON", Number: 0},
			{Name: "GREEN", Number: 1},
		},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	p := NewPresenter()
	outs, err := p.Present(&present.File{Name: "color.proto", Tables: []*enumtable.Builder{b, b}})
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 1 {
		t.Fatalf("expected 1 output, but got %d", len(outs))
	}
	if outs[0].Name != "color.enum.txt" {
		t.Errorf("unexpected output name: %s", outs[0].Name)
	}

	actual := string(outs[0].Content)
	if n := strings.Count(actual, "foo.Color (Foo__Color): 2 unique values, 3 values\n"); n != 2 {
		t.Errorf("the summary line must appear twice, but got %d:\n%s", n, actual)
	}
	for _, s := range []string{"definition:\n", "by number:\n", "by name:\n", "FOO__COLOR__CRIMSON", "C NAME"} {
		if !strings.Contains(actual, s) {
			t.Errorf("output must contain %q:\n%s", s, actual)
		}
	}

	// CRIMSON must be dropped from the by number table.
	byNumber := strings.Split(strings.Split(actual, "by number:\n")[1], "by name:\n")[0]
	if strings.Contains(byNumber, "CRIMSON") {
		t.Errorf("aliases must be dropped from the by number table:\n%s", byNumber)
	}
	if !strings.Contains(byNumber, "RED") {
		t.Errorf("the by number table must contain RED:\n%s", byNumber)
	}
}
