package json

import (
	gojson "encoding/json"
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
		Values:   []*idl.Value{{Name: "RED", Number: 0}, {Name: "CRIMSON", Number: 0}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	f := &present.File{Name: "foo/color.proto", Package: "foo", Tables: []*enumtable.Builder{b}}

	cases := map[string]struct {
		indent    string
		multiline bool
	}{
		"no indent": {},
		"indent":    {indent: "  ", multiline: true},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			outs, err := NewPresenter(c.indent).Present(f)
			if err != nil {
				t.Fatalf("Present must not return an error, but got '%s'", err)
			}
			if outs[0].Name != "foo/color.enum.json" {
				t.Errorf("unexpected output name: %s", outs[0].Name)
			}
			content := strings.TrimSuffix(string(outs[0].Content), "\n")
			if multiline := strings.Contains(content, "\n"); multiline != c.multiline {
				t.Errorf("expected multiline = %t, but got %t", c.multiline, multiline)
			}

			var doc present.Document
			if err := gojson.Unmarshal(outs[0].Content, &doc); err != nil {
				t.Fatalf("output must be valid JSON: %s", err)
			}
			if len(doc.Enums) != 1 || doc.Enums[0].UniqueCount != 1 || doc.Enums[0].TotalCount != 2 {
				t.Errorf("unexpected document: %+v", doc.Enums[0])
			}
		})
	}
}
