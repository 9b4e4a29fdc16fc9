// Package present defines presenters for rendering enum tables.
package present

import (
	"path"
	"strings"

	"github.com/ktr0731/cenum/enumtable"
)

// Available output formats.
const (
	FormatC     = "c"
	FormatGo    = "go"
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatName  = "name"
)

// Formats returns all available output formats.
func Formats() []string {
	return []string{FormatC, FormatGo, FormatTable, FormatYAML, FormatJSON, FormatName}
}

// File is the set of enum tables built from the same source file.
type File struct {
	// Name is the path of the source file, e.g. "foo/bar.proto".
	Name    string
	Package string
	Tables  []*enumtable.Builder
}

// Output is a rendered file.
type Output struct {
	// Name is the path relative to the output directory.
	Name    string
	Content []byte
}

// Presenter renders tables of a source file.
type Presenter interface {
	// Present receives f and returns rendered outputs. The outputs are the same
	// for the same f.
	Present(f *File) ([]*Output, error)
}

// Separator is implemented by presenters whose outputs can be concatenated
// into one stream. Separator returns the text written before the output
// named name when several outputs are written to the same stream.
type Separator interface {
	Separator(name string) string
}

// BaseName returns name without its extension, e.g. "foo/bar" for "foo/bar.proto".
func BaseName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// Document is a serializable form of all tables of a file.
type Document struct {
	File    string          `json:"file" yaml:"file"`
	Package string          `json:"package,omitempty" yaml:"package,omitempty"`
	Enums   []*EnumDocument `json:"enums" yaml:"enums"`
}

// EnumDocument is a serializable form of the tables of an enum.
type EnumDocument struct {
	FullName       string           `json:"fullName" yaml:"fullName"`
	ShortName      string           `json:"shortName" yaml:"shortName"`
	CName          string           `json:"cName" yaml:"cName"`
	PackageName    string           `json:"packageName,omitempty" yaml:"packageName,omitempty"`
	UniqueCount    int              `json:"uniqueValueCount" yaml:"uniqueValueCount"`
	TotalCount     int              `json:"valueCount" yaml:"valueCount"`
	Definition     []*ValueDocument `json:"definition" yaml:"definition"`
	ValuesByNumber []*ValueDocument `json:"valuesByNumber" yaml:"valuesByNumber"`
	ValuesByName   []*ValueDocument `json:"valuesByName" yaml:"valuesByName"`
}

// ValueDocument is a serializable form of a table entry.
type ValueDocument struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	CName string `json:"cName" yaml:"cName"`
	Value int32  `json:"value" yaml:"value"`
}

// NewDocument converts f to a Document.
func NewDocument(f *File) *Document {
	doc := &Document{
		File:    f.Name,
		Package: f.Package,
		Enums:   make([]*EnumDocument, 0, len(f.Tables)),
	}
	for _, t := range f.Tables {
		d := t.Descriptor()
		ed := &EnumDocument{
			FullName:       d.FullName,
			ShortName:      d.ShortName,
			CName:          d.CName,
			PackageName:    d.PackageName,
			UniqueCount:    d.NUnique,
			TotalCount:     d.TotalCount,
			ValuesByNumber: entryDocuments(t.ValuesByNumber()),
			ValuesByName:   entryDocuments(t.ValuesByName()),
		}
		for _, c := range t.TypeDefinition() {
			ed.Definition = append(ed.Definition, &ValueDocument{CName: c.Name, Value: c.Value})
		}
		doc.Enums = append(doc.Enums, ed)
	}
	return doc
}

func entryDocuments(entries []enumtable.Entry) []*ValueDocument {
	docs := make([]*ValueDocument, len(entries))
	for i, e := range entries {
		docs[i] = &ValueDocument{Name: e.Name, CName: e.CName, Value: e.Value}
	}
	return docs
}
