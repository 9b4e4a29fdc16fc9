// Package enumtable builds the static tables the runtime needs to look up enum values.
//
// For an enum, Builder produces:
//
//   - the type definition: every value in declaration order.
//   - the by-number table: one entry per distinct number, ascending by number.
//     If some names alias the same number, the one declared first is kept.
//   - the by-name table: every value, ascending by name (byte-wise).
//   - the descriptor that ties both tables together.
//
// The output depends only on the input enum, so identical schemas always
// produce identical tables.
package enumtable

import (
	"sort"

	"github.com/ktr0731/cenum/idl"
	"github.com/ktr0731/cenum/naming"
	"github.com/pkg/errors"
)

// Constant is an entry of the type definition.
type Constant struct {
	Name  string
	Value int32
}

// Entry is an entry of the by-number or by-name table.
type Entry struct {
	// Name is the name declared in the schema.
	Name string
	// CName is the generated constant identifier.
	CName string
	Value int32
}

// Descriptor is the metadata record registered to the runtime.
type Descriptor struct {
	FullName    string
	ShortName   string
	CName       string
	LCName      string
	PackageName string

	// NUnique is the length of the by-number table.
	NUnique int
	// ByNumber is the identifier of the by-number table.
	ByNumber string
	// TotalCount is the length of the by-name table.
	TotalCount int
	// ByName is the identifier of the by-name table.
	ByName string

	// Symbol is the identifier of the descriptor itself.
	Symbol string
}

// Builder holds the tables of an enum. It is immutable after New, so
// it is safe to call its methods from multiple goroutines.
type Builder struct {
	enum *idl.Enum

	typeDef    []Constant
	byNumber   []Entry
	byName     []Entry
	descriptor Descriptor
}

// New validates e and builds its tables. If n is nil, naming.C is used.
// Errors returned from (*idl.Enum).Validate are returned as they are.
func New(e *idl.Enum, n naming.Namer) (*Builder, error) {
	if e == nil {
		return nil, errors.New("enum must not be nil")
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		n = naming.C{}
	}

	// Copy values so that later modification of e doesn't affect the tables.
	vals := make([]idl.Value, len(e.Values))
	for i, v := range e.Values {
		vals[i] = *v
	}

	b := &Builder{
		enum: &idl.Enum{FullName: e.FullName, Name: e.Name, Package: e.Package},
	}
	for i := range vals {
		b.enum.Values = append(b.enum.Values, &vals[i])
	}

	cnames := make([]string, len(vals))
	for i, v := range vals {
		cnames[i] = n.ConstantName(e.FullName, v.Name)
	}
	entry := func(i int) Entry {
		return Entry{Name: vals[i].Name, CName: cnames[i], Value: vals[i].Number}
	}

	b.typeDef = make([]Constant, len(vals))
	for i, v := range vals {
		b.typeDef[i] = Constant{Name: cnames[i], Value: v.Number}
	}

	for _, idx := range uniqueByNumber(vals) {
		b.byNumber = append(b.byNumber, entry(idx))
	}
	for _, idx := range sortedByName(vals) {
		b.byName = append(b.byName, entry(idx))
	}

	lc := n.LowerName(e.FullName)
	b.descriptor = Descriptor{
		FullName:    e.FullName,
		ShortName:   e.Name,
		CName:       n.TypeName(e.FullName),
		LCName:      lc,
		PackageName: e.Package,
		NUnique:     len(b.byNumber),
		ByNumber:    lc + "_enum_values_by_number",
		TotalCount:  len(b.byName),
		ByName:      lc + "_enum_values_by_name",
		Symbol:      lc + naming.Separator + "descriptor",
	}
	return b, nil
}

type valueIndex struct {
	value int32
	index int
}

// uniqueByNumber returns declaration indices ascending by number. Only the
// smallest index of each number is kept.
func uniqueByNumber(vals []idl.Value) []int {
	vi := make([]valueIndex, len(vals))
	for i, v := range vals {
		vi[i] = valueIndex{value: v.Number, index: i}
	}
	sort.Slice(vi, func(i, j int) bool {
		if vi[i].value != vi[j].value {
			return vi[i].value < vi[j].value
		}
		return vi[i].index < vi[j].index
	})

	indices := make([]int, 0, len(vi))
	for i, v := range vi {
		if i > 0 && vi[i-1].value == v.value {
			continue
		}
		indices = append(indices, v.index)
	}
	return indices
}

type nameIndex struct {
	name  string
	index int
}

// sortedByName returns all declaration indices ascending by name. Equal names
// keep the declaration order.
func sortedByName(vals []idl.Value) []int {
	ni := make([]nameIndex, len(vals))
	for i, v := range vals {
		ni[i] = nameIndex{name: v.Name, index: i}
	}
	sort.SliceStable(ni, func(i, j int) bool {
		return ni[i].name < ni[j].name
	})

	indices := make([]int, len(ni))
	for i, n := range ni {
		indices[i] = n.index
	}
	return indices
}

// Enum returns a copy of the enum the tables are built from.
func (b *Builder) Enum() *idl.Enum {
	e := *b.enum
	e.Values = make([]*idl.Value, len(b.enum.Values))
	for i, v := range b.enum.Values {
		v := *v
		e.Values[i] = &v
	}
	return &e
}

// TypeDefinition returns all values in declaration order, including aliases.
func (b *Builder) TypeDefinition() []Constant {
	return append([]Constant(nil), b.typeDef...)
}

// ValuesByNumber returns the by-number table. Numbers are strictly ascending.
func (b *Builder) ValuesByNumber() []Entry {
	return append([]Entry(nil), b.byNumber...)
}

// ValuesByName returns the by-name table. Names are strictly ascending.
func (b *Builder) ValuesByName() []Entry {
	return append([]Entry(nil), b.byName...)
}

// Descriptor returns the descriptor of the enum.
func (b *Builder) Descriptor() *Descriptor {
	d := b.descriptor
	return &d
}
