// Package enumdesc provides the runtime representation of enum tables generated by cenum.
package enumdesc

import "sort"

// EnumValue is an entry of the value tables.
type EnumValue struct {
	Name  string
	CName string
	Value int32
}

// EnumDescriptor describes an enum. ValuesByNumber must be strictly ascending
// by Value, and ValuesByName must be ascending by Name.
type EnumDescriptor struct {
	FullName    string
	Name        string
	CName       string
	PackageName string

	ValuesByNumber []EnumValue
	ValuesByName   []EnumValue
}

// ValueByNumber returns the canonical value of n.
func (d *EnumDescriptor) ValueByNumber(n int32) (*EnumValue, bool) {
	vals := d.ValuesByNumber
	i := sort.Search(len(vals), func(i int) bool { return vals[i].Value >= n })
	if i < len(vals) && vals[i].Value == n {
		return &vals[i], true
	}
	return nil, false
}

// ValueByName returns the value named name. Aliases are also found.
func (d *EnumDescriptor) ValueByName(name string) (*EnumValue, bool) {
	vals := d.ValuesByName
	i := sort.Search(len(vals), func(i int) bool { return vals[i].Name >= name })
	if i < len(vals) && vals[i].Name == name {
		return &vals[i], true
	}
	return nil, false
}
