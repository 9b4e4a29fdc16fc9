// Package idl represents enum schemas loaded from an Interface Definition Language (IDL).
// In general, Protocol Buffers is used as the IDL. However, it is possible to describe
// enums by another source such as a YAML schema file.
//
// The types in this package are the input of the table compiler. They carry no
// behavior beyond validation of the invariants the compiler depends on.
package idl

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrInvariantViolation is matched by every error returned from Validate.
	ErrInvariantViolation = errors.New("schema invariant violation")

	// ErrEmptyEnum is returned when an enum has no values.
	ErrEmptyEnum = errors.WithMessage(ErrInvariantViolation, "enum has no values")
)

// DuplicateNameError is returned when two values of an enum share a name.
// First and Second are the declaration indices of both occurrences.
type DuplicateNameError struct {
	Enum   string
	Name   string
	First  int
	Second int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate enum value name '%s' (index %d and %d)", e.Enum, e.Name, e.First, e.Second)
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrInvariantViolation
}

// File is a set of enums declared in the same source file.
type File struct {
	// Name is the path of the source file, e.g. "foo/bar.proto".
	Name    string
	Package string
	Enums   []*Enum
}

// Validate validates all enums in f. All failures are reported, not only the first one.
// Each of them is prefixed with the file name.
func (f *File) Validate() error {
	var result error
	for _, e := range f.Enums {
		if err := e.Validate(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, f.Name))
		}
	}
	return result
}

// Enum is an enumeration. The order of Values is the declaration order.
type Enum struct {
	// FullName is the fully-qualified name joined with '.' (e.g. "foo.bar.Color").
	FullName string
	// Name is the last component of FullName.
	Name    string
	Package string
	Values  []*Value
}

// Validate checks that e has at least one value and that value names are unique.
// Returned errors match ErrInvariantViolation.
func (e *Enum) Validate() error {
	if len(e.Values) == 0 {
		return errors.Wrap(ErrEmptyEnum, e.FullName)
	}
	seen := make(map[string]int, len(e.Values))
	for i, v := range e.Values {
		if j, ok := seen[v.Name]; ok {
			return &DuplicateNameError{Enum: e.FullName, Name: v.Name, First: j, Second: i}
		}
		seen[v.Name] = i
	}
	return nil
}

// Value is a named integer constant of an enum.
type Value struct {
	Name   string
	Number int32
}

// FullyQualifiedName returns the pkg-qualified name of name, joined with '.'.
// If pkg is empty, name is returned as it is.
func FullyQualifiedName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
