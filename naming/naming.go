// Package naming derives C identifiers from fully-qualified Protocol Buffers names.
//
// All functions operate on ASCII bytes, which keeps generated identifiers
// identical across platforms and locales.
package naming

import "strings"

// Separator joins the components of a derived identifier.
const Separator = "__"

// Namer provides identifiers used by generated code.
type Namer interface {
	// TypeName returns the type identifier of the enum named fullName.
	TypeName(fullName string) string
	// ConstantName returns the constant identifier of the value named name.
	ConstantName(fullName, name string) string
	// LowerName returns the lower-case identifier used for tables and descriptors.
	LowerName(fullName string) string
}

// C is the Namer following protobuf-c conventions.
type C struct{}

func (C) TypeName(fullName string) string { return FullNameToC(fullName) }

func (C) ConstantName(fullName, name string) string {
	return FullNameToUpper(fullName) + Separator + ToUpper(name)
}

func (C) LowerName(fullName string) string { return FullNameToLower(fullName) }

// FullNameToC converts each dotted component by ToCamel and joins them with Separator.
// For example, "foo.bar_baz.Color" is converted to "Foo__BarBaz__Color".
func FullNameToC(fullName string) string {
	return convertPieces(fullName, ToCamel)
}

// FullNameToUpper converts each dotted component by CamelToUpper and joins them with Separator.
func FullNameToUpper(fullName string) string {
	return convertPieces(fullName, CamelToUpper)
}

// FullNameToLower converts each dotted component by CamelToLower and joins them with Separator.
func FullNameToLower(fullName string) string {
	return convertPieces(fullName, CamelToLower)
}

func convertPieces(fullName string, conv func(string) string) string {
	var b strings.Builder
	for _, p := range strings.Split(fullName, ".") {
		if p == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(Separator)
		}
		b.WriteString(conv(p))
	}
	return b.String()
}

// ToCamel removes '_' and upper-cases the letter following it. The first letter is also upper-cased.
func ToCamel(name string) string {
	b := make([]byte, 0, len(name))
	capNext := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
			capNext = true
		case capNext && isAlpha(c):
			b = append(b, toUpper(c))
			capNext = false
		default:
			b = append(b, c)
			capNext = false
		}
	}
	return string(b)
}

// CamelToUpper inserts '_' before each upper-case letter that follows a non upper-case one,
// then upper-cases the whole name. "FooBar" is converted to "FOO_BAR".
func CamelToUpper(name string) string {
	return camelTo(name, toUpper)
}

// CamelToLower is the same as CamelToUpper, but lower-cases the whole name.
func CamelToLower(name string) string {
	return camelTo(name, toLower)
}

func camelTo(name string, conv func(byte) byte) string {
	b := make([]byte, 0, len(name)+len(name)/2)
	wasUpper := true // suppress the leading '_'
	for i := 0; i < len(name); i++ {
		c := name[i]
		upper := isUpper(c)
		if upper && !wasUpper {
			b = append(b, '_')
		}
		b = append(b, conv(c))
		wasUpper = upper
	}
	return string(b)
}

// ToUpper upper-cases ASCII letters of name.
func ToUpper(name string) string {
	b := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		b[i] = toUpper(name[i])
	}
	return string(b)
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func isAlpha(c byte) bool { return isUpper(c) || isLower(c) }

func toUpper(c byte) byte {
	if isLower(c) {
		return c - 'a' + 'A'
	}
	return c
}

func toLower(c byte) byte {
	if isUpper(c) {
		return c - 'A' + 'a'
	}
	return c
}
