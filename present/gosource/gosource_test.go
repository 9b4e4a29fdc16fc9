package gosource_test

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/ktr0731/cenum/enumtable"
	"github.com/ktr0731/cenum/idl"
	"github.com/ktr0731/cenum/present"
	"github.com/ktr0731/cenum/present/gosource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFile(t *testing.T) *present.File {
	t.Helper()

	b, err := enumtable.New(&idl.Enum{
		FullName: "foo.bar.Color",
		Name:     "Color",
		Package:  "foo.bar",
		Values: []*idl.Value{
			{Name: "RED", Number: 0},
			{Name: "CRIMSON", Number: 0},
			{Name: "GREEN", Number: 1},
			{Name: "NEGATIVE", Number: -2},
		},
	}, nil)
	require.NoError(t, err)
	return &present.File{Name: "foo/color.proto", Package: "foo.bar", Tables: []*enumtable.Builder{b}}
}

func TestPresenter(t *testing.T) {
	outs, err := gosource.New().Present(newFile(t))
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "foo/color.enum.go", outs[0].Name)

	src := string(outs[0].Content)
	_, err = parser.ParseFile(token.NewFileSet(), outs[0].Name, src, parser.AllErrors)
	require.NoError(t, err, "generated code must be valid Go:\n%s", src)

	for _, s := range []string{
		"// Code generated by cenum. DO NOT EDIT.",
		"package bar\n",
		`"github.com/ktr0731/cenum/enumdesc"`,
		"type FooBarColor int32",
		"FooBarColor_CRIMSON",
		"FooBarColorDescriptor = &enumdesc.EnumDescriptor{",
		`CName: "FOO__BAR__COLOR__NEGATIVE"`,
		"func (x FooBarColor) String() string {",
	} {
		assert.Contains(t, src, s)
	}

	// CRIMSON is an alias of RED, so that it appears only in ValuesByName.
	// ValuesByNumber is the last field of the descriptor.
	byNumber := src[strings.Index(src, "ValuesByNumber"):]
	byNumber = byNumber[:strings.Index(byNumber, "\n}\n")]
	assert.NotContains(t, byNumber, "CRIMSON")
}

func TestPresenter_package(t *testing.T) {
	outs, err := gosource.New(gosource.Package("colors")).Present(newFile(t))
	require.NoError(t, err)
	assert.Contains(t, string(outs[0].Content), "package colors\n")
}

func TestTypeName(t *testing.T) {
	cases := map[string]string{
		"foo__color":              "FooColor",
		"shop__order__item__size": "ShopOrderItemSize",
		"color":                   "Color",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, gosource.TypeName(in))
	}
}

func TestPackageName(t *testing.T) {
	cases := map[string]string{
		"foo.bar":   "bar",
		"":          "enums",
		"Shop":      "shop",
		"my_pkg.v1": "v1",
		"x.9lives":  "lives",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, gosource.PackageName(in), in)
	}
}
