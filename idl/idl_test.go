package idl_test

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/ktr0731/cenum/idl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnum(names ...string) *idl.Enum {
	e := &idl.Enum{FullName: "foo.Color", Name: "Color", Package: "foo"}
	for i, n := range names {
		e.Values = append(e.Values, &idl.Value{Name: n, Number: int32(i)})
	}
	return e
}

func TestEnumValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, newEnum("RED", "GREEN").Validate())
	})

	t.Run("empty", func(t *testing.T) {
		err := newEnum().Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, idl.ErrEmptyEnum))
		assert.True(t, errors.Is(err, idl.ErrInvariantViolation))
		assert.Contains(t, err.Error(), "foo.Color")
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := newEnum("RED", "GREEN", "RED").Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, idl.ErrInvariantViolation))

		var dupErr *idl.DuplicateNameError
		require.True(t, errors.As(err, &dupErr))
		assert.Equal(t, "RED", dupErr.Name)
		assert.Equal(t, 0, dupErr.First)
		assert.Equal(t, 2, dupErr.Second)
	})

	t.Run("aliased numbers are allowed", func(t *testing.T) {
		e := &idl.Enum{FullName: "Color", Name: "Color", Values: []*idl.Value{
			{Name: "RED", Number: 0},
			{Name: "CRIMSON", Number: 0},
		}}
		assert.NoError(t, e.Validate())
	})
}

func TestFileValidate(t *testing.T) {
	f := &idl.File{
		Name: "foo.proto",
		Enums: []*idl.Enum{
			newEnum(),
			newEnum("RED"),
			newEnum("A", "A"),
		},
	}
	err := f.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	assert.True(t, errors.Is(merr.Errors[0], idl.ErrEmptyEnum))
	assert.Contains(t, merr.Errors[0].Error(), "foo.proto: ")
	var dupErr *idl.DuplicateNameError
	assert.True(t, errors.As(merr.Errors[1], &dupErr))
}

func TestFullyQualifiedName(t *testing.T) {
	cases := map[string]struct {
		pkg, name string
		expected  string
	}{
		"with package":    {"foo.bar", "Color", "foo.bar.Color"},
		"without package": {"", "Color", "Color"},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.expected, idl.FullyQualifiedName(c.pkg, c.name))
		})
	}
}
