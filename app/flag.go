package app

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// flags defines available command line flags.
type flags struct {
	common struct {
		path      []string
		format    string
		out       string
		dllexport string
		goPackage string
	}

	meta struct {
		verbose bool
		version bool
		help    bool
	}
}

// validate defines invalid conditions and validates whether f has invalid conditions.
func (f *flags) validate() error {
	var result error
	invalidCases := []struct {
		name string
		cond bool
	}{
		{"cannot specify both of --dllexport and --go-package", f.common.dllexport != "" && f.common.goPackage != ""},
	}
	for _, c := range invalidCases {
		if c.cond {
			result = multierror.Append(result, errors.New(c.name))
		}
	}
	return result
}
