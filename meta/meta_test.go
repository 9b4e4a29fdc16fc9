package meta

import (
	"testing"

	version "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", Version.String())
	assert.True(t, Version.LessThan(version.Must(version.NewSemver("1.0.0"))))
}
