package logger_test

import (
	"bytes"
	"testing"

	"github.com/ktr0731/cenum/logger"
	"github.com/stretchr/testify/assert"
)

func TestScriptln(t *testing.T) {
	cases := map[string]struct {
		setOutput bool
		called    bool
	}{
		"enabled":  {setOutput: true, called: true},
		"disabled": {setOutput: false, called: false},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			defer logger.Reset()
			w := new(bytes.Buffer)
			if c.setOutput {
				logger.SetOutput(w)
			}
			var called bool
			logger.Scriptln(func() []interface{} {
				called = true
				return []interface{}{"foo.Color", 3}
			})
			assert.Equal(t, c.called, called, "f must be evaluated only if the output is enabled")
			if c.setOutput {
				assert.Equal(t, "cenum: foo.Color 3\n", w.String())
			} else {
				assert.Empty(t, w.String())
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	defer logger.Reset()
	w := new(bytes.Buffer)
	logger.SetOutput(w)
	logger.Printf("wrote %s", "color.pb-c.c")
	assert.Equal(t, "cenum: wrote color.pb-c.c\n", w.String())

	w.Reset()
	logger.SetPrefix("gen: ")
	logger.Println("done")
	assert.Equal(t, "gen: done\n", w.String())
}
