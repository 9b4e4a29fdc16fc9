package cui_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/ktr0731/cenum/cui"
	"github.com/stretchr/testify/assert"
)

func TestUI(t *testing.T) {
	w, ew := new(bytes.Buffer), new(bytes.Buffer)
	ui := cui.New(cui.Writer(w), cui.ErrWriter(ew))

	ui.Output("foo")
	ui.Info("bar")
	ui.Error("baz")

	assert.Equal(t, "foo\nbar\n", w.String())
	assert.Equal(t, "baz\n", ew.String())
	assert.Equal(t, w, ui.Writer())
	assert.Equal(t, ew, ui.ErrWriter())
}

func TestColoredUI(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	w, ew := new(bytes.Buffer), new(bytes.Buffer)
	ui := cui.NewColored(cui.New(cui.Writer(w), cui.ErrWriter(ew)))

	ui.Output("foo")
	ui.Info("bar")
	ui.Error("baz")

	assert.Equal(t, "foo\n"+color.BlueString("bar")+"\n", w.String())
	assert.Equal(t, color.RedString("baz")+"\n", ew.String())
	assert.NotEqual(t, "baz\n", ew.String())

	assert.Same(t, ui, cui.NewColored(ui), "NewColored must not wrap a colored UI twice")
}
