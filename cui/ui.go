// Package cui defines charcter user interfaces for I/O.
package cui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
)

// UI provides formatted output for the application.
type UI interface {
	Output(s string)
	Info(s string)
	Error(s string)

	Writer() io.Writer
	ErrWriter() io.Writer
}

type basicUI struct {
	writer, errWriter io.Writer
}

// Option represents an option for New.
type Option func(*basicUI)

// Writer replaces the writer for Output and Info.
func Writer(w io.Writer) Option {
	return func(u *basicUI) {
		u.writer = w
	}
}

// ErrWriter replaces the writer for Error.
func ErrWriter(ew io.Writer) Option {
	return func(u *basicUI) {
		u.errWriter = ew
	}
}

// New returns a new UI with options. The default writers are the colorable stdout and stderr.
func New(opts ...Option) UI {
	ui := &basicUI{
		writer:    colorable.NewColorableStdout(),
		errWriter: colorable.NewColorableStderr(),
	}
	for _, opt := range opts {
		opt(ui)
	}
	return ui
}

// Output writes out the passed argument s to Writer with a line break.
func (u *basicUI) Output(s string) {
	fmt.Fprintln(u.writer, s)
}

// Info is the same as Output, but distinguish these for composition.
func (u *basicUI) Info(s string) {
	u.Output(s)
}

// Error writes out the passed argument s to ErrWriter with a line break.
func (u *basicUI) Error(s string) {
	fmt.Fprintln(u.errWriter, s)
}

func (u *basicUI) Writer() io.Writer {
	return u.writer
}

func (u *basicUI) ErrWriter() io.Writer {
	return u.errWriter
}

type coloredUI struct {
	UI
}

// NewColored wraps provided ui with coloredUI.
// If ui is already colored, NewColored returns it as it is.
func NewColored(ui UI) UI {
	if ui, ok := ui.(*coloredUI); ok {
		return ui
	}
	return &coloredUI{ui}
}

// Info is the same as basicUI.Info, but it is colored blue.
func (u *coloredUI) Info(s string) {
	u.UI.Info(color.BlueString(s))
}

// Error is the same as basicUI.Error, but it is colored red.
func (u *coloredUI) Error(s string) {
	u.UI.Error(color.RedString(s))
}
