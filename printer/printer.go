// Package printer provides a text printer for code generation.
//
// Templates passed to Print refer to variables as $name$. "$$" is printed as
// a single '$'. Indent and Outdent control the indentation inserted at the
// beginning of each non-empty line.
package printer

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const indentUnit = "  "

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUnterminated      = errors.New("unterminated variable")
	ErrOutdent           = errors.New("outdent without matching indent")
)

// Vars binds variable names to their values.
type Vars map[string]string

// Printer writes templates to an io.Writer. After an error occurs, Printer
// discards all subsequent output and Err reports the first error.
type Printer struct {
	w           io.Writer
	indent      string
	atLineStart bool
	err         error
}

// New returns a Printer that writes to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, atLineStart: true}
}

// Print substitutes variables of text by vars and writes the result.
func (p *Printer) Print(vars Vars, text string) {
	if p.err != nil {
		return
	}

	var buf bytes.Buffer
	for len(text) > 0 {
		i := strings.IndexAny(text, "$\n")
		if i == -1 {
			p.writeLine(&buf, text)
			break
		}
		p.writeLine(&buf, text[:i])

		if text[i] == '\n' {
			buf.WriteByte('\n')
			p.atLineStart = true
			text = text[i+1:]
			continue
		}

		end := strings.IndexByte(text[i+1:], '$')
		if end == -1 {
			p.err = errors.Wrapf(ErrUnterminated, "in '%s'", text[i:])
			return
		}
		name := text[i+1 : i+1+end]
		text = text[i+1+end+1:]
		if name == "" {
			p.writeLine(&buf, "$")
			continue
		}
		val, ok := vars[name]
		if !ok {
			p.err = errors.Wrapf(ErrUndefinedVariable, "'%s'", name)
			return
		}
		p.writeLine(&buf, val)
	}

	if _, err := p.w.Write(buf.Bytes()); err != nil {
		p.err = errors.Wrap(err, "failed to write")
	}
}

// writeLine writes s which doesn't contain the line break of the template.
func (p *Printer) writeLine(buf *bytes.Buffer, s string) {
	if s == "" {
		return
	}
	if p.atLineStart {
		buf.WriteString(p.indent)
		p.atLineStart = false
	}
	buf.WriteString(s)
}

// Indent increases the indentation level.
func (p *Printer) Indent() {
	p.indent += indentUnit
}

// Outdent decreases the indentation level.
func (p *Printer) Outdent() {
	if p.indent == "" {
		if p.err == nil {
			p.err = ErrOutdent
		}
		return
	}
	p.indent = p.indent[len(indentUnit):]
}

// Err returns the first error that occurred.
func (p *Printer) Err() error {
	return p.err
}
