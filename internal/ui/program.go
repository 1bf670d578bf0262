package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muurk/selectbox/internal/selectbox"
)

// Printer provides methods for printing UI components to a writer.
// Commands use it for all styled output.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(h *Header) {
	p.Println(h.SetWidth(p.width).Render())
}

// PrintResult prints a result box
func (p *Printer) PrintResult(r *Result) {
	p.Println(r.SetWidth(p.width).Render())
}

// PrintError prints an error result box with hints
func (p *Printer) PrintError(title string, err error, hints ...string) {
	p.PrintResult(NewFailureResult(title, err, hints...))
}

// PrintOptions prints an option list in the given format.
func (p *Printer) PrintOptions(options []selectbox.Option, selected *string, format string) error {
	return WriteOptions(p.out, options, selected, format, p.width)
}

// PrintSelection prints the outcome of an interactive pick. A nil option
// means the selection was cleared.
func (p *Printer) PrintSelection(name string, opt *selectbox.Option) {
	if opt == nil {
		p.PrintResult(NewWarningResult("Selection cleared", Param{Key: "Widget", Value: name}))
		return
	}
	r := NewSuccessResult("Option selected")
	if name != "" {
		r.AddDetail("Widget", name)
	}
	r.AddDetail("Value", opt.ID).AddDetail("Text", OptionText(*opt))
	p.PrintResult(r)
}
