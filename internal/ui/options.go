package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/muurk/selectbox/internal/selectbox"
)

// Output formats accepted by WriteOptions.
const (
	FormatTable   = "table"
	FormatCompact = "compact"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned for an output format WriteOptions does not know.
type ErrUnknownFormat string

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown output format %q (want table, compact or json)", string(e))
}

// WriteOptions writes an option list in the given format. selected marks
// the option whose id matches; it may be nil.
func WriteOptions(w io.Writer, options []selectbox.Option, selected *string, format string, width int) error {
	switch format {
	case FormatTable, "":
		writeOptionsTable(w, options, selected, width)
		return nil
	case FormatCompact:
		for _, opt := range options {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", opt.ID, OptionText(opt)); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if options == nil {
			options = []selectbox.Option{}
		}
		return enc.Encode(options)
	default:
		return ErrUnknownFormat(format)
	}
}

func writeOptionsTable(w io.Writer, options []selectbox.Option, selected *string, width int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "ID", "TEXT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("  ")
	table.SetAutoWrapText(false)
	if width > 0 {
		table.SetColWidth(clampWidth(width))
	}

	rows := make([][]string, 0, len(options))
	for _, opt := range options {
		marker := ""
		if selected != nil && *selected == opt.ID {
			marker = SelectedMarker
		}
		rows = append(rows, []string{marker, opt.ID, OptionText(opt)})
	}
	table.AppendBulk(rows)
	table.Render()
}

// OptionText flattens an option's display content onto one line.
func OptionText(opt selectbox.Option) string {
	return strings.Join(strings.Fields(selectbox.TextContent(opt.Text)), " ")
}
