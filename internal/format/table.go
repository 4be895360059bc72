package format

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter handles table output formatting
type TableFormatter struct {
	out       io.Writer
	useColors bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer, useColors bool) *TableFormatter {
	return &TableFormatter{
		out:       w,
		useColors: useColors,
	}
}

// Format renders Tabular data; anything else falls back to YAML
func (f *TableFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Fprintln(f.out, "No data to display")
		return nil
	}

	t, ok := data.(Tabular)
	if !ok {
		return NewYAMLFormatter(f.out).Format(data)
	}

	rows := t.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(f.out, "No data to display")
		return nil
	}

	table := tablewriter.NewWriter(f.out)
	table.SetHeader(t.Headers())
	f.configureTable(table, len(t.Headers()))
	table.AppendBulk(rows)
	table.Render()

	if ft, ok := data.(Footer); ok {
		if line := ft.Footer(); line != "" {
			fmt.Fprintln(f.out)
			fmt.Fprintln(f.out, line)
		}
	}
	return nil
}

// configureTable sets up table appearance
func (f *TableFormatter) configureTable(table *tablewriter.Table, columns int) {
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if f.useColors {
		colors := make([]tablewriter.Colors, columns)
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor}
		}
		table.SetHeaderColor(colors...)
	}
}
