package format

import (
	"fmt"
	"io"
	"strings"
)

// TextFormatter prints one "Header: value" line per cell
type TextFormatter struct {
	out io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{out: w}
}

// Format formats data as simple text
func (f *TextFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case nil:
		fmt.Fprintln(f.out, "No data")
	case string:
		fmt.Fprintln(f.out, v)
	case Tabular:
		f.formatTabular(v)
	case fmt.Stringer:
		fmt.Fprintln(f.out, v.String())
	default:
		fmt.Fprintf(f.out, "%+v\n", v)
	}
	return nil
}

func (f *TextFormatter) formatTabular(t Tabular) {
	headers := t.Headers()
	rows := t.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(f.out, "No data")
		return
	}

	if len(headers) == 2 && headers[0] == fieldHeaders[0] {
		f.formatFields(rows)
	} else {
		f.formatRecords(headers, rows)
	}

	if ft, ok := t.(Footer); ok {
		if line := ft.Footer(); line != "" {
			fmt.Fprintln(f.out)
			fmt.Fprintln(f.out, line)
		}
	}
}

// formatFields prints a Field/Value table as "Name: value" lines
func (f *TextFormatter) formatFields(rows [][]string) {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		fmt.Fprintf(f.out, "%-*s  %s\n", width+1, row[0]+":", row[1])
	}
}

// formatRecords prints each row as a block of "Header: value" lines
func (f *TextFormatter) formatRecords(headers []string, rows [][]string) {
	width := 0
	for _, h := range headers {
		if len(h) > width {
			width = len(h)
		}
	}

	for i, row := range rows {
		if i > 0 {
			fmt.Fprintln(f.out)
		}
		for j, cell := range row {
			if j >= len(headers) || strings.TrimSpace(cell) == "" {
				continue
			}
			fmt.Fprintf(f.out, "%-*s  %s\n", width+1, headers[j]+":", cell)
		}
	}
}
