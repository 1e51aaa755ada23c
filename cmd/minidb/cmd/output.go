package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ssargent/minidb/pkg/api"
	"github.com/ssargent/minidb/pkg/config"
	"github.com/ssargent/minidb/pkg/query"
	"github.com/ssargent/minidb/pkg/store"
)

// printer renders query results as aligned tables or as the JSON shapes the
// HTTP API returns
type printer struct {
	w      io.Writer
	format string
	label  *color.Color
}

func newPrinter(w io.Writer, out config.Output) *printer {
	label := color.New(color.FgCyan, color.Bold)
	if !out.Color {
		label.DisableColor()
	}
	return &printer{w: w, format: out.Format, label: label}
}

func (p *printer) json(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
}

// Row prints one decoded row, one column per line
func (p *printer) Row(file string, row *store.Row) error {
	if p.format == "json" {
		return p.json(api.NewRowResponse(file, row))
	}

	fmt.Fprintf(p.w, "Row %d (offset %d)\n", row.Index, row.Offset)
	tw := p.table()
	for _, f := range row.Fields {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.label.Sprint(f.Name), f.Value.Type(), f.Value.Format())
	}
	return tw.Flush()
}

// Schema prints the header report. Columns are numbered from 1.
func (p *printer) Schema(file string, size int64, schema *store.Schema) error {
	if p.format == "json" {
		return p.json(api.NewSchemaResponse(file, schema))
	}

	fmt.Fprintf(p.w, "File:    %s (%s)\n", file, humanize.Bytes(uint64(size)))
	fmt.Fprintf(p.w, "Version: %s\n", query.FormatVersion(schema.Version))
	fmt.Fprintf(p.w, "Columns: %d\n", len(schema.Columns))
	tw := p.table()
	for i, col := range schema.Columns {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", i+1, col.Type, p.label.Sprint(col.Name))
	}
	return tw.Flush()
}

// Column prints one value per row. Table lines are numbered from 1; JSON
// carries the zero-based row index that the row command accepts.
func (p *printer) Column(file, column string, values []query.ColumnValue) error {
	if p.format == "json" {
		return p.json(api.NewColumnValuesResponse(file, column, values))
	}

	fmt.Fprintf(p.w, "%s\n", p.label.Sprint(column))
	tw := p.table()
	for _, v := range values {
		fmt.Fprintf(tw, "  %d\t%s\n", v.Index+1, v.Value)
	}
	return tw.Flush()
}
