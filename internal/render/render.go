// Package render prints datasets and statistics as text tables.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/vbos70/viewdf/internal/describe"
	"github.com/vbos70/viewdf/internal/frame"
)

// Preview renders the dataset as a table with a leading column of original
// row numbers. At most maxRows rows are printed; elided rows are noted in
// the trailer.
func Preview(w io.Writer, ds *frame.Dataset, maxRows int) {
	total := ds.NRows()
	shown := total
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}

	t := newTable(w)
	header := table.Row{"#"}
	for _, name := range ds.Columns() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for row := 0; row < shown; row++ {
		r := table.Row{ds.RowLabel(row)}
		for col := 0; col < ds.NCols(); col++ {
			r = append(r, cell(ds, row, col))
		}
		t.AppendRow(r)
	}
	t.Render()

	if shown < total {
		fmt.Fprintf(w, "(%d rows, showing first %d)\n", total, shown)
	} else {
		fmt.Fprintf(w, "(%d rows)\n", total)
	}
}

// Shape prints the dataset shape as a (rows, cols) tuple.
func Shape(w io.Writer, ds *frame.Dataset) {
	fmt.Fprintf(w, "(%d, %d)\n", ds.NRows(), ds.NCols())
}

// Columns prints column names one per line, in dataset order.
func Columns(w io.Writer, ds *frame.Dataset) {
	for _, name := range ds.Columns() {
		fmt.Fprintln(w, name)
	}
}

// Info prints per-column name, type and non-null count, then the shape.
func Info(w io.Writer, ds *frame.Dataset) {
	t := newTable(w)
	t.AppendHeader(table.Row{"column", "type", "non-null"})
	for col, name := range ds.Columns() {
		nonNull := 0
		for row := 0; row < ds.NRows(); row++ {
			if ds.Value(row, col) != nil {
				nonNull++
			}
		}
		t.AppendRow(table.Row{name, ds.ColType(col), nonNull})
	}
	t.Render()
	Shape(w, ds)
}

// statRows is the fixed row order of describe tables: the numeric set
// first, then the categorical set.
var statRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max", "unique", "top", "freq"}

// Describe renders one statistics column per dataset column, with blank
// cells for statistics that do not apply to a column's kind.
func Describe(w io.Writer, stats []describe.ColumnStats) {
	t := newTable(w)
	header := table.Row{""}
	for _, cs := range stats {
		header = append(header, cs.Column)
	}
	t.AppendHeader(header)

	for _, name := range statRows {
		row := table.Row{name}
		used := false
		for _, cs := range stats {
			v := statCell(cs, name)
			if v != "" {
				used = true
			}
			row = append(row, v)
		}
		if used {
			t.AppendRow(row)
		}
	}
	t.Render()
}

func statCell(cs describe.ColumnStats, name string) string {
	if name == "count" {
		return strconv.Itoa(cs.Count)
	}
	if cs.Kind == describe.Numeric {
		if cs.Count == 0 {
			return ""
		}
		switch name {
		case "mean":
			return formatFloat(cs.Mean)
		case "std":
			return formatFloat(cs.Std)
		case "min":
			return formatFloat(cs.Min)
		case "25%":
			return formatFloat(cs.Q25)
		case "50%":
			return formatFloat(cs.Median)
		case "75%":
			return formatFloat(cs.Q75)
		case "max":
			return formatFloat(cs.Max)
		}
		return ""
	}
	switch name {
	case "unique":
		return strconv.Itoa(cs.Unique)
	case "top":
		return cs.Top
	case "freq":
		return strconv.Itoa(cs.Freq)
	}
	return ""
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func cell(ds *frame.Dataset, row, col int) string {
	if ds.Value(row, col) == nil {
		return "NaN"
	}
	return ds.ValueString(row, col)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
