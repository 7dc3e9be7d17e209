// Package frame loads tabular files into an in-memory dataset and selects
// row subsets from it. The dataset wraps a dataframe-go DataFrame and keeps
// the original row number of every row so previews can label rows the way
// the source file ordered them.
package frame

import (
	"fmt"
	"math/rand"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/vbos70/viewdf/internal/sliceexpr"
)

// Dataset is an immutable in-memory table with named columns.
type Dataset struct {
	df *dataframe.DataFrame

	// index holds the original row number of each row; nil means the
	// identity mapping (freshly loaded data).
	index []int
}

// New wraps a DataFrame as a Dataset with identity row numbering.
func New(df *dataframe.DataFrame) *Dataset {
	return &Dataset{df: df}
}

// NRows returns the number of rows.
func (d *Dataset) NRows() int {
	return d.df.NRows()
}

// NCols returns the number of columns.
func (d *Dataset) NCols() int {
	return len(d.df.Series)
}

// Columns returns the column names in dataset order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.df.Series))
	for i, s := range d.df.Series {
		names[i] = s.Name()
	}
	return names
}

// ColType returns the dataframe-go type name of column col
// ("float64", "int64", "string", "time", ...).
func (d *Dataset) ColType(col int) string {
	return d.df.Series[col].Type()
}

// Value returns the value at (row, col), or nil when missing.
func (d *Dataset) Value(row, col int) interface{} {
	return d.df.Series[col].Value(row)
}

// ValueString returns the display form of the value at (row, col).
func (d *Dataset) ValueString(row, col int) string {
	return d.df.Series[col].ValueString(row)
}

// RowLabel returns the original row number of row i.
func (d *Dataset) RowLabel(i int) int {
	if d.index == nil {
		return i
	}
	return d.index[i]
}

// Head selects the first n rows (fewer when the dataset is shorter).
func (d *Dataset) Head(n int) *Dataset {
	if n > d.NRows() {
		n = d.NRows()
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return d.take(rows)
}

// Tail selects the last n rows in original order.
func (d *Dataset) Tail(n int) *Dataset {
	total := d.NRows()
	if n > total {
		n = total
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = total - n + i
	}
	return d.take(rows)
}

// Sample selects n rows drawn without replacement, in random order.
// n larger than the row count is an error rather than a truncation.
func (d *Dataset) Sample(n int) (*Dataset, error) {
	total := d.NRows()
	if n > total {
		return nil, fmt.Errorf("cannot sample %d rows from %d", n, total)
	}
	return d.take(rand.Perm(total)[:n]), nil
}

// Slice selects the rows named by a slice specification.
func (d *Dataset) Slice(spec sliceexpr.Spec) *Dataset {
	return d.take(spec.Indices(d.NRows()))
}

// take builds a new Dataset from the given row indices, preserving each
// column's series type and composing original row numbers.
func (d *Dataset) take(rows []int) *Dataset {
	series := make([]dataframe.Series, len(d.df.Series))
	for i, s := range d.df.Series {
		ns := emptyLike(s)
		for _, r := range rows {
			switch s.Type() {
			case "float64", "int64", "string", "time":
				ns.Append(s.Value(r))
			default:
				if s.Value(r) == nil {
					ns.Append(nil)
				} else {
					ns.Append(s.ValueString(r))
				}
			}
		}
		series[i] = ns
	}

	index := make([]int, len(rows))
	for i, r := range rows {
		index[i] = d.RowLabel(r)
	}
	return &Dataset{df: dataframe.NewDataFrame(series...), index: index}
}

// emptyLike returns an empty series of the same name and type as s.
// Types without a dedicated series fall back to string.
func emptyLike(s dataframe.Series) dataframe.Series {
	switch s.Type() {
	case "float64":
		return dataframe.NewSeriesFloat64(s.Name(), nil)
	case "int64":
		return dataframe.NewSeriesInt64(s.Name(), nil)
	case "time":
		return dataframe.NewSeriesTime(s.Name(), nil)
	default:
		return dataframe.NewSeriesString(s.Name(), nil)
	}
}
