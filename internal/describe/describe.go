// Package describe computes per-column summary statistics over a dataset,
// split by column kind: numeric columns get count/mean/std/min/quartiles/
// max, everything else gets count/unique/top/freq.
package describe

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vbos70/viewdf/internal/frame"
)

// Kind discriminates the two statistic sets.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

// ColumnStats holds the statistics of one column. Only the fields of the
// column's Kind are meaningful.
type ColumnStats struct {
	Column string
	Kind   Kind

	// Count is the number of non-missing values for either kind.
	Count int

	// Numeric statistics. Std uses the sample estimator (ddof=1) and the
	// quartiles use linear interpolation.
	Mean, Std        float64
	Min, Max         float64
	Q25, Median, Q75 float64

	// Categorical statistics. Top is the most frequent value, first seen
	// winning ties.
	Unique int
	Top    string
	Freq   int
}

// ColumnNotFoundError reports a describe target absent from the dataset.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// Column computes statistics for the named column.
func Column(ds *frame.Dataset, name string) (ColumnStats, error) {
	for col, colName := range ds.Columns() {
		if colName == name {
			return describeColumn(ds, col), nil
		}
	}
	return ColumnStats{}, &ColumnNotFoundError{Column: name}
}

// All computes statistics for every column in dataset order.
func All(ds *frame.Dataset) []ColumnStats {
	out := make([]ColumnStats, ds.NCols())
	for col := range out {
		out[col] = describeColumn(ds, col)
	}
	return out
}

func describeColumn(ds *frame.Dataset, col int) ColumnStats {
	switch ds.ColType(col) {
	case "float64", "int64":
		return numericStats(ds, col)
	default:
		return categoricalStats(ds, col)
	}
}

func numericStats(ds *frame.Dataset, col int) ColumnStats {
	var vals []float64
	for row := 0; row < ds.NRows(); row++ {
		switch v := ds.Value(row, col).(type) {
		case float64:
			vals = append(vals, v)
		case int64:
			vals = append(vals, float64(v))
		}
	}

	cs := ColumnStats{
		Column: ds.Columns()[col],
		Kind:   Numeric,
		Count:  len(vals),
	}
	if len(vals) == 0 {
		return cs
	}

	sort.Float64s(vals)
	cs.Mean = stat.Mean(vals, nil)
	cs.Std = stat.StdDev(vals, nil)
	cs.Min = vals[0]
	cs.Max = vals[len(vals)-1]
	cs.Q25 = quantile(0.25, vals)
	cs.Median = quantile(0.5, vals)
	cs.Q75 = quantile(0.75, vals)
	return cs
}

// quantile interpolates linearly between order statistics (the R-7
// estimator). vals must be sorted and non-empty.
func quantile(p float64, vals []float64) float64 {
	h := p * float64(len(vals)-1)
	i := int(h)
	if i >= len(vals)-1 {
		return vals[len(vals)-1]
	}
	return vals[i] + (h-float64(i))*(vals[i+1]-vals[i])
}

func categoricalStats(ds *frame.Dataset, col int) ColumnStats {
	cs := ColumnStats{
		Column: ds.Columns()[col],
		Kind:   Categorical,
	}

	counts := map[string]int{}
	var order []string
	for row := 0; row < ds.NRows(); row++ {
		if ds.Value(row, col) == nil {
			continue
		}
		cs.Count++
		v := ds.ValueString(row, col)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	cs.Unique = len(counts)
	for _, v := range order {
		if counts[v] > cs.Freq {
			cs.Top, cs.Freq = v, counts[v]
		}
	}
	return cs
}
