package frame

import (
	"fmt"
	"os"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot file layout: a msgpack envelope with a magic marker, a format
// version, and one typed column per series. Unlike the delimited text
// form, a snapshot round-trips column types exactly.
const (
	snapshotMagic   = "viewdf"
	snapshotVersion = 1
)

type snapshot struct {
	Magic   string           `msgpack:"magic"`
	Version int              `msgpack:"version"`
	NRows   int              `msgpack:"nrows"`
	Columns []snapshotColumn `msgpack:"columns"`
}

type snapshotColumn struct {
	Name string `msgpack:"name"`
	Kind string `msgpack:"kind"` // float64, int64, string or time

	// Valid marks the non-missing rows; the value slices are dense and
	// aligned with it.
	Valid   []bool      `msgpack:"valid"`
	Floats  []float64   `msgpack:"floats,omitempty"`
	Ints    []int64     `msgpack:"ints,omitempty"`
	Strings []string    `msgpack:"strings,omitempty"`
	Times   []time.Time `msgpack:"times,omitempty"`
}

// Save writes the dataset as a binary snapshot at path. Failures are
// WriteErrors.
func (d *Dataset) Save(path string) error {
	snap := snapshot{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		NRows:   d.NRows(),
		Columns: make([]snapshotColumn, 0, d.NCols()),
	}

	for col, s := range d.df.Series {
		sc := snapshotColumn{
			Name:  s.Name(),
			Valid: make([]bool, snap.NRows),
		}
		switch s.Type() {
		case "float64":
			sc.Kind = "float64"
			sc.Floats = make([]float64, snap.NRows)
		case "int64":
			sc.Kind = "int64"
			sc.Ints = make([]int64, snap.NRows)
		case "time":
			sc.Kind = "time"
			sc.Times = make([]time.Time, snap.NRows)
		default:
			sc.Kind = "string"
			sc.Strings = make([]string, snap.NRows)
		}

		for row := 0; row < snap.NRows; row++ {
			v := d.Value(row, col)
			if v == nil {
				continue
			}
			sc.Valid[row] = true
			switch sc.Kind {
			case "float64":
				sc.Floats[row], _ = v.(float64)
			case "int64":
				sc.Ints[row], _ = v.(int64)
			case "time":
				sc.Times[row], _ = v.(time.Time)
			default:
				sc.Strings[row] = d.ValueString(row, col)
			}
		}
		snap.Columns = append(snap.Columns, sc)
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: fmt.Errorf("encoding snapshot: %w", err)}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func loadSnapshot(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	var snap snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, readErr(path, "decoding snapshot: %w", err)
	}
	if snap.Magic != snapshotMagic {
		return nil, readErr(path, "not a viewdf snapshot")
	}
	if snap.Version != snapshotVersion {
		return nil, readErr(path, "unsupported snapshot version %d", snap.Version)
	}

	series := make([]dataframe.Series, 0, len(snap.Columns))
	for _, sc := range snap.Columns {
		if len(sc.Valid) != snap.NRows {
			return nil, readErr(path, "column %q has %d rows, want %d", sc.Name, len(sc.Valid), snap.NRows)
		}

		var s dataframe.Series
		var nvals int
		switch sc.Kind {
		case "float64":
			s = dataframe.NewSeriesFloat64(sc.Name, nil)
			nvals = len(sc.Floats)
		case "int64":
			s = dataframe.NewSeriesInt64(sc.Name, nil)
			nvals = len(sc.Ints)
		case "time":
			s = dataframe.NewSeriesTime(sc.Name, nil)
			nvals = len(sc.Times)
		case "string":
			s = dataframe.NewSeriesString(sc.Name, nil)
			nvals = len(sc.Strings)
		default:
			return nil, readErr(path, "column %q has unknown kind %q", sc.Name, sc.Kind)
		}
		if nvals != snap.NRows {
			return nil, readErr(path, "column %q has %d values, want %d", sc.Name, nvals, snap.NRows)
		}

		for row := 0; row < snap.NRows; row++ {
			if !sc.Valid[row] {
				s.Append(nil)
				continue
			}
			switch sc.Kind {
			case "float64":
				s.Append(sc.Floats[row])
			case "int64":
				s.Append(sc.Ints[row])
			case "time":
				s.Append(sc.Times[row])
			case "string":
				s.Append(sc.Strings[row])
			}
		}
		series = append(series, s)
	}

	return New(dataframe.NewDataFrame(series...)), nil
}
