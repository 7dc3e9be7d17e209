package frame

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vbos70/viewdf/internal/sliceexpr"
)

// writeFile writes content to name under a temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadCSV(t *testing.T, content string) *Dataset {
	t.Helper()
	ds, err := Load(context.Background(), writeFile(t, "data.csv", content), Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return ds
}

func TestLoadCSV(t *testing.T) {
	ds := loadCSV(t, "a,b\n1,foo\n2,bar\n3,baz\n")

	if got := ds.NRows(); got != 3 {
		t.Errorf("NRows() = %d, want 3", got)
	}
	if got := ds.Columns(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Columns() = %v, want [a b]", got)
	}
}

func TestLoadTSV(t *testing.T) {
	path := writeFile(t, "data.tsv", "a\tb\n1\t2\n")
	ds, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ds.Columns(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Columns() = %v, want [a b]", got)
	}
}

func TestLoadExplicitSep(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b\n1;2\n")
	ds, err := Load(context.Background(), path, Options{Sep: ';'})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ds.NCols(); got != 2 {
		t.Errorf("NCols() = %d, want 2", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Load() error = %v, want ReadError", err)
	}
}

func TestHeadTail(t *testing.T) {
	ds := loadCSV(t, "a\n10\n20\n30\n40\n")

	head := ds.Head(2)
	if got := head.NRows(); got != 2 {
		t.Fatalf("Head(2).NRows() = %d, want 2", got)
	}
	if got := head.ValueString(0, 0); got != "10" {
		t.Errorf("head row 0 = %q, want \"10\"", got)
	}

	tail := ds.Tail(2)
	if got := tail.ValueString(0, 0); got != "30" {
		t.Errorf("tail row 0 = %q, want \"30\"", got)
	}
	if got := tail.RowLabel(0); got != 2 {
		t.Errorf("tail row 0 label = %d, want 2", got)
	}

	// Requests larger than the dataset clamp.
	if got := ds.Head(99).NRows(); got != 4 {
		t.Errorf("Head(99).NRows() = %d, want 4", got)
	}
}

func TestSlice(t *testing.T) {
	ds := loadCSV(t, "a,b\n1,2\n3,4\n5,6\n")

	spec, err := sliceexpr.Parse("1:")
	if err != nil {
		t.Fatal(err)
	}
	sel := ds.Slice(spec)
	if got := sel.NRows(); got != 2 {
		t.Fatalf("Slice(1:).NRows() = %d, want 2", got)
	}
	if a, b := sel.ValueString(0, 0), sel.ValueString(0, 1); a != "3" || b != "4" {
		t.Errorf("slice row 0 = (%s, %s), want (3, 4)", a, b)
	}
	if a, b := sel.ValueString(1, 0), sel.ValueString(1, 1); a != "5" || b != "6" {
		t.Errorf("slice row 1 = (%s, %s), want (5, 6)", a, b)
	}
}

func TestSliceReverseKeepsLabels(t *testing.T) {
	ds := loadCSV(t, "a\n10\n20\n30\n")

	spec, err := sliceexpr.Parse("::-1")
	if err != nil {
		t.Fatal(err)
	}
	sel := ds.Slice(spec)
	if got := sel.RowLabel(0); got != 2 {
		t.Errorf("reversed row 0 label = %d, want 2", got)
	}
	if got := sel.ValueString(2, 0); got != "10" {
		t.Errorf("reversed row 2 = %q, want \"10\"", got)
	}
}

func TestSample(t *testing.T) {
	ds := loadCSV(t, "a\n1\n2\n3\n4\n5\n")

	sel, err := ds.Sample(3)
	if err != nil {
		t.Fatalf("Sample(3) error = %v", err)
	}
	if got := sel.NRows(); got != 3 {
		t.Fatalf("Sample(3).NRows() = %d, want 3", got)
	}

	// Without replacement: no repeated row labels.
	seen := map[int]bool{}
	for i := 0; i < sel.NRows(); i++ {
		label := sel.RowLabel(i)
		if seen[label] {
			t.Errorf("row %d sampled twice", label)
		}
		seen[label] = true
	}
}

func TestSampleTooLarge(t *testing.T) {
	ds := loadCSV(t, "a\n1\n2\n")
	if _, err := ds.Sample(3); err == nil {
		t.Fatal("Sample(3) on 2 rows succeeded, want error")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ds := loadCSV(t, "n,s\n1,foo\n2,bar\n3.5,baz\n")

	path := filepath.Join(t.TempDir(), "data.pkl")
	if err := ds.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.NRows() != ds.NRows() || got.NCols() != ds.NCols() {
		t.Errorf("round-trip shape = (%d, %d), want (%d, %d)",
			got.NRows(), got.NCols(), ds.NRows(), ds.NCols())
	}
	if !reflect.DeepEqual(got.Columns(), ds.Columns()) {
		t.Errorf("round-trip columns = %v, want %v", got.Columns(), ds.Columns())
	}
	for col := 0; col < ds.NCols(); col++ {
		if got.ColType(col) != ds.ColType(col) {
			t.Errorf("column %d type = %q, want %q", col, got.ColType(col), ds.ColType(col))
		}
	}
}

func TestLoadSnapshotCorrupt(t *testing.T) {
	path := writeFile(t, "data.pkl", "not msgpack at all")
	_, err := Load(context.Background(), path, Options{})
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Load() error = %v, want ReadError", err)
	}
}

func TestLoadSnapshotShortValueSlice(t *testing.T) {
	// A validity mask can claim more rows than the value slice holds; that
	// must surface as a ReadError, not a panic.
	snaps := []snapshot{
		{
			Magic:   snapshotMagic,
			Version: snapshotVersion,
			NRows:   2,
			Columns: []snapshotColumn{
				{Name: "f", Kind: "float64", Valid: []bool{true, true}, Floats: []float64{1.5}},
			},
		},
		{
			Magic:   snapshotMagic,
			Version: snapshotVersion,
			NRows:   2,
			Columns: []snapshotColumn{
				{Name: "s", Kind: "string", Valid: []bool{false, true}, Strings: nil},
			},
		},
		{
			Magic:   snapshotMagic,
			Version: snapshotVersion,
			NRows:   1,
			Columns: []snapshotColumn{
				{Name: "i", Kind: "int64", Valid: []bool{true}, Ints: []int64{1, 2, 3}},
			},
		},
	}

	for i, snap := range snaps {
		data, err := msgpack.Marshal(&snap)
		if err != nil {
			t.Fatal(err)
		}
		path := writeFile(t, "data.pkl", string(data))

		_, err = Load(context.Background(), path, Options{})
		var readErr *ReadError
		if !errors.As(err, &readErr) {
			t.Errorf("snapshot %d: Load() error = %v, want ReadError", i, err)
		}
	}
}

func TestLoadSnapshotUnknownKind(t *testing.T) {
	snap := snapshot{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		NRows:   1,
		Columns: []snapshotColumn{
			{Name: "c", Kind: "complex128", Valid: []bool{true}},
		},
	}
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "data.pkl", string(data))

	_, err = Load(context.Background(), path, Options{})
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Load() error = %v, want ReadError", err)
	}
}

func TestSaveSnapshotBadPath(t *testing.T) {
	ds := loadCSV(t, "a\n1\n")
	err := ds.Save(filepath.Join(t.TempDir(), "missing", "out.pkl"))
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Save() error = %v, want WriteError", err)
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE measurements (id INTEGER, val REAL, tag TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO measurements VALUES (1, 1.5, 'x'), (2, 2.5, 'y')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	// Single table: no --table needed.
	ds, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ds.Columns(); !reflect.DeepEqual(got, []string{"id", "val", "tag"}) {
		t.Errorf("Columns() = %v, want [id val tag]", got)
	}
	if got := ds.ColType(0); got != "int64" {
		t.Errorf("id type = %q, want int64", got)
	}
	if got := ds.ColType(1); got != "float64" {
		t.Errorf("val type = %q, want float64", got)
	}
	if got := ds.ValueString(1, 2); got != "y" {
		t.Errorf("tag row 1 = %q, want \"y\"", got)
	}

	// Explicit table name works, unknown one is a ReadError.
	if _, err := Load(context.Background(), path, Options{Table: "measurements"}); err != nil {
		t.Errorf("Load(table=measurements) error = %v", err)
	}
	_, err = Load(context.Background(), path, Options{Table: "other"})
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Load(table=other) error = %v, want ReadError", err)
	}
}

func TestParseSep(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{",", ',', false},
		{";", ';', false},
		{`\t`, '\t', false},
		{"", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSep(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSep(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseSep(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
