package frame

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// Options configures loading of a dataset.
type Options struct {
	// Sep overrides extension-based separator detection for delimited
	// text. Zero means "detect".
	Sep rune

	// Table names the table to load from a SQLite source. Empty means
	// "the only table", an error when the database has several.
	Table string
}

// Load reads the file at path into a Dataset. The loader is chosen by
// extension: .pkl is a binary snapshot, .db/.sqlite/.sqlite3 are SQLite
// databases, everything else is delimited text (.tsv and .txt imply tab,
// otherwise comma). All failures are ReadErrors.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pkl":
		return loadSnapshot(path)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(ctx, path, opts.Table)
	default:
		return loadDelimited(ctx, path, opts.Sep)
	}
}

// ParseSep converts a --sep flag value into a separator rune. The literal
// escape `\t` is accepted for tab.
func ParseSep(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	return r, nil
}

// DetectSep returns the separator for a delimited file: an explicit
// override wins, then tab for .tsv/.txt, then comma.
func DetectSep(path string, explicit rune) rune {
	if explicit != 0 {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return '\t'
	default:
		return ','
	}
}

func loadDelimited(ctx context.Context, path string, sep rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	df, err := imports.LoadFromCSV(ctx, f, imports.CSVLoadOptions{
		Comma:          DetectSep(path, sep),
		InferDataTypes: true,
	})
	if err != nil {
		return nil, readErr(path, "parsing delimited text: %w", err)
	}
	return New(df), nil
}

// SaveCSV writes the dataset as comma-delimited text at path. Failures are
// WriteErrors.
func (d *Dataset) SaveCSV(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := exports.ExportToCSV(ctx, f, d.df); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
