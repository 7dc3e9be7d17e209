package frame

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	_ "modernc.org/sqlite"
)

// loadSQLite reads one table of a SQLite database into a Dataset. An empty
// table name is allowed only when the database holds exactly one table.
func loadSQLite(ctx context.Context, path, table string) (*Dataset, error) {
	// sql.Open would create a missing file; stat first.
	if _, err := os.Stat(path); err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, readErr(path, "opening database: %w", err)
	}
	defer db.Close()

	tables, err := listTables(ctx, db)
	if err != nil {
		return nil, readErr(path, "listing tables: %w", err)
	}

	if table == "" {
		if len(tables) != 1 {
			return nil, readErr(path, "database has %d tables, pick one with --table (%s)",
				len(tables), strings.Join(tables, ", "))
		}
		table = tables[0]
	} else if !contains(tables, table) {
		return nil, readErr(path, "no table %q (have %s)", table, strings.Join(tables, ", "))
	}

	// The table name is validated against sqlite_master above; it cannot
	// be bound as a parameter.
	quoted := `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoted)
	if err != nil {
		return nil, readErr(path, "reading table %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, readErr(path, "reading table %q: %w", table, err)
	}

	var records [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, readErr(path, "scanning table %q: %w", table, err)
		}
		records = append(records, values)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr(path, "reading table %q: %w", table, err)
	}

	return New(dataframe.NewDataFrame(buildSeries(cols, records)...)), nil
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// buildSeries converts scanned rows into typed series: all-integer columns
// become int64, numeric mixes become float64, everything else strings.
func buildSeries(cols []string, records [][]interface{}) []dataframe.Series {
	series := make([]dataframe.Series, len(cols))
	for c, name := range cols {
		sawFloat, sawOther := false, false
		for _, rec := range records {
			switch rec[c].(type) {
			case nil, int64:
			case float64:
				sawFloat = true
			default:
				sawOther = true
			}
		}

		var s dataframe.Series
		switch {
		case sawOther:
			s = dataframe.NewSeriesString(name, nil)
		case sawFloat:
			s = dataframe.NewSeriesFloat64(name, nil)
		default:
			s = dataframe.NewSeriesInt64(name, nil)
		}

		for _, rec := range records {
			v := rec[c]
			switch {
			case v == nil:
				s.Append(nil)
			case sawOther:
				s.Append(sqliteString(v))
			case sawFloat:
				s.Append(toFloat(v))
			default:
				s.Append(v)
			}
		}
		series[c] = s
	}
	return series
}

func sqliteString(v interface{}) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
