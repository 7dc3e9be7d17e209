package main

import (
	"github.com/spf13/cobra"

	"github.com/vbos70/viewdf/internal/config"
	"github.com/vbos70/viewdf/internal/describe"
	"github.com/vbos70/viewdf/internal/frame"
	"github.com/vbos70/viewdf/internal/render"
	"github.com/vbos70/viewdf/internal/request"
)

// describeAll is the value --describe takes when given without a column.
// Unprintable so it cannot collide with a real column name.
const describeAll = "\x00all"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewdf <path>",
		Short: "Quickly inspect a tabular data file",
		Long: `viewdf loads a tabular file and performs one operation against it:
preview rows, report the shape, list columns, summarize statistics, or
convert between delimited text and the binary snapshot format.

Sources are picked by extension: delimited text (.csv, .tsv, .txt and
anything unknown), binary snapshots (.pkl), and SQLite databases
(.db, .sqlite, .sqlite3; use --table to pick a table).

Examples:
  viewdf data.csv --head 10
  viewdf data.tsv --describe
  viewdf data.csv --slice 1:10:2
  viewdf data.csv --to-pickle data.pkl`,
		Args:          cobra.ExactArgs(1),
		RunE:          runView,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version

	f := cmd.Flags()
	f.Int("head", request.DefaultHead, "Show the first N rows")
	f.Int("tail", request.DefaultHead, "Show the last N rows")
	f.Int("sample", request.DefaultHead, "Show a random sample of N rows (without replacement)")
	f.String("slice", "", "Show rows by slice notation start:stop:step")
	f.Bool("shape", false, "Show the dataset shape as (rows, cols)")
	f.Bool("columns", false, "List column names")
	f.Bool("info", false, "Show per-column types and non-null counts")
	f.String("describe", "", "Show summary statistics for COLUMN, or all columns when no value given")
	f.Lookup("describe").NoOptDefVal = describeAll
	f.String("to-pickle", "", "Save the dataset as a binary snapshot at PATH")
	f.String("to-csv", "", "Save the dataset as comma-delimited text at PATH")
	f.String("sep", "", "Field separator for delimited input (overrides detection; \\t for tab)")
	f.String("table", "", "Table to load from a SQLite database")
	f.Int("max_rows", config.DefaultMaxRows, "Max rows to print when showing the dataset")

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	opts := request.Options{
		Path:        args[0],
		HeadSet:     f.Changed("head"),
		TailSet:     f.Changed("tail"),
		SampleSet:   f.Changed("sample"),
		SliceSet:    f.Changed("slice"),
		DescribeSet: f.Changed("describe"),
		MaxRows:     cfg.MaxRows,
	}
	opts.Head, _ = f.GetInt("head")
	opts.Tail, _ = f.GetInt("tail")
	opts.Sample, _ = f.GetInt("sample")
	opts.Slice, _ = f.GetString("slice")
	opts.Shape, _ = f.GetBool("shape")
	opts.Columns, _ = f.GetBool("columns")
	opts.Info, _ = f.GetBool("info")
	opts.Describe, _ = f.GetString("describe")
	opts.DescribeAll = opts.Describe == describeAll
	opts.ToPickle, _ = f.GetString("to-pickle")
	opts.ToCSV, _ = f.GetString("to-csv")
	opts.Table, _ = f.GetString("table")

	if f.Changed("max_rows") {
		opts.MaxRows, _ = f.GetInt("max_rows")
	}

	sep, _ := f.GetString("sep")
	if sep == "" {
		sep = cfg.Sep
	}
	if sep != "" {
		if opts.Sep, err = frame.ParseSep(sep); err != nil {
			return err
		}
	}

	req, err := request.Build(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ds, err := frame.Load(ctx, req.Path, frame.Options{Sep: req.Sep, Table: req.Table})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch req.Op {
	case request.OpShape:
		render.Shape(out, ds)
	case request.OpColumns:
		render.Columns(out, ds)
	case request.OpInfo:
		render.Info(out, ds)
	case request.OpDescribe:
		var stats []describe.ColumnStats
		if req.Column == "" {
			stats = describe.All(ds)
		} else {
			cs, err := describe.Column(ds, req.Column)
			if err != nil {
				return err
			}
			stats = []describe.ColumnStats{cs}
		}
		render.Describe(out, stats)
	case request.OpConvert:
		if req.Format == request.FormatCSV {
			return ds.SaveCSV(ctx, req.OutPath)
		}
		return ds.Save(req.OutPath)
	default:
		sel, err := selectRows(ds, req)
		if err != nil {
			return err
		}
		render.Preview(out, sel, req.MaxRows)
	}
	return nil
}

func selectRows(ds *frame.Dataset, req *request.Request) (*frame.Dataset, error) {
	switch req.Kind {
	case request.PreviewTail:
		return ds.Tail(req.N), nil
	case request.PreviewSample:
		return ds.Sample(req.N)
	case request.PreviewSlice:
		return ds.Slice(req.Slice), nil
	default:
		return ds.Head(req.N), nil
	}
}
