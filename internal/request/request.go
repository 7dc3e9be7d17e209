// Package request turns parsed command-line flags into a validated,
// immutable description of the single operation to perform.
package request

import (
	"fmt"
	"strings"

	"github.com/vbos70/viewdf/internal/sliceexpr"
)

// Op selects the operation performed against the loaded dataset.
type Op int

const (
	OpPreview Op = iota
	OpShape
	OpColumns
	OpInfo
	OpDescribe
	OpConvert
)

// PreviewKind selects how preview rows are chosen.
type PreviewKind int

const (
	PreviewHead PreviewKind = iota
	PreviewTail
	PreviewSample
	PreviewSlice
)

// Format selects the output encoding of a convert operation.
type Format int

const (
	FormatSnapshot Format = iota
	FormatCSV
)

// Request is built once per invocation and immutable afterwards. Only the
// parameters of the selected operation are populated.
type Request struct {
	Path string
	Op   Op

	// Preview parameters.
	Kind    PreviewKind
	N       int
	Slice   sliceexpr.Spec
	MaxRows int

	// Describe parameter; empty means all columns.
	Column string

	// Convert parameters.
	OutPath string
	Format  Format

	// Source modifiers.
	Sep   rune
	Table string
}

// Options carries raw flag state into Build. The *Set fields record
// whether the user passed the flag at all.
type Options struct {
	Path string

	Head      int
	HeadSet   bool
	Tail      int
	TailSet   bool
	Sample    int
	SampleSet bool
	Slice     string
	SliceSet  bool

	Shape   bool
	Columns bool
	Info    bool

	Describe    string
	DescribeSet bool
	// DescribeAll marks a bare --describe with no column value.
	DescribeAll bool

	ToPickle string
	ToCSV    string

	Sep     rune
	Table   string
	MaxRows int
}

// DefaultHead is the preview length when no operation flag is given.
const DefaultHead = 5

// Build validates the flag set and constructs the Request. Exactly one
// operation may be selected; none at all defaults to a head preview of
// DefaultHead rows.
func Build(opts Options) (*Request, error) {
	req := &Request{
		Path:    opts.Path,
		Sep:     opts.Sep,
		Table:   opts.Table,
		MaxRows: opts.MaxRows,
	}

	var selected []string
	pick := func(name string, op Op) {
		selected = append(selected, name)
		req.Op = op
	}

	if opts.HeadSet {
		pick("--head", OpPreview)
		req.Kind = PreviewHead
		req.N = opts.Head
	}
	if opts.TailSet {
		pick("--tail", OpPreview)
		req.Kind = PreviewTail
		req.N = opts.Tail
	}
	if opts.SampleSet {
		pick("--sample", OpPreview)
		req.Kind = PreviewSample
		req.N = opts.Sample
	}
	if opts.SliceSet {
		pick("--slice", OpPreview)
		req.Kind = PreviewSlice
	}
	if opts.Shape {
		pick("--shape", OpShape)
	}
	if opts.Columns {
		pick("--columns", OpColumns)
	}
	if opts.Info {
		pick("--info", OpInfo)
	}
	if opts.DescribeSet {
		pick("--describe", OpDescribe)
		if !opts.DescribeAll {
			req.Column = opts.Describe
		}
	}
	if opts.ToPickle != "" {
		pick("--to-pickle", OpConvert)
		req.OutPath = opts.ToPickle
		req.Format = FormatSnapshot
	}
	if opts.ToCSV != "" {
		pick("--to-csv", OpConvert)
		req.OutPath = opts.ToCSV
		req.Format = FormatCSV
	}

	if len(selected) > 1 {
		return nil, fmt.Errorf("conflicting flags: %s (pick one)", strings.Join(selected, ", "))
	}
	if len(selected) == 0 {
		req.Op = OpPreview
		req.Kind = PreviewHead
		req.N = DefaultHead
	}

	if req.Op == OpPreview {
		switch req.Kind {
		case PreviewSlice:
			spec, err := sliceexpr.Parse(opts.Slice)
			if err != nil {
				return nil, err
			}
			req.Slice = spec
		default:
			if req.N <= 0 {
				return nil, fmt.Errorf("%s wants a positive row count, got %d", selectedName(selected), req.N)
			}
		}
	}

	return req, nil
}

func selectedName(selected []string) string {
	if len(selected) == 0 {
		return "--head"
	}
	return selected[0]
}
