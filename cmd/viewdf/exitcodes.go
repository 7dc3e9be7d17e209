package main

import (
	"errors"

	"github.com/vbos70/viewdf/internal/describe"
	"github.com/vbos70/viewdf/internal/frame"
	"github.com/vbos70/viewdf/internal/sliceexpr"
)

// Exit codes form the CLI contract; each error category maps to one code.
const (
	ExitSuccess       = 0 // Success
	ExitUsage         = 1 // Usage error (conflicting or malformed flags, oversized sample)
	ExitFileRead      = 2 // Input file missing, corrupt, or unparseable
	ExitInvalidColumn = 3 // Describe target column not in the dataset
	ExitWrite         = 4 // Converted output could not be written
	ExitInvalidSlice  = 5 // Malformed slice notation or zero step
)

// exitCode maps an error to its exit code. Unrecognized errors are usage
// errors.
func exitCode(err error) int {
	var (
		readErr  *frame.ReadError
		writeErr *frame.WriteError
		colErr   *describe.ColumnNotFoundError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &readErr):
		return ExitFileRead
	case errors.As(err, &colErr):
		return ExitInvalidColumn
	case errors.As(err, &writeErr):
		return ExitWrite
	case errors.Is(err, sliceexpr.ErrInvalidSlice):
		return ExitInvalidSlice
	default:
		return ExitUsage
	}
}
