package frame

import "fmt"

// ReadError categorizes any failure to load a dataset: missing file,
// unparseable delimited text, corrupt snapshot, missing SQLite table.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// readErr wraps err as a ReadError for path.
func readErr(path string, format string, args ...interface{}) *ReadError {
	return &ReadError{Path: path, Err: fmt.Errorf(format, args...)}
}

// WriteError categorizes any failure to write a converted dataset.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
