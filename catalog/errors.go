package catalog

import (
	"fmt"
	"minui/internal/pathutil"
)

// ErrPathTooLong is the only failure Build reports.
var ErrPathTooLong = pathutil.ErrPathTooLong

type Error struct {
	Op   string // Operation name: "build", "export"
	Path string // Directory path if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("catalog %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newCatalogError(op, path string, err error) *Error {
	return &Error{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
