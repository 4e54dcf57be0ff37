package engine

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrMissingColumn = errors.New("missing column")
	ErrMissingKey    = errors.New("missing key")
)

// TableError ties a failure kind to the file, field and data row it happened on.
// Row is 1-based and 0 when the failure is not tied to a row.
type TableError struct {
	Kind  error
	Path  string
	Field string
	Row   int
	Err   error
}

func (e *TableError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Field)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s in %s", msg, e.Path)
	}
	if e.Row > 0 {
		msg = fmt.Sprintf("%s (row %d)", msg, e.Row)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *TableError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fileNotFound(path string, err error) error {
	return &TableError{Kind: ErrFileNotFound, Path: path, Err: err}
}

func missingColumn(path, field string, row int) error {
	return &TableError{Kind: ErrMissingColumn, Path: path, Field: field, Row: row}
}

func missingKey(code string) error {
	return &TableError{Kind: ErrMissingKey, Field: code}
}
