package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound means the workbook path does not exist
	ErrSourceNotFound = errors.New("workbook not found")

	// ErrEmptyTable means the selected sheet has no rows
	ErrEmptyTable = errors.New("sheet is empty")

	// ErrSheetNotFound means the requested sheet is not in the workbook
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrUnreadableSource means the workbook exists but could not be decoded
	ErrUnreadableSource = errors.New("unreadable workbook")

	// ErrMissingRequiredField marks a row without an id or a title
	ErrMissingRequiredField = errors.New("missing required field")
)

// StructuralError aborts the whole run
type StructuralError struct {
	Path string
	Err  error
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Path)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError wraps err with the path it concerns
func NewStructuralError(path string, err error) *StructuralError {
	return &StructuralError{Path: path, Err: err}
}

// RowError ties a row-level failure to its spreadsheet position
type RowError struct {
	Row int
	ID  string
	Err error
}

func (e *RowError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("row %d (id %s): %v", e.Row, e.ID, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
