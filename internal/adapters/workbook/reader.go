// Package workbook reads spreadsheet files into domain tables.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/internal/core/ports"
)

// Reader picks a decoder from the file extension
type Reader struct {
	xlsx *XLSXReader
	csv  *CSVReader
}

// NewReader creates a reader for .xlsx, .xlsm and .csv files
func NewReader() *Reader {
	return &Reader{
		xlsx: NewXLSXReader(),
		csv:  NewCSVReader(),
	}
}

var _ ports.TableReader = (*Reader)(nil)

// Read loads a sheet from path; sheet "" selects the active sheet
func (r *Reader) Read(ctx context.Context, path string, sheet string) (*domain.Table, error) {
	delegate, err := r.delegate(path)
	if err != nil {
		return nil, err
	}
	return delegate.Read(ctx, path, sheet)
}

// Sheets lists the sheet names of the workbook at path
func (r *Reader) Sheets(ctx context.Context, path string) ([]string, error) {
	delegate, err := r.delegate(path)
	if err != nil {
		return nil, err
	}
	return delegate.Sheets(ctx, path)
}

// ActiveSheet returns the sheet Read selects when no sheet is named
func (r *Reader) ActiveSheet(ctx context.Context, path string) (string, error) {
	delegate, err := r.delegate(path)
	if err != nil {
		return "", err
	}
	if delegate == r.csv {
		return sheetName(path), nil
	}
	return r.xlsx.ActiveSheet(path)
}

func (r *Reader) delegate(path string) (ports.TableReader, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return r.xlsx, nil
	case ".csv":
		return r.csv, nil
	default:
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: unsupported file type %q", domain.ErrUnreadableSource, filepath.Ext(path)))
	}
}

// checkSource fails fast when the workbook is missing or is a directory
func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewStructuralError(path, domain.ErrSourceNotFound)
		}
		return domain.NewStructuralError(path, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err))
	}
	if info.IsDir() {
		return domain.NewStructuralError(path, fmt.Errorf("%w: is a directory", domain.ErrUnreadableSource))
	}
	return nil
}
