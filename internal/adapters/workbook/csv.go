package workbook

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
)

// CSVReader treats a CSV file as a workbook with a single sheet named
// after the file. Every cell is text; empty cells are absent.
type CSVReader struct {
	Comma rune
}

// NewCSVReader creates a comma-separated reader
func NewCSVReader() *CSVReader {
	return &CSVReader{Comma: ','}
}

// Read loads the file; sheet must be empty or the file's base name
func (r *CSVReader) Read(ctx context.Context, path string, sheet string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := sheetName(path)
	if sheet != "" && sheet != name {
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %s", domain.ErrSheetNotFound, sheet))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err))
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = r.Comma
	cr.FieldsPerRecord = -1

	var records [][]any
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err))
		}

		if len(records) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}

		values := make([]any, len(record))
		for i, cell := range record {
			if cell != "" {
				values[i] = cell
			}
		}
		records = append(records, values)
	}

	return domain.NewTable(name, records), nil
}

// Sheets returns the single sheet name
func (r *CSVReader) Sheets(ctx context.Context, path string) ([]string, error) {
	return []string{sheetName(path)}, nil
}

func sheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
