package mocks

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
)

// MockTableReader serves fixed sheets from memory
type MockTableReader struct {
	// Order lists sheet names; the first one is the active sheet
	Order  []string
	sheets map[string][][]any
	// Err is returned by Read and Sheets when set
	Err error
}

// NewMockTableReader creates a reader without sheets
func NewMockTableReader() *MockTableReader {
	return &MockTableReader{sheets: make(map[string][][]any)}
}

// AddSheet registers a sheet; records[0] is the header row
func (m *MockTableReader) AddSheet(name string, records ...[]any) {
	if _, ok := m.sheets[name]; !ok {
		m.Order = append(m.Order, name)
	}
	m.sheets[name] = records
}

// Read returns the sheet as a table
func (m *MockTableReader) Read(ctx context.Context, path string, sheet string) (*domain.Table, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if sheet == "" {
		if len(m.Order) == 0 {
			return domain.NewTable("", nil), nil
		}
		sheet = m.Order[0]
	}
	records, ok := m.sheets[sheet]
	if !ok {
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %s", domain.ErrSheetNotFound, sheet))
	}
	return domain.NewTable(sheet, records), nil
}

// Sheets returns the registered sheet names
func (m *MockTableReader) Sheets(ctx context.Context, path string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]string(nil), m.Order...), nil
}
