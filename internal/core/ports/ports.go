package ports

import (
	"context"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
)

// TableReader defines the port for reading a sheet into rows
type TableReader interface {
	// Read loads the named sheet; an empty sheet name selects the active sheet
	Read(ctx context.Context, path string, sheet string) (*domain.Table, error)

	// Sheets lists the sheet names in the workbook, in workbook order
	Sheets(ctx context.Context, path string) ([]string, error)
}

// DocumentRepository defines the port for persisting generated pages
type DocumentRepository interface {
	// Exists checks if a page for the given id is already present
	Exists(ctx context.Context, id string) (bool, error)

	// Save writes a page, replacing any existing file
	Save(ctx context.Context, doc *domain.Document) error

	// Path returns where the page for id lives
	Path(id string) string

	// List returns the ids of all pages present
	List(ctx context.Context) ([]string, error)

	// Read returns the raw content of the page for id
	Read(ctx context.Context, id string) ([]byte, error)
}
