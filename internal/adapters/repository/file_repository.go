package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/internal/core/ports"
	"github.com/kamal-hamza/wp-cli/pkg/workspace"
)

type FileRepository struct {
	workspace *workspace.Workspace
	mu        sync.RWMutex
}

// NewFileRepository creates a repository writing pages into the workspace output directory
func NewFileRepository(ws *workspace.Workspace) *FileRepository {
	return &FileRepository{
		workspace: ws,
	}
}

// Ensure it implements the interface
var _ ports.DocumentRepository = (*FileRepository)(nil)

// Exists checks if a page file is present for id
func (r *FileRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := os.Stat(r.Path(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", r.Path(id), err)
}

// Save writes a page to disk, creating the output directory on first use
func (r *FileRepository) Save(ctx context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.workspace.Initialize(); err != nil {
		return err
	}

	path := r.Path(doc.ID)
	if err := os.WriteFile(path, []byte(doc.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Path returns <output_dir>/<id>.md
func (r *FileRepository) Path(id string) string {
	return r.workspace.GetDocumentPath(domain.DocumentFilename(id))
}

// List returns the ids of all pages in the output directory, sorted
func (r *FileRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.workspace.OutputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := domain.ParseDocumentFilename(entry.Name()); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids, nil
}

// Read returns the raw content of the page for id
func (r *FileRepository) Read(ctx context.Context, id string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	content, err := os.ReadFile(r.Path(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", id, err)
	}
	return content, nil
}
