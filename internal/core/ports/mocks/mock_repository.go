package mocks

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
)

// MockDocumentRepository is an in-memory DocumentRepository for testing
type MockDocumentRepository struct {
	mu    sync.RWMutex
	Dir   string
	files map[string][]byte
	// Saves counts Save calls
	Saves int
	// SaveErr is returned by Save when set
	SaveErr error
}

// NewMockDocumentRepository creates an empty repository rooted at dir
func NewMockDocumentRepository(dir string) *MockDocumentRepository {
	return &MockDocumentRepository{
		Dir:   dir,
		files: make(map[string][]byte),
	}
}

// Put seeds a page without counting it as a save
func (m *MockDocumentRepository) Put(id string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[id] = []byte(content)
}

// Exists checks if a page is stored for id
func (m *MockDocumentRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[id]
	return ok, nil
}

// Save stores the rendered page
func (m *MockDocumentRepository) Save(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.files[doc.ID] = []byte(doc.Render())
	return nil
}

// Path returns a slash-joined path under Dir
func (m *MockDocumentRepository) Path(id string) string {
	return path.Join(m.Dir, domain.DocumentFilename(id))
}

// List returns stored ids in sorted order
func (m *MockDocumentRepository) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.files))
	for id := range m.files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Read returns stored content
func (m *MockDocumentRepository) Read(ctx context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[id]
	if !ok {
		return nil, fmt.Errorf("page not found: %s", id)
	}
	return content, nil
}

// Content returns stored content as a string, empty when absent
func (m *MockDocumentRepository) Content(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.files[id])
}

// Count returns the number of stored pages
func (m *MockDocumentRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
