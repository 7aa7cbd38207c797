package domain

import (
	"path/filepath"

	"github.com/kamal-hamza/wp-cli/pkg/metadata"
)

// DocumentExt is the extension of every generated page
const DocumentExt = ".md"

// Document is a rendered work page; one file per ID
type Document struct {
	ID          string
	FrontMatter *metadata.Block
	Body        string
}

// Filename returns "<id>.md"
func (d *Document) Filename() string {
	return DocumentFilename(d.ID)
}

// Render returns the file content: front matter, body and one trailing newline
func (d *Document) Render() string {
	return metadata.Format(d.FrontMatter) + d.Body + "\n"
}

// DocumentFilename returns the page filename for id
func DocumentFilename(id string) string {
	return id + DocumentExt
}

// ParseDocumentFilename returns the id encoded in a page filename
// "00361.md" -> "00361", false for anything else
func ParseDocumentFilename(filename string) (string, bool) {
	if filepath.Ext(filename) != DocumentExt {
		return "", false
	}
	id := filename[:len(filename)-len(DocumentExt)]
	if id == "" {
		return "", false
	}
	return id, true
}
