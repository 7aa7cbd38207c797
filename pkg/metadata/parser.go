package metadata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/kamal-hamza/wp-cli/pkg/normalize"
)

const delimiter = "---"

// Field is a single front matter entry
type Field struct {
	Key   string
	Value any
	// Keep emits the key even when Value is nil
	Keep bool
}

// Block is an ordered set of front matter fields with unique keys
type Block struct {
	fields []Field
	index  map[string]int
}

// NewBlock creates an empty block
func NewBlock() *Block {
	return &Block{index: make(map[string]int)}
}

// Set adds a field, or replaces the value of an existing key in place
func (b *Block) Set(key string, value any) {
	b.set(Field{Key: key, Value: value})
}

// SetKept adds a field that is written even when its value is nil
func (b *Block) SetKept(key string, value any) {
	b.set(Field{Key: key, Value: value, Keep: true})
}

func (b *Block) set(f Field) {
	if i, ok := b.index[f.Key]; ok {
		b.fields[i] = f
		return
	}
	b.index[f.Key] = len(b.fields)
	b.fields = append(b.fields, f)
}

// Get returns the value stored for key
func (b *Block) Get(key string) (any, bool) {
	i, ok := b.index[key]
	if !ok {
		return nil, false
	}
	return b.fields[i].Value, true
}

// Keys returns the keys that Format would emit, in order
func (b *Block) Keys() []string {
	keys := make([]string, 0, len(b.fields))
	for _, f := range b.fields {
		if f.Value == nil && !f.Keep {
			continue
		}
		keys = append(keys, f.Key)
	}
	return keys
}

// Format renders the block between --- delimiters.
// Nil values are dropped unless the field was added with SetKept.
func Format(b *Block) string {
	var sb strings.Builder
	sb.WriteString(delimiter + "\n")
	for _, f := range b.fields {
		if f.Value == nil && !f.Keep {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", f.Key, normalize.SerializeScalar(f.Value)))
	}
	sb.WriteString(delimiter + "\n")
	return sb.String()
}

// Header is the front matter of a generated work page
type Header struct {
	Title         string   `yaml:"title"`
	Date          string   `yaml:"date"`
	Layout        string   `yaml:"layout"`
	WorkID        string   `yaml:"work_id"`
	CatalogueDate *string  `yaml:"catalogue_date"`
	Series        string   `yaml:"series"`
	Medium        string   `yaml:"medium"`
	Dimensions    string   `yaml:"dimensions"`
	Primary       string   `yaml:"primary"`
	Thumb         string   `yaml:"thumb"`
	Tags          []string `yaml:"tags"`
	Permalink     string   `yaml:"permalink"`
}

// ParseError represents a front matter parsing error
type ParseError struct {
	Field   string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s - %s", e.Field, e.Message)
}

// Parse splits a document into its decoded header and body
func Parse(content []byte) (*Header, []byte, error) {
	trimmed := bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, []byte(delimiter+"\n")) && !bytes.HasPrefix(trimmed, []byte(delimiter+"\r\n")) {
		return nil, nil, ParseError{Field: "front matter", Message: "missing opening delimiter"}
	}

	var header Header
	body, err := frontmatter.Parse(bytes.NewReader(trimmed), &header)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	return &header, body, nil
}

// Validate reports missing mandatory fields of a parsed header
func (h *Header) Validate() []ParseError {
	var errs []ParseError
	if strings.TrimSpace(h.Title) == "" {
		errs = append(errs, ParseError{Field: "title", Message: "missing mandatory field"})
	}
	if strings.TrimSpace(h.Date) == "" {
		errs = append(errs, ParseError{Field: "date", Message: "missing mandatory field"})
	}
	if strings.TrimSpace(h.WorkID) == "" {
		errs = append(errs, ParseError{Field: "work_id", Message: "missing mandatory field"})
	}
	return errs
}
