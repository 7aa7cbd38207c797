package domain

import (
	"fmt"
	"strings"

	"github.com/kamal-hamza/wp-cli/pkg/metadata"
	"github.com/kamal-hamza/wp-cli/pkg/normalize"
)

// AttachmentSegment sits between the work id and the filename in asset URLs
const AttachmentSegment = "files"

// SupplementsHeading introduces the attachment links in the page body
const SupplementsHeading = "## Supplements"

// BuildOptions controls how a row becomes a work page
type BuildOptions struct {
	Columns             Columns
	IDWidth             int
	TagSeparator        string
	AttachmentSeparator string
	DefaultLayout       string
	// DefaultDate is used when the row has no date
	DefaultDate string
	// PermalinkTemplate substitutes {id}; empty disables permalinks
	PermalinkTemplate string
	AssetsBase        string
}

// DefaultBuildOptions returns the conventional options, dated defaultDate
func DefaultBuildOptions(defaultDate string) BuildOptions {
	return BuildOptions{
		Columns:             DefaultColumns(),
		IDWidth:             5,
		TagSeparator:        ",",
		AttachmentSeparator: ";",
		DefaultLayout:       "theme",
		DefaultDate:         defaultDate,
		AssetsBase:          "/assets/works",
	}
}

// Attachment is a supplementary file linked from the page body
type Attachment struct {
	Filename string
	URL      string
}

// Work is the normalized form of one spreadsheet row.
// Optional descriptive fields are empty when the row has no value for them.
type Work struct {
	ID            string
	Title         string
	Date          string
	Layout        string
	CatalogueDate string
	Series        string
	Medium        string
	Dimensions    string
	Primary       string
	Thumb         string
	Tags          []string
	Attachments   []Attachment
	Notes         string
	Permalink     string
}

// NewWork normalizes a row. It returns ErrMissingRequiredField when the id
// or title is absent, and normalization errors for malformed ids and dates.
func NewWork(r Row, opts BuildOptions) (*Work, error) {
	cols := opts.Columns

	rawID, hasID := cols.Lookup(r, RoleID)
	rawTitle, hasTitle := cols.Lookup(r, RoleTitle)
	if !hasID || !hasTitle || normalize.IsBlank(rawTitle) {
		return nil, ErrMissingRequiredField
	}

	id, err := normalize.NormalizeID(rawID, opts.IDWidth)
	if err != nil {
		return nil, err
	}

	rawDate, _ := cols.Lookup(r, RoleDate)
	date, ok, err := normalize.NormalizeDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if !ok {
		date = opts.DefaultDate
	}

	rawCatalogue, _ := cols.Lookup(r, RoleCatalogueDate)
	catalogueDate, _, err := normalize.NormalizeDate(rawCatalogue)
	if err != nil {
		return nil, fmt.Errorf("catalogue_date: %w", err)
	}

	w := &Work{
		ID:            id,
		Title:         strings.TrimSpace(normalize.Stringify(rawTitle)),
		Date:          date,
		Layout:        optional(cols, r, RoleLayout),
		CatalogueDate: catalogueDate,
		Series:        optional(cols, r, RoleSeries),
		Medium:        optional(cols, r, RoleMedium),
		Dimensions:    optional(cols, r, RoleDimensions),
		Primary:       optional(cols, r, RolePrimary),
		Thumb:         optional(cols, r, RoleThumb),
		Notes:         optional(cols, r, RoleNotes),
	}
	if w.Layout == "" {
		w.Layout = opts.DefaultLayout
	}

	rawTags, _ := cols.Lookup(r, RoleTags)
	w.Tags = normalize.SplitList(rawTags, opts.TagSeparator)

	rawAttachments, _ := cols.Lookup(r, RoleAttachments)
	for _, name := range normalize.SplitList(rawAttachments, opts.AttachmentSeparator) {
		w.Attachments = append(w.Attachments, Attachment{
			Filename: name,
			URL:      AttachmentURL(opts.AssetsBase, id, name),
		})
	}

	if opts.PermalinkTemplate != "" {
		w.Permalink = strings.ReplaceAll(opts.PermalinkTemplate, "{id}", id)
	}

	return w, nil
}

// AttachmentURL joins <base>/<id>/files/<filename>
func AttachmentURL(base, id, filename string) string {
	return strings.Join([]string{strings.TrimRight(base, "/"), id, AttachmentSegment, filename}, "/")
}

func optional(cols Columns, r Row, role Role) string {
	v, ok := cols.Lookup(r, role)
	if !ok {
		return ""
	}
	return strings.TrimSpace(normalize.Stringify(v))
}

// FrontMatter returns the page metadata in its fixed key order
func (w *Work) FrontMatter() *metadata.Block {
	b := metadata.NewBlock()
	b.Set("title", w.Title)
	b.Set("date", w.Date)
	b.Set("layout", w.Layout)
	b.Set("work_id", w.ID)
	b.SetKept("catalogue_date", nilIfEmpty(w.CatalogueDate))
	b.Set("series", nilIfEmpty(w.Series))
	b.Set("medium", nilIfEmpty(w.Medium))
	b.Set("dimensions", nilIfEmpty(w.Dimensions))
	b.Set("primary", nilIfEmpty(w.Primary))
	b.Set("thumb", nilIfEmpty(w.Thumb))
	b.SetKept("tags", append([]string{}, w.Tags...))
	if w.Permalink != "" {
		b.Set("permalink", w.Permalink)
	}
	return b
}

// Body returns the notes followed by the supplements list, right-trimmed
func (w *Work) Body() string {
	var lines []string
	if w.Notes != "" {
		lines = append(lines, w.Notes, "")
	}

	if len(w.Attachments) > 0 {
		lines = append(lines, SupplementsHeading)
		for _, a := range w.Attachments {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", linkText(a.URL), a.URL))
		}
		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
}

// linkText is the last path segment of the URL
func linkText(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// Document assembles the page for this work
func (w *Work) Document() *Document {
	return &Document{
		ID:          w.ID,
		FrontMatter: w.FrontMatter(),
		Body:        w.Body(),
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
