package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kamal-hamza/wp-cli/pkg/normalize"
)

func sampleTable(header []any, rows ...[]any) *Table {
	records := append([][]any{header}, rows...)
	return NewTable("Works", records)
}

func TestNewTable(t *testing.T) {
	table := sampleTable(
		[]any{" id ", "title", nil, "title"},
		[]any{1.0, "first", "ignored", "second"},
		[]any{2.0},
	)

	if !reflect.DeepEqual(table.Headers, []string{"id", "title", "", "title"}) {
		t.Errorf("Headers = %#v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}

	row := table.Rows[0]
	if row.Number != 2 {
		t.Errorf("first data row Number = %d, want 2", row.Number)
	}
	if v, _ := row.Lookup("title"); v != "second" {
		t.Errorf("repeated header should resolve to last column, got %v", v)
	}
	if _, ok := row.Lookup("Title"); ok {
		t.Error("lookup must be case-sensitive")
	}
	if _, ok := table.Rows[1].Lookup("title"); ok {
		t.Error("short row should report missing cell")
	}
}

func TestTable_IsEmpty(t *testing.T) {
	if !NewTable("", nil).IsEmpty() {
		t.Error("table without records should be empty")
	}
	if sampleTable([]any{"id"}).IsEmpty() {
		t.Error("header-only table is not empty")
	}
}

func TestColumns_Missing(t *testing.T) {
	table := sampleTable([]any{"ref", "title"})
	missing := DefaultColumns().Missing(table)
	if !reflect.DeepEqual(missing, []Role{RoleID}) {
		t.Errorf("Missing() = %v, want [id]", missing)
	}

	cols := DefaultColumns()
	cols.ID = "ref"
	if missing := cols.Missing(table); len(missing) != 0 {
		t.Errorf("Missing() = %v, want none", missing)
	}
}

func TestNewWork_MissingRequired(t *testing.T) {
	opts := DefaultBuildOptions("2026-01-01")
	header := []any{"id", "title"}

	tests := []struct {
		name string
		row  []any
	}{
		{"no id", []any{nil, "Title"}},
		{"no title", []any{1.0, nil}},
		{"blank title", []any{1.0, "   "}},
		{"short row", []any{1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := sampleTable(header, tt.row)
			_, err := NewWork(table.Rows[0], opts)
			if !errors.Is(err, ErrMissingRequiredField) {
				t.Errorf("expected ErrMissingRequiredField, got %v", err)
			}
		})
	}
}

func TestNewWork_NormalizationErrors(t *testing.T) {
	opts := DefaultBuildOptions("2026-01-01")

	table := sampleTable([]any{"id", "title"}, []any{"abc", "Title"})
	if _, err := NewWork(table.Rows[0], opts); !errors.Is(err, normalize.ErrInvalidIdentifier) {
		t.Errorf("expected ErrInvalidIdentifier, got %v", err)
	}

	table = sampleTable([]any{"id", "title", "date"}, []any{1.0, "Title", "2024-13-01"})
	if _, err := NewWork(table.Rows[0], opts); !errors.Is(err, normalize.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	table = sampleTable([]any{"id", "title", "catalogue_date"}, []any{1.0, "Title", "2024-2-31"})
	if _, err := NewWork(table.Rows[0], opts); !errors.Is(err, normalize.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for catalogue_date, got %v", err)
	}
}

func TestNewWork_Defaults(t *testing.T) {
	opts := DefaultBuildOptions("2026-10-17")
	table := sampleTable([]any{"id", "title", "layout", "series"}, []any{"7", " Still Life ", "  ", "  "})

	w, err := NewWork(table.Rows[0], opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.ID != "00007" {
		t.Errorf("ID = %q", w.ID)
	}
	if w.Title != "Still Life" {
		t.Errorf("Title = %q", w.Title)
	}
	if w.Date != "2026-10-17" {
		t.Errorf("Date should fall back to default, got %q", w.Date)
	}
	if w.Layout != "theme" {
		t.Errorf("blank layout should fall back to default, got %q", w.Layout)
	}
	if w.Series != "" {
		t.Errorf("blank series should be omitted, got %q", w.Series)
	}
	if len(w.Tags) != 0 || len(w.Attachments) != 0 {
		t.Errorf("expected no tags or attachments, got %v %v", w.Tags, w.Attachments)
	}
}

func TestWork_Document_EndToEnd(t *testing.T) {
	opts := DefaultBuildOptions("2026-10-17")
	table := sampleTable(
		[]any{"id", "title", "date", "tags", "attachments", "notes"},
		[]any{361.0, "Untitled", "2023-5-1", "red,blue", "a.pdf;b.pdf", "Some notes"},
	)

	w, err := NewWork(table.Rows[0], opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := w.Document()
	if doc.Filename() != "00361.md" {
		t.Errorf("Filename() = %q", doc.Filename())
	}

	expected := strings.Join([]string{
		"---",
		`title: "Untitled"`,
		`date: "2023-05-01"`,
		`layout: "theme"`,
		`work_id: "00361"`,
		`catalogue_date: null`,
		`tags: ["red", "blue"]`,
		"---",
		"Some notes",
		"",
		"## Supplements",
		"- [a.pdf](/assets/works/00361/files/a.pdf)",
		"- [b.pdf](/assets/works/00361/files/b.pdf)",
		"",
	}, "\n")

	if got := doc.Render(); got != expected {
		t.Errorf("Render() mismatch\n got: %q\nwant: %q", got, expected)
	}
}

func TestWork_FrontMatter_AllFields(t *testing.T) {
	opts := DefaultBuildOptions("2026-10-17")
	opts.PermalinkTemplate = "/works/{id}/"
	table := sampleTable(
		[]any{"id", "title", "date", "catalogue_date", "series", "medium", "dimensions", "primary", "thumb", "layout"},
		[]any{12.0, "Blue", time.Date(2019, 4, 2, 10, 0, 0, 0, time.UTC), "2019-4-1", "Sea", "Oil", 30.0, "main.jpg", "t.jpg", "work"},
	)

	w, err := NewWork(table.Rows[0], opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"title", "date", "layout", "work_id", "catalogue_date", "series", "medium", "dimensions", "primary", "thumb", "tags", "permalink"}
	if got := w.FrontMatter().Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	rendered := w.Document().Render()
	for _, line := range []string{
		`date: "2019-04-02"`,
		`catalogue_date: "2019-04-01"`,
		`dimensions: "30"`,
		`layout: "work"`,
		`tags: []`,
		`permalink: "/works/00012/"`,
	} {
		if !strings.Contains(rendered, line+"\n") {
			t.Errorf("rendered document missing %q:\n%s", line, rendered)
		}
	}
}

func TestWork_Body(t *testing.T) {
	tests := []struct {
		name     string
		work     Work
		expected string
	}{
		{"empty", Work{}, ""},
		{"notes only", Work{Notes: "Hello"}, "Hello"},
		{
			"attachments only",
			Work{Attachments: []Attachment{{Filename: "a.pdf", URL: "/x/1/files/a.pdf"}}},
			"## Supplements\n- [a.pdf](/x/1/files/a.pdf)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.work.Body(); got != tt.expected {
				t.Errorf("Body() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAttachmentURL(t *testing.T) {
	tests := []struct {
		base     string
		expected string
	}{
		{"/assets/works", "/assets/works/00001/files/a.pdf"},
		{"/assets/works/", "/assets/works/00001/files/a.pdf"},
		{"https://cdn.example.com/w", "https://cdn.example.com/w/00001/files/a.pdf"},
	}

	for _, tt := range tests {
		if got := AttachmentURL(tt.base, "00001", "a.pdf"); got != tt.expected {
			t.Errorf("AttachmentURL(%q) = %q, want %q", tt.base, got, tt.expected)
		}
	}
}

func TestParseDocumentFilename(t *testing.T) {
	tests := []struct {
		filename string
		id       string
		ok       bool
	}{
		{"00361.md", "00361", true},
		{"notes.txt", "", false},
		{".md", "", false},
	}

	for _, tt := range tests {
		id, ok := ParseDocumentFilename(tt.filename)
		if id != tt.id || ok != tt.ok {
			t.Errorf("ParseDocumentFilename(%q) = %q, %v; want %q, %v", tt.filename, id, ok, tt.id, tt.ok)
		}
	}
}
