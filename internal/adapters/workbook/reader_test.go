package workbook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
)

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "works.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func setRow(t *testing.T, f *excelize.File, sheet string, row int, values ...any) {
	t.Helper()
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			t.Fatal(err)
		}
		if v == nil {
			continue
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue(%s): %v", cell, err)
		}
	}
}

func TestXLSXReader_TypedCells(t *testing.T) {
	created := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	path := writeWorkbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", 1, "id", "title", "date", "tags", "featured", "code")
		setRow(t, f, "Sheet1", 2, 361.0, "Untitled", created, "red,blue", true, "00042")
		setRow(t, f, "Sheet1", 3, 362, " Second ", nil, nil, false, nil)
	})

	table, err := NewReader().Read(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if table.Sheet != "Sheet1" {
		t.Errorf("Sheet = %q, want Sheet1", table.Sheet)
	}
	if !reflect.DeepEqual(table.Headers, []string{"id", "title", "date", "tags", "featured", "code"}) {
		t.Errorf("Headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}

	first := table.Rows[0]
	if v := first.Value("id"); v != 361.0 {
		t.Errorf("id = %#v, want float64 361", v)
	}
	if v := first.Value("title"); v != "Untitled" {
		t.Errorf("title = %#v", v)
	}
	if v, ok := first.Value("date").(time.Time); !ok || v.Format(time.DateOnly) != "2023-05-01" {
		t.Errorf("date = %#v, want time 2023-05-01", first.Value("date"))
	}
	if v := first.Value("featured"); v != true {
		t.Errorf("featured = %#v, want true", v)
	}
	if v := first.Value("code"); v != "00042" {
		t.Errorf("code = %#v, want text 00042", v)
	}

	second := table.Rows[1]
	if v := second.Value("date"); v != nil {
		t.Errorf("empty date = %#v, want nil", v)
	}
	if second.Number != 3 {
		t.Errorf("Number = %d, want 3", second.Number)
	}
}

func TestXLSXReader_SheetSelection(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", 1, "id")
		idx, err := f.NewSheet("Works")
		if err != nil {
			t.Fatal(err)
		}
		setRow(t, f, "Works", 1, "id", "title")
		setRow(t, f, "Works", 2, 1, "One")
		f.SetActiveSheet(idx)
	})

	reader := NewReader()
	ctx := context.Background()

	table, err := reader.Read(ctx, path, "")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if table.Sheet != "Works" {
		t.Errorf("active sheet = %q, want Works", table.Sheet)
	}

	table, err = reader.Read(ctx, path, "Sheet1")
	if err != nil {
		t.Fatalf("Read(Sheet1) error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("Sheet1 should only have a header, got %d rows", len(table.Rows))
	}

	if _, err := reader.Read(ctx, path, "Missing"); !errors.Is(err, domain.ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}

	sheets, err := reader.Sheets(ctx, path)
	if err != nil {
		t.Fatalf("Sheets() error: %v", err)
	}
	if !reflect.DeepEqual(sheets, []string{"Sheet1", "Works"}) {
		t.Errorf("Sheets() = %v", sheets)
	}

	active, err := reader.ActiveSheet(ctx, path)
	if err != nil || active != "Works" {
		t.Errorf("ActiveSheet() = %q, %v", active, err)
	}
}

func TestXLSXReader_EmptySheet(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {})

	table, err := NewReader().Read(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !table.IsEmpty() {
		t.Errorf("expected empty table, got headers %v", table.Headers)
	}
}

func TestCSVReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "works.csv")
	content := "\ufeffid,title,notes\n361.0,Untitled,\"Line, with comma\"\n,No id\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	reader := NewReader()
	table, err := reader.Read(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if table.Sheet != "works" {
		t.Errorf("Sheet = %q, want works", table.Sheet)
	}
	if table.Headers[0] != "id" {
		t.Errorf("BOM not stripped from header: %q", table.Headers[0])
	}
	if v := table.Rows[0].Value("notes"); v != "Line, with comma" {
		t.Errorf("notes = %#v", v)
	}
	if v, ok := table.Rows[1].Lookup("id"); !ok || v != nil {
		t.Errorf("empty cell should be present but nil, got %#v, %v", v, ok)
	}
	if _, ok := table.Rows[1].Lookup("notes"); ok {
		t.Error("short row should not have notes cell")
	}

	if _, err := reader.Read(context.Background(), path, "Other"); !errors.Is(err, domain.ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestReader_StructuralErrors(t *testing.T) {
	dir := t.TempDir()
	reader := NewReader()
	ctx := context.Background()

	_, err := reader.Read(ctx, filepath.Join(dir, "missing.xlsx"), "")
	if !errors.Is(err, domain.ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
	var structural *domain.StructuralError
	if !errors.As(err, &structural) {
		t.Errorf("expected StructuralError, got %T", err)
	}

	txt := filepath.Join(dir, "works.txt")
	if err := os.WriteFile(txt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := reader.Read(ctx, txt, ""); !errors.Is(err, domain.ErrUnreadableSource) {
		t.Errorf("expected ErrUnreadableSource, got %v", err)
	}

	broken := filepath.Join(dir, "broken.xlsx")
	if err := os.WriteFile(broken, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := reader.Read(ctx, broken, ""); !errors.Is(err, domain.ErrUnreadableSource) {
		t.Errorf("expected ErrUnreadableSource, got %v", err)
	}
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"yyyy-mm-dd", true},
		{"d/m/yy", true},
		{"0.00", false},
		{`"day "0`, false},
		{"[Red]0", false},
		{`#,##0\d`, false},
		{"mmm yyyy", true},
	}

	for _, tt := range tests {
		if got := isDateFormat(tt.format); got != tt.expected {
			t.Errorf("isDateFormat(%q) = %v, want %v", tt.format, got, tt.expected)
		}
	}
}
