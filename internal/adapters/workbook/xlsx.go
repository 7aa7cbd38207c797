package workbook

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
)

// XLSXReader decodes Office Open XML workbooks.
// Cells keep their stored type: numbers become float64, date-formatted
// numbers become time.Time, booleans become bool and text stays string.
type XLSXReader struct{}

// NewXLSXReader creates an xlsx reader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read loads a sheet; sheet "" selects the workbook's active sheet
func (r *XLSXReader) Read(ctx context.Context, path string, sheet string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %s", domain.ErrSheetNotFound, sheet))
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err))
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dec := &cellDecoder{file: f, sheet: sheet, date1904: date1904, dateStyles: make(map[int]bool)}
	records := make([][]any, len(raw))
	for i, row := range raw {
		values := make([]any, len(row))
		for j, cell := range row {
			values[j] = dec.decode(j+1, i+1, cell)
		}
		records[i] = values
	}

	return domain.NewTable(sheet, records), nil
}

// Sheets lists sheet names in workbook order
func (r *XLSXReader) Sheets(ctx context.Context, path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ActiveSheet returns the name of the sheet selected when the workbook was saved
func (r *XLSXReader) ActiveSheet(path string) (string, error) {
	f, err := open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return f.GetSheetName(f.GetActiveSheetIndex()), nil
}

func open(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.NewStructuralError(path, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err))
	}
	return f, nil
}

type cellDecoder struct {
	file       *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (d *cellDecoder) decode(col, row int, raw string) any {
	if raw == "" {
		return nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}

	cellType, err := d.file.GetCellType(d.sheet, axis)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
		return raw
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw
		}
		if d.isDateStyled(axis) {
			if t, err := excelize.ExcelDateToTime(n, d.date1904); err == nil {
				return t
			}
		}
		return n
	default:
		return raw
	}
}

func (d *cellDecoder) isDateStyled(axis string) bool {
	styleID, err := d.file.GetCellStyle(d.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	if cached, ok := d.dateStyles[styleID]; ok {
		return cached
	}

	isDate := false
	if style, err := d.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormat(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	d.dateStyles[styleID] = isDate
	return isDate
}

// isBuiltInDateFormat reports whether a built-in number format id shows a date
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom number format contains day or year
// tokens outside literal text, escapes and bracketed sections
func isDateFormat(format string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range format {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}

	stripped := strings.ToLower(b.String())
	return strings.ContainsAny(stripped, "yd")
}
