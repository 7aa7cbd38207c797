// Package normalize converts raw spreadsheet cell values into the canonical
// forms written to work page front matter.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidIdentifier is matched by every InvalidIdentifierError
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidDate is matched by every InvalidDateError
	ErrInvalidDate = errors.New("invalid date")
)

// InvalidIdentifierError reports a raw id value with no digits in it
type InvalidIdentifierError struct {
	Raw any
}

func (e *InvalidIdentifierError) Error() string {
	if e.Raw == nil {
		return "missing id"
	}
	return fmt.Sprintf("invalid id value: %q", Stringify(e.Raw))
}

func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// InvalidDateError reports a YYYY-M-D string that is not a calendar date
type InvalidDateError struct {
	Raw string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date value: %q", e.Raw)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

var (
	reFractionalZero = regexp.MustCompile(`\.0$`)
	reNonDigit       = regexp.MustCompile(`\D`)
	reLooseDate      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// Stringify renders a raw cell value as plain text.
// Floats use the shortest exact decimal form, so 361.0 becomes "361".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.DateOnly)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// IsBlank reports whether a raw value is absent or only whitespace
func IsBlank(v any) bool {
	return v == nil || strings.TrimSpace(Stringify(v)) == ""
}

// NormalizeID converts a raw id cell into a zero-padded digit string.
// "361.0" and 361 both become "00361" with width 5.
func NormalizeID(raw any, width int) (string, error) {
	if raw == nil {
		return "", &InvalidIdentifierError{Raw: nil}
	}

	s := strings.TrimSpace(Stringify(raw))
	s = reFractionalZero.ReplaceAllString(s, "")
	s = reNonDigit.ReplaceAllString(s, "")
	if s == "" {
		return "", &InvalidIdentifierError{Raw: raw}
	}

	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s, nil
}

// dateStrategy either resolves a raw value or defers to the next strategy
type dateStrategy func(raw any) (value string, ok bool, err error)

var dateStrategies = []dateStrategy{
	structuredDate,
	looseISODate,
	passThroughDate,
}

// NormalizeDate resolves a raw date cell to an ISO calendar date.
// ok is false when the cell is absent or blank. Strings that do not look
// like YYYY-M-D are returned trimmed and otherwise untouched.
func NormalizeDate(raw any) (string, bool, error) {
	if IsBlank(raw) {
		return "", false, nil
	}

	for _, strategy := range dateStrategies {
		value, ok, err := strategy(raw)
		if err != nil {
			return "", false, err
		}
		if ok {
			return value, true, nil
		}
	}

	return "", false, nil
}

func structuredDate(raw any) (string, bool, error) {
	t, ok := raw.(time.Time)
	if !ok {
		return "", false, nil
	}
	return t.Format(time.DateOnly), true, nil
}

func looseISODate(raw any) (string, bool, error) {
	s := strings.TrimSpace(Stringify(raw))
	m := reLooseDate.FindStringSubmatch(s)
	if m == nil {
		return "", false, nil
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (month 13, Feb 30); a round trip catches it
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false, &InvalidDateError{Raw: s}
	}
	return t.Format(time.DateOnly), true, nil
}

func passThroughDate(raw any) (string, bool, error) {
	return strings.TrimSpace(Stringify(raw)), true, nil
}

// SplitList splits a delimited cell into trimmed, non-empty items.
// Order is preserved and duplicates are kept.
func SplitList(raw any, sep string) []string {
	items := []string{}
	s := strings.TrimSpace(Stringify(raw))
	if s == "" {
		return items
	}

	for _, part := range strings.Split(s, sep) {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
