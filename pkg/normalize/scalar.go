package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SerializeScalar renders a value in the canonical front matter form.
//
//	true        -> true
//	nil         -> null
//	361.0       -> 361
//	2.5         -> 2.5
//	[]string{}  -> []
//	{"a", "b"}  -> ["a", "b"]
//	He said "x" -> "He said \"x\""
func SerializeScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []string:
		return formatList(val)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = Stringify(item)
		}
		return formatList(items)
	default:
		return Quote(Stringify(val))
	}
}

// Quote wraps s in double quotes, escaping backslashes, quotes and
// control characters so the result is a valid single-line YAML scalar.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatFloat(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
