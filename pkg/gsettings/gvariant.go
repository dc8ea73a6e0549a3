package gsettings

import (
	"fmt"
	"strings"
)

// ParseStringList decodes a GVariant string-array literal ("['a', 'b']",
// "[]", "@as []") into its elements. Values gsettings prints for 'as' keys
// are single-quoted with backslash escapes inside.
func ParseStringList(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimSpace(strings.TrimPrefix(text, "@as"))
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("not a list literal: %q", raw)
	}

	body := text[1 : len(text)-1]
	var (
		items   []string
		current strings.Builder
		inItem  bool
		escaped bool
	)
	for _, r := range body {
		switch {
		case !inItem:
			switch r {
			case '\'':
				inItem = true
				current.Reset()
			case ',', ' ', '\t', '\n':
			default:
				return nil, fmt.Errorf("unexpected %q in list literal %q", r, raw)
			}
		case escaped:
			switch r {
			case 'n':
				current.WriteRune('\n')
			case 't':
				current.WriteRune('\t')
			default:
				current.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == '\'':
			inItem = false
			items = append(items, current.String())
		default:
			current.WriteRune(r)
		}
	}
	if inItem {
		return nil, fmt.Errorf("unterminated string in list literal %q", raw)
	}
	return items, nil
}

// FormatStringList encodes elements as the GVariant string-array literal the
// backend accepts, "[]" for none.
func FormatStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + escapeString(item) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// IsListLiteral reports whether the value is structurally a list literal:
// it starts with '[' and ends with ']'. This is the validation gate for
// binding values and deliberately not a full grammar check.
func IsListLiteral(value string) bool {
	text := strings.TrimSpace(value)
	return strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}

// UnquoteValue strips the single quotes gsettings prints around scalar string
// values. Non-quoted text is returned trimmed.
func UnquoteValue(raw string) string {
	text := strings.TrimSpace(raw)
	if len(text) >= 2 && strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") {
		return text[1 : len(text)-1]
	}
	return text
}
