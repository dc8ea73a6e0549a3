package hotkey

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultShortcut is used when the configuration carries no preference.
const DefaultShortcut = "Ctrl+Shift+S"

// FallbackShortcuts are tried in order when the preferred combination is
// already taken.
var FallbackShortcuts = []string{"Ctrl+Alt+S", "Alt+Shift+S", "Super+Shift+S"}

// modifierOrder fixes the canonical ordering of modifiers in a normalized
// accelerator.
var modifierOrder = []string{"Ctrl", "Alt", "Shift", "Super"}

var modifierAliases = map[string]string{
	"CTRL":    "Ctrl",
	"CONTROL": "Ctrl",
	"ALT":     "Alt",
	"SHIFT":   "Shift",
	"SUPER":   "Super",
	"WIN":     "Super",
	"META":    "Super",
}

// gsettingsModifiers maps canonical modifiers to their GTK accelerator
// tokens.
var gsettingsModifiers = map[string]string{
	"Ctrl":  "<Control>",
	"Alt":   "<Alt>",
	"Shift": "<Shift>",
	"Super": "<Super>",
}

var (
	quotedAccelPattern = regexp.MustCompile(`'([^']+)'`)
	modifierPattern    = regexp.MustCompile(`<([^>]+)>`)
)

// NormalizeAccel converts a user-supplied shortcut such as "ctrl+shift+s" or
// "<Control><Shift>S" into the canonical "Ctrl+Shift+S" form: known modifier
// aliases folded, modifiers ordered Ctrl, Alt, Shift, Super, exactly one key
// token. An error is returned for empty input, unknown key names and inputs
// with zero or more than one non-modifier token.
func NormalizeAccel(value string) (string, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", errors.New("shortcut cannot be empty")
	}

	var (
		modifiers []string
		key       string
		haveKey   bool
		haveParts bool
	)
	for _, part := range strings.Split(text, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		haveParts = true
		if modifier, ok := normalizeModifierToken(part); ok {
			if !slices.Contains(modifiers, modifier) {
				modifiers = append(modifiers, modifier)
			}
			continue
		}
		if haveKey {
			return "", errors.New("shortcut must contain exactly one non-modifier key")
		}
		normalized, err := normalizeKeyToken(part)
		if err != nil {
			return "", err
		}
		key = normalized
		haveKey = true
	}
	if !haveParts {
		return "", errors.New("shortcut cannot be empty")
	}
	if !haveKey {
		return "", errors.New("shortcut must include a non-modifier key")
	}

	ordered := make([]string, 0, len(modifiers)+1)
	for _, modifier := range modifierOrder {
		if slices.Contains(modifiers, modifier) {
			ordered = append(ordered, modifier)
		}
	}
	return strings.Join(append(ordered, key), "+"), nil
}

// ToBindingLiteral converts an accelerator into the single-element GVariant
// string list GNOME stores in a slot's binding field, for example
// "Ctrl+Shift+S" into "['<Control><Shift>s']". Single-character keys are
// lowercased; named keys keep their canonical casing.
func ToBindingLiteral(accel string) (string, error) {
	normalized, err := NormalizeAccel(accel)
	if err != nil {
		return "", err
	}
	parts := strings.Split(normalized, "+")
	key := parts[len(parts)-1]

	var builder strings.Builder
	for _, modifier := range parts[:len(parts)-1] {
		builder.WriteString(gsettingsModifiers[modifier])
	}
	if utf8.RuneCountInString(key) == 1 {
		builder.WriteString(strings.ToLower(key))
	} else {
		builder.WriteString(key)
	}
	return "['" + builder.String() + "']", nil
}

// ParseBindingValue extracts the first accelerator from a stored binding
// value, either a list literal like "['<Control>p']" or a bare quoted
// scalar, and returns it in canonical form. It returns "" for empty lists,
// unparseable values and accelerators using unknown modifiers or keys.
func ParseBindingValue(raw string) string {
	match := quotedAccelPattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	accel := strings.TrimSpace(match[1])
	if accel == "" {
		return ""
	}

	var modifiers []string
	key := accel
	if strings.HasPrefix(accel, "<") {
		for _, token := range modifierPattern.FindAllStringSubmatch(accel, -1) {
			modifier, ok := normalizeModifierToken(token[1])
			if !ok {
				return ""
			}
			if !slices.Contains(modifiers, modifier) {
				modifiers = append(modifiers, modifier)
			}
		}
		key = strings.TrimSpace(modifierPattern.ReplaceAllString(accel, ""))
	}
	if key == "" {
		return ""
	}
	normalizedKey, err := normalizeKeyToken(key)
	if err != nil {
		return ""
	}

	ordered := make([]string, 0, len(modifiers)+1)
	for _, modifier := range modifierOrder {
		if slices.Contains(modifiers, modifier) {
			ordered = append(ordered, modifier)
		}
	}
	return strings.Join(append(ordered, normalizedKey), "+")
}

func normalizeModifierToken(token string) (string, bool) {
	trimmed := strings.Trim(strings.TrimSpace(token), "<>")
	normalized, ok := modifierAliases[strings.ToUpper(trimmed)]
	return normalized, ok
}

func normalizeKeyToken(token string) (string, error) {
	text := strings.TrimSpace(token)
	if text == "" {
		return "", errors.New("shortcut key cannot be empty")
	}
	if utf8.RuneCountInString(text) == 1 {
		return strings.ToUpper(text), nil
	}
	upper := strings.ToUpper(text)
	switch upper {
	case "PRINT", "PRINTSCREEN":
		return "Print", nil
	case "SPACE":
		return "Space", nil
	case "TAB":
		return "Tab", nil
	case "ESC":
		return "Esc", nil
	case "ESCAPE":
		return "Escape", nil
	case "ENTER":
		return "Enter", nil
	}
	if strings.HasPrefix(upper, "F") && isDigits(upper[1:]) {
		return upper, nil
	}
	if isAlpha(text) {
		return titleCase(text), nil
	}
	return "", fmt.Errorf("unsupported shortcut key: %s", token)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func titleCase(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
