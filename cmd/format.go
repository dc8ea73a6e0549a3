package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// formatValue constrains a --format flag to the known encodings, rejecting
// anything else at parse time.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(def string) *formatValue {
	value := formatValue(def)
	return &value
}

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(value string) error {
	switch value {
	case formatText, formatJSON, formatYAML:
		*f = formatValue(value)
		return nil
	}
	return fmt.Errorf("expected %s, %s or %s", formatText, formatJSON, formatYAML)
}

func (f *formatValue) Type() string { return "format" }

// renderStructured prints v as JSON or YAML on stdout.
func renderStructured(v any, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		fmt.Print(string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected %s, %s or %s)", format, formatText, formatJSON, formatYAML)
	}
}

// statusGlyph renders a check or cross for a boolean probe result.
func statusGlyph(ok bool) string {
	t := theme.DefaultTheme
	if ok {
		return t.Success.Render(theme.IconSuccess)
	}
	return t.Error.Render(theme.IconError)
}
