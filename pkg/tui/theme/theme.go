// Package theme defines the lipgloss styles and icon glyphs shared by all
// command output.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Icon glyphs used across command output.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "•"
	IconArrow   = "→"
	IconGear    = "⚙"
	IconCamera  = "⌗"
	IconKey     = "⌨"
)

// Theme groups the styles commands render their output with.
type Theme struct {
	Header    lipgloss.Style
	Bold      lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Path      lipgloss.Style
	Selected  lipgloss.Style
}

// DefaultTheme is the theme used by all commands. Configure replaces it with
// the plain variant when colors are unwanted.
var DefaultTheme = NewTheme()

// NewTheme returns the colored style set.
func NewTheme() Theme {
	return Theme{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true),
		Bold:      lipgloss.NewStyle().Bold(true),
		Normal:    lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	}
}

// PlainTheme returns the style set with no color or emphasis.
func PlainTheme() Theme {
	return Theme{
		Header:    lipgloss.NewStyle(),
		Bold:      lipgloss.NewStyle(),
		Normal:    lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle(),
		Success:   lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
		Info:      lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
		Path:      lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle(),
	}
}

// Configure picks the colored or plain theme. Color is used only when stdout
// is a terminal and noColor is false.
func Configure(noColor bool) {
	if noColor || !IsTerminal() {
		DefaultTheme = PlainTheme()
		return
	}
	DefaultTheme = NewTheme()
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
