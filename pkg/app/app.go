// Package app carries the application identity shared by desktop
// integration, shortcut registration and packaging.
package app

const (
	// ID is the reverse-DNS application id used for the desktop entry, the
	// icon names and the companion editor flatpak.
	ID = "io.github.rafa.ScreenuxScreenshot"

	// DisplayName is the human-facing application name and the display label
	// written into the GNOME keybinding slot.
	DisplayName = "Screenux Screenshot"

	// BinaryName is the installed executable name.
	BinaryName = "screenux-screenshot"

	// CaptureCommand is the command registered on the global shortcut.
	CaptureCommand = "screenux-screenshot capture"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"
