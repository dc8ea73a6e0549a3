// Package paths resolves the directories and file names the application
// reads and writes: the config dir, the screenshot save dir and the
// freedesktop locations used by install and uninstall.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/rafa/screenux-screenshot/pkg/app"
)

// ConfigDir returns the application's configuration directory, creating
// nothing. It follows XDG_CONFIG_HOME with the usual ~/.config fallback.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, "screenux"), nil
}

// SettingsPath returns the settings.json location.
func SettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// PreferencesPath returns the screenux.toml location.
func PreferencesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "screenux.toml"), nil
}

// ResolveSaveDir picks the directory screenshots are written to: the
// configured directory when it exists and is writable, then the XDG desktop
// directory, then the home directory.
func ResolveSaveDir(configured string) string {
	if configured != "" && isWritableDir(configured) {
		return configured
	}
	if desktop := DesktopDir(); desktop != "" && isWritableDir(desktop) {
		return desktop
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// DesktopDir returns the user's desktop directory from XDG_DESKTOP_DIR or
// the user-dirs.dirs file, or "" when neither is set.
func DesktopDir() string {
	if dir := os.Getenv("XDG_DESKTOP_DIR"); dir != "" {
		return expandHome(dir)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	data, err := os.ReadFile(filepath.Join(configHome, "user-dirs.dirs"))
	if err != nil {
		return ""
	}
	return parseUserDirsEntry(string(data), "XDG_DESKTOP_DIR")
}

// parseUserDirsEntry extracts one entry from user-dirs.dirs content. The
// file is a restricted shell fragment: KEY="VALUE" lines where VALUE may
// start with $HOME.
func parseUserDirsEntry(content, key string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(name) != key {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		return expandHome(value)
	}
	return ""
}

func expandHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	switch {
	case path == "$HOME" || path == "~":
		return home
	case strings.HasPrefix(path, "$HOME/"):
		return filepath.Join(home, path[len("$HOME/"):])
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	}
	return path
}

func isWritableDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	return unix.Access(path, unix.W_OK|unix.X_OK) == nil
}

// LocalBinDir returns ~/.local/bin, where the binary is installed.
func LocalBinDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home dir: %w", err)
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// ApplicationsDir returns the per-user desktop entry directory.
func ApplicationsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "applications"), nil
}

// HicolorDir returns the per-user hicolor icon theme root.
func HicolorDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "icons", "hicolor"), nil
}

// IconDir returns the scalable app icon directory inside the hicolor theme.
func IconDir() (string, error) {
	root, err := HicolorDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "scalable", "apps"), nil
}

// FlatpakUserDataDir returns the per-user flatpak data directory of the
// companion editor application.
func FlatpakUserDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home dir: %w", err)
	}
	return filepath.Join(home, ".var", "app", app.ID), nil
}
