package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rafa/screenux-screenshot/pkg/config"
	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/logging"
	"github.com/rafa/screenux-screenshot/pkg/paths"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

// loadRuntimeConfig reads the settings file and the optional preferences
// overlay. Neither result blocks the command; unreadable preferences are
// warned about and dropped.
func loadRuntimeConfig() (*config.Settings, *config.Preferences) {
	settings := &config.Settings{}
	if path, err := paths.SettingsPath(); err == nil {
		settings = config.LoadSettings(path)
	}
	prefs := &config.Preferences{}
	if path, err := paths.PreferencesPath(); err == nil {
		loaded, err := config.LoadPreferences(path)
		if err != nil {
			logging.NewLogger("cmd").WithError(err).Warn("ignoring unreadable preferences")
		} else {
			prefs = loaded
		}
	}
	return settings, prefs
}

// newHotkeyManager builds the registration manager against the live
// gsettings backend, with the preferences overlay applied.
func newHotkeyManager() (*hotkey.Manager, error) {
	settingsPath, err := paths.SettingsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config dir: %w", err)
	}
	manager := hotkey.NewManager(gsettings.NewCLI(), settingsPath)
	_, prefs := loadRuntimeConfig()
	manager.DefaultPreference = prefs.Shortcut
	manager.ExtraFallbacks = prefs.ExtraFallbacks
	return manager, nil
}

// softRegistryWarning maps the registry conditions that must not fail the
// command to their user-facing warnings. Anything else stays an error.
func softRegistryWarning(err error) (string, bool) {
	if errors.Is(err, gsettings.ErrUnavailable) {
		return hotkey.WarnBackendMissing, true
	}
	var schemaMissing *gsettings.SchemaMissingError
	if errors.As(err, &schemaMissing) {
		return hotkey.WarnSchemaUnavailable, true
	}
	return "", false
}

// printWarning writes a styled warning line to stderr.
func printWarning(message string) {
	t := theme.DefaultTheme
	fmt.Fprintln(os.Stderr, t.Warning.Render(theme.IconWarning+" "+message))
}
