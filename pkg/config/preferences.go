package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/rafa/screenux-screenshot/pkg/logging"
)

// Preferences is the optional screenux.toml overlay. It carries defaults a
// user edits by hand; runtime state stays in settings.json.
type Preferences struct {
	Shortcut       string             `toml:"shortcut"`
	ExtraFallbacks []string           `toml:"extra_fallbacks"`
	SaveDir        string             `toml:"save_dir"`
	Capture        CapturePreferences `toml:"capture"`
}

// CapturePreferences selects how screenshots are taken.
type CapturePreferences struct {
	Backend string `toml:"backend"`
}

// LoadPreferences reads the preferences file. A missing file yields zero
// preferences; unknown keys are warned about and ignored; syntax errors are
// returned.
func LoadPreferences(path string) (*Preferences, error) {
	prefs := &Preferences{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(prefs); err != nil {
		var strict *toml.StrictMissingError
		if !errors.As(err, &strict) {
			return nil, fmt.Errorf("failed to parse preferences %s: %w", path, err)
		}
		logging.NewLogger("config").Warnf("ignoring unknown keys in %s", path)
		*prefs = Preferences{}
		if err := toml.Unmarshal(data, prefs); err != nil {
			return nil, fmt.Errorf("failed to parse preferences %s: %w", path, err)
		}
	}
	return prefs, nil
}
