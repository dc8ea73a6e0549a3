// Package config persists user-facing state: the settings.json runtime
// state file and the optional screenux.toml preferences overlay.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rafa/screenux-screenshot/pkg/logging"
)

const backupSuffix = ".bak"

// Settings is the persisted runtime state. The global hotkey preference is
// tri-state: absent (the user never chose), explicitly disabled, or a
// concrete accelerator. JSON round-trips preserve which of the three states
// the file is in.
type Settings struct {
	SaveDir      string
	EditorBundle string

	hotkey    *string
	hotkeySet bool
}

type settingsJSON struct {
	GlobalHotkey json.RawMessage `json:"global_hotkey,omitempty"`
	SaveDir      string          `json:"save_dir,omitempty"`
	EditorBundle string          `json:"editor_bundle,omitempty"`
}

// HotkeyPreference returns the stored preference. present is false when the
// key is absent from the file; a nil value with present true is an explicit
// disable.
func (s *Settings) HotkeyPreference() (value *string, present bool) {
	return s.hotkey, s.hotkeySet
}

// SetGlobalHotkey records a concrete accelerator preference.
func (s *Settings) SetGlobalHotkey(accel string) {
	s.hotkey = &accel
	s.hotkeySet = true
}

// DisableGlobalHotkey records an explicit disable, persisted as null.
func (s *Settings) DisableGlobalHotkey() {
	s.hotkey = nil
	s.hotkeySet = true
}

// View returns the settings as a plain map for rendering.
func (s *Settings) View() map[string]any {
	view := map[string]any{}
	if s.hotkeySet {
		if s.hotkey == nil {
			view["global_hotkey"] = nil
		} else {
			view["global_hotkey"] = *s.hotkey
		}
	}
	if s.SaveDir != "" {
		view["save_dir"] = s.SaveDir
	}
	if s.EditorBundle != "" {
		view["editor_bundle"] = s.EditorBundle
	}
	return view
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := settingsJSON{SaveDir: s.SaveDir, EditorBundle: s.EditorBundle}
	if s.hotkeySet {
		if s.hotkey == nil {
			out.GlobalHotkey = json.RawMessage("null")
		} else {
			encoded, err := json.Marshal(*s.hotkey)
			if err != nil {
				return nil, err
			}
			out.GlobalHotkey = encoded
		}
	}
	return json.Marshal(out)
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw settingsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.SaveDir = raw.SaveDir
	s.EditorBundle = raw.EditorBundle
	s.hotkey = nil
	s.hotkeySet = false
	if raw.GlobalHotkey == nil {
		return nil
	}
	s.hotkeySet = true
	if string(raw.GlobalHotkey) == "null" {
		return nil
	}
	var value string
	if err := json.Unmarshal(raw.GlobalHotkey, &value); err != nil {
		// Keep the raw token for non-string values from hand-edited files;
		// normalization rejects it downstream and falls back to the default.
		value = string(raw.GlobalHotkey)
	}
	s.hotkey = &value
	return nil
}

// LoadSettings reads the settings file. A missing, unreadable or corrupt
// file yields empty settings; stored state never blocks startup.
func LoadSettings(path string) *Settings {
	settings := &Settings{}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(data, settings); err != nil {
		logging.NewLogger("config").WithError(err).Warnf("ignoring corrupt settings file %s", path)
		return &Settings{}
	}
	return settings
}

// SaveSettings writes the settings atomically, keeping the previous content
// as a .bak sibling.
func SaveSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set settings permissions: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+backupSuffix); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("failed to back up settings: %w", err)
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}
