package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafa/screenux-screenshot/pkg/config"
)

func TestSettingsHotkeyTriState(t *testing.T) {
	t.Run("FreshSettingsHaveNoPreference", func(t *testing.T) {
		settings := &config.Settings{}
		value, present := settings.HotkeyPreference()
		assert.Nil(t, value)
		assert.False(t, present)
	})

	t.Run("SetGlobalHotkey", func(t *testing.T) {
		settings := &config.Settings{}
		settings.SetGlobalHotkey("Ctrl+Shift+S")
		value, present := settings.HotkeyPreference()
		require.NotNil(t, value)
		assert.Equal(t, "Ctrl+Shift+S", *value)
		assert.True(t, present)
	})

	t.Run("DisableGlobalHotkey", func(t *testing.T) {
		settings := &config.Settings{}
		settings.SetGlobalHotkey("Ctrl+Shift+S")
		settings.DisableGlobalHotkey()
		value, present := settings.HotkeyPreference()
		assert.Nil(t, value)
		assert.True(t, present)
	})
}

func TestSettingsJSON(t *testing.T) {
	t.Run("AbsentKeyOmitted", func(t *testing.T) {
		data, err := json.Marshal(&config.Settings{SaveDir: "/tmp/shots"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"save_dir": "/tmp/shots"}`, string(data))
	})

	t.Run("DisabledSerializesAsNull", func(t *testing.T) {
		settings := &config.Settings{}
		settings.DisableGlobalHotkey()
		data, err := json.Marshal(settings)
		require.NoError(t, err)
		assert.JSONEq(t, `{"global_hotkey": null}`, string(data))
	})

	t.Run("ValueSerializesAsString", func(t *testing.T) {
		settings := &config.Settings{}
		settings.SetGlobalHotkey("Ctrl+Alt+P")
		data, err := json.Marshal(settings)
		require.NoError(t, err)
		assert.JSONEq(t, `{"global_hotkey": "Ctrl+Alt+P"}`, string(data))
	})

	t.Run("RoundTripPreservesTriState", func(t *testing.T) {
		for _, fixture := range []string{
			`{}`,
			`{"global_hotkey": null}`,
			`{"global_hotkey": "Super+P"}`,
		} {
			settings := &config.Settings{}
			require.NoError(t, json.Unmarshal([]byte(fixture), settings))
			data, err := json.Marshal(settings)
			require.NoError(t, err)
			assert.JSONEq(t, fixture, string(data))
		}
	})

	t.Run("NonStringValueKeptAsRawToken", func(t *testing.T) {
		settings := &config.Settings{}
		require.NoError(t, json.Unmarshal([]byte(`{"global_hotkey": 123}`), settings))
		value, present := settings.HotkeyPreference()
		require.NotNil(t, value)
		assert.Equal(t, "123", *value)
		assert.True(t, present)
	})
}

func TestLoadSettings(t *testing.T) {
	t.Run("MissingFileYieldsEmpty", func(t *testing.T) {
		settings := config.LoadSettings(filepath.Join(t.TempDir(), "settings.json"))
		_, present := settings.HotkeyPreference()
		assert.False(t, present)
		assert.Empty(t, settings.SaveDir)
	})

	t.Run("CorruptFileYieldsEmpty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte("not valid json{{{"), 0o644))
		settings := config.LoadSettings(path)
		_, present := settings.HotkeyPreference()
		assert.False(t, present)
	})

	t.Run("ParsesStoredState", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"global_hotkey": "Ctrl+P", "save_dir": "/data/shots"}`), 0o644))
		settings := config.LoadSettings(path)
		value, present := settings.HotkeyPreference()
		require.True(t, present)
		require.NotNil(t, value)
		assert.Equal(t, "Ctrl+P", *value)
		assert.Equal(t, "/data/shots", settings.SaveDir)
	})
}

func TestSaveSettings(t *testing.T) {
	t.Run("CreatesDirectoriesAndWrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "screenux", "settings.json")
		settings := &config.Settings{}
		settings.SetGlobalHotkey("Ctrl+Shift+S")

		require.NoError(t, config.SaveSettings(path, settings))

		loaded := config.LoadSettings(path)
		value, present := loaded.HotkeyPreference()
		require.True(t, present)
		require.NotNil(t, value)
		assert.Equal(t, "Ctrl+Shift+S", *value)
	})

	t.Run("KeepsBackupOfPreviousContent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		first := &config.Settings{SaveDir: "/first"}
		require.NoError(t, config.SaveSettings(path, first))
		second := &config.Settings{SaveDir: "/second"}
		require.NoError(t, config.SaveSettings(path, second))

		assert.Equal(t, "/second", config.LoadSettings(path).SaveDir)
		assert.Equal(t, "/first", config.LoadSettings(path+".bak").SaveDir)
	})

	t.Run("WritesTwoSpaceIndentedJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		settings := &config.Settings{SaveDir: "/data"}
		require.NoError(t, config.SaveSettings(path, settings))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"save_dir\"")
		assert.True(t, len(data) > 0 && data[len(data)-1] == '\n')
	})
}

func TestSettingsView(t *testing.T) {
	settings := &config.Settings{SaveDir: "/data"}
	settings.DisableGlobalHotkey()

	view := settings.View()
	value, present := view["global_hotkey"]
	assert.True(t, present)
	assert.Nil(t, value)
	assert.Equal(t, "/data", view["save_dir"])
	assert.NotContains(t, view, "editor_bundle")
}
