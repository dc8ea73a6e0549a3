package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafa/screenux-screenshot/pkg/paths"
)

func TestConfigDir(t *testing.T) {
	t.Run("FollowsXDGConfigHome", func(t *testing.T) {
		custom := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", custom)

		dir, err := paths.ConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(custom, "screenux"), dir)
	})

	t.Run("DefaultsUnderHome", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", "")

		dir, err := paths.ConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "screenux"), dir)
	})

	t.Run("SettingsAndPreferencesPaths", func(t *testing.T) {
		custom := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", custom)

		settings, err := paths.SettingsPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(custom, "screenux", "settings.json"), settings)

		prefs, err := paths.PreferencesPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(custom, "screenux", "screenux.toml"), prefs)
	})
}

func TestResolveSaveDir(t *testing.T) {
	t.Run("ConfiguredDirectoryWins", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DESKTOP_DIR", "")
		custom := filepath.Join(home, "Screenshots")
		require.NoError(t, os.Mkdir(custom, 0o755))

		assert.Equal(t, custom, paths.ResolveSaveDir(custom))
	})

	t.Run("MissingConfiguredFallsToDesktop", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		desktop := filepath.Join(home, "Desktop")
		require.NoError(t, os.Mkdir(desktop, 0o755))
		t.Setenv("XDG_DESKTOP_DIR", desktop)

		assert.Equal(t, desktop, paths.ResolveSaveDir("/nonexistent/path"))
	})

	t.Run("ConfiguredFileIsIgnored", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DESKTOP_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
		file := filepath.Join(home, "not-a-dir")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		assert.Equal(t, home, paths.ResolveSaveDir(file))
	})

	t.Run("DesktopFromUserDirsFile", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DESKTOP_DIR", "")
		configHome := filepath.Join(home, ".config")
		t.Setenv("XDG_CONFIG_HOME", configHome)
		require.NoError(t, os.MkdirAll(configHome, 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(configHome, "user-dirs.dirs"),
			[]byte("# created by xdg-user-dirs-update\nXDG_DOWNLOAD_DIR=\"$HOME/Downloads\"\nXDG_DESKTOP_DIR=\"$HOME/Desktop\"\n"),
			0o644,
		))
		desktop := filepath.Join(home, "Desktop")
		require.NoError(t, os.Mkdir(desktop, 0o755))

		assert.Equal(t, desktop, paths.ResolveSaveDir(""))
	})

	t.Run("FallsBackToHome", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DESKTOP_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

		assert.Equal(t, home, paths.ResolveSaveDir(""))
	})
}

func TestFreedesktopDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	bin, err := paths.LocalBinDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "bin"), bin)

	apps, err := paths.ApplicationsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "applications"), apps)

	icons, err := paths.IconDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "icons", "hicolor", "scalable", "apps"), icons)

	data, err := paths.FlatpakUserDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".var", "app", "io.github.rafa.ScreenuxScreenshot"), data)
}
