package gsettings_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafa/screenux-screenshot/pkg/gsettings"
)

type scriptedResponse struct {
	out string
	err error
}

// scriptRunner answers scripted commands and fails any other invocation the
// way a broken tool would.
func scriptRunner(script map[string]scriptedResponse, calls *[][]string) gsettings.Runner {
	return func(ctx context.Context, name string, args ...string) (string, error) {
		argv := append([]string{name}, args...)
		if calls != nil {
			*calls = append(*calls, argv)
		}
		resp, ok := script[strings.Join(argv, " ")]
		if !ok {
			return "", fmt.Errorf("command failed: %s", strings.Join(argv, " "))
		}
		return resp.out, resp.err
	}
}

func TestCLIAvailable(t *testing.T) {
	t.Run("ToolPresent", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{
			"gsettings --version": {out: "2.76.0\n"},
		}, nil))
		assert.True(t, store.Available())
	})

	t.Run("ToolMissing", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{}, nil))
		assert.False(t, store.Available())
	})

	t.Run("ResultIsCached", func(t *testing.T) {
		var calls [][]string
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{
			"gsettings --version": {out: "2.76.0\n"},
		}, &calls))
		store.Available()
		store.Available()
		assert.Len(t, calls, 1)
	})
}

func TestCLISchemaExists(t *testing.T) {
	script := map[string]scriptedResponse{
		"gsettings list-schemas": {out: "org.gnome.shell.keybindings\norg.gnome.settings-daemon.plugins.media-keys\n"},
	}

	t.Run("Installed", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(script, nil))
		assert.True(t, store.SchemaExists("org.gnome.shell.keybindings"))
	})

	t.Run("NotInstalled", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(script, nil))
		assert.False(t, store.SchemaExists("org.kde.kglobalaccel"))
	})

	t.Run("ListingFailure", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{}, nil))
		assert.False(t, store.SchemaExists("org.gnome.shell.keybindings"))
	})
}

func TestCLIKeyExists(t *testing.T) {
	script := map[string]scriptedResponse{
		"gsettings list-schemas": {out: "org.gnome.shell.keybindings\n"},
		"gsettings list-keys org.gnome.shell.keybindings": {out: "show-screenshot-ui\nscreenshot\n"},
	}

	t.Run("Declared", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(script, nil))
		assert.True(t, store.KeyExists("org.gnome.shell.keybindings", "show-screenshot-ui"))
	})

	t.Run("Undeclared", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(script, nil))
		assert.False(t, store.KeyExists("org.gnome.shell.keybindings", "show-screenshot"))
	})

	t.Run("SchemaMissing", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(script, nil))
		assert.False(t, store.KeyExists("org.gnome.mutter", "anything"))
	})
}

func TestCLIGetSetReset(t *testing.T) {
	t.Run("GetTrimsOutput", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{
			"gsettings get s k": {out: "'value'\n"},
		}, nil))
		value, err := store.Get("s", "k")
		require.NoError(t, err)
		assert.Equal(t, "'value'", value)
	})

	t.Run("GetFailureIsNotFound", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{}, nil))
		_, err := store.Get("s", "k")
		var notFound *gsettings.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "s", notFound.Schema)
		assert.Equal(t, "k", notFound.Key)
	})

	t.Run("SetPassesValueVerbatim", func(t *testing.T) {
		var calls [][]string
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{
			"gsettings set s k ['Print']": {},
		}, &calls))
		require.NoError(t, store.Set("s", "k", "['Print']"))
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"gsettings", "set", "s", "k", "['Print']"}, calls[0])
	})

	t.Run("SetRejectionIsWriteError", func(t *testing.T) {
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{
			"gsettings set s k v": {err: errors.New("permission denied")},
		}, nil))
		err := store.Set("s", "k", "v")
		var writeErr *gsettings.WriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "k", writeErr.Key)
	})

	t.Run("ResetIssuesResetCommand", func(t *testing.T) {
		var calls [][]string
		store := gsettings.NewCLIWithRunner(scriptRunner(map[string]scriptedResponse{
			"gsettings reset s k": {},
		}, &calls))
		require.NoError(t, store.Reset("s", "k"))
		assert.Equal(t, []string{"gsettings", "reset", "s", "k"}, calls[0])
	})
}
