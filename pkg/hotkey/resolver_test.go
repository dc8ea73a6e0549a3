package hotkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafa/screenux-screenshot/pkg/hotkey"
)

func TestCandidateChain(t *testing.T) {
	t.Run("PreferredFirstThenDefaultThenFallbacks", func(t *testing.T) {
		chain := hotkey.CandidateChain("Ctrl+P")
		assert.Equal(t, []string{"Ctrl+P", "Ctrl+Shift+S", "Ctrl+Alt+S", "Alt+Shift+S", "Super+Shift+S"}, chain)
	})

	t.Run("DeduplicatesPreferredDefault", func(t *testing.T) {
		chain := hotkey.CandidateChain(hotkey.DefaultShortcut)
		assert.Equal(t, []string{"Ctrl+Shift+S", "Ctrl+Alt+S", "Alt+Shift+S", "Super+Shift+S"}, chain)
	})

	t.Run("DeduplicatesPreferredFallback", func(t *testing.T) {
		chain := hotkey.CandidateChain("Alt+Shift+S")
		assert.Equal(t, []string{"Alt+Shift+S", "Ctrl+Shift+S", "Ctrl+Alt+S", "Super+Shift+S"}, chain)
	})
}

func TestResolveWithFallback(t *testing.T) {
	taken := func(combos ...string) func(string) bool {
		set := make(map[string]struct{}, len(combos))
		for _, combo := range combos {
			set[combo] = struct{}{}
		}
		return func(candidate string) bool {
			_, ok := set[candidate]
			return ok
		}
	}

	t.Run("PreferredFreeNoWarning", func(t *testing.T) {
		resolved, warning, err := hotkey.ResolveWithFallback("ctrl+p", taken())
		require.NoError(t, err)
		assert.Equal(t, "Ctrl+P", resolved)
		assert.Empty(t, warning)
	})

	t.Run("TakenPreferredFallsBackToDefault", func(t *testing.T) {
		resolved, warning, err := hotkey.ResolveWithFallback("Ctrl+P", taken("Ctrl+P"))
		require.NoError(t, err)
		assert.Equal(t, "Ctrl+Shift+S", resolved)
		assert.Equal(t, "Shortcut Ctrl+P is in use. Using Ctrl+Shift+S.", warning)
	})

	t.Run("WalksWholeChain", func(t *testing.T) {
		resolved, warning, err := hotkey.ResolveWithFallback("Ctrl+P", taken("Ctrl+P", "Ctrl+Shift+S", "Ctrl+Alt+S", "Alt+Shift+S"))
		require.NoError(t, err)
		assert.Equal(t, "Super+Shift+S", resolved)
		assert.Contains(t, warning, "Ctrl+P")
		assert.Contains(t, warning, "Super+Shift+S")
	})

	t.Run("AllTakenDisables", func(t *testing.T) {
		resolved, warning, err := hotkey.ResolveWithFallback("Ctrl+Shift+S", taken("Ctrl+Shift+S", "Ctrl+Alt+S", "Alt+Shift+S", "Super+Shift+S"))
		require.NoError(t, err)
		assert.Empty(t, resolved)
		assert.Equal(t, hotkey.WarnNoCandidate, warning)
	})

	t.Run("InvalidPreferredErrors", func(t *testing.T) {
		_, _, err := hotkey.ResolveWithFallback("Ctrl+", taken())
		assert.Error(t, err)
	})
}
