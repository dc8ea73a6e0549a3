package capture_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafa/screenux-screenshot/pkg/capture"
	"github.com/rafa/screenux-screenshot/pkg/desktop"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  capture.Mode
	}{
		{"EmptyDefaultsToFull", "", capture.ModeFull},
		{"Full", "full", capture.ModeFull},
		{"UppercaseWithSpaces", " FULL ", capture.ModeFull},
		{"Window", "window", capture.ModeWindow},
		{"Area", "area", capture.ModeArea},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := capture.ParseMode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, mode)
		})
	}

	t.Run("UnknownModeErrors", func(t *testing.T) {
		_, err := capture.ParseMode("screen")
		assert.ErrorContains(t, err, "unknown capture mode")
	})
}

func TestSelect(t *testing.T) {
	t.Run("FirstAvailableSupportingWins", func(t *testing.T) {
		first := &fakeBackend{name: "first", available: false, modes: allModes()}
		second := &fakeBackend{name: "second", available: true, modes: allModes()}
		picked, err := capture.Select([]capture.Backend{first, second}, "", capture.ModeFull)
		require.NoError(t, err)
		assert.Equal(t, "second", picked.Name())
	})

	t.Run("SkipsBackendsWithoutTheMode", func(t *testing.T) {
		fullOnly := &fakeBackend{name: "full-only", available: true, modes: map[capture.Mode]bool{capture.ModeFull: true}}
		all := &fakeBackend{name: "all", available: true, modes: allModes()}
		picked, err := capture.Select([]capture.Backend{fullOnly, all}, "", capture.ModeArea)
		require.NoError(t, err)
		assert.Equal(t, "all", picked.Name())
	})

	t.Run("PinnedBackendWins", func(t *testing.T) {
		first := &fakeBackend{name: "first", available: true, modes: allModes()}
		second := &fakeBackend{name: "second", available: true, modes: allModes()}
		picked, err := capture.Select([]capture.Backend{first, second}, "second", capture.ModeFull)
		require.NoError(t, err)
		assert.Equal(t, "second", picked.Name())
	})

	t.Run("PinnedButUnavailableErrors", func(t *testing.T) {
		pinned := &fakeBackend{name: "pinned", available: false, modes: allModes()}
		_, err := capture.Select([]capture.Backend{pinned}, "pinned", capture.ModeFull)
		assert.ErrorContains(t, err, "not available")
	})

	t.Run("PinnedWithoutModeErrors", func(t *testing.T) {
		pinned := &fakeBackend{name: "pinned", available: true, modes: map[capture.Mode]bool{capture.ModeFull: true}}
		_, err := capture.Select([]capture.Backend{pinned}, "pinned", capture.ModeArea)
		assert.ErrorContains(t, err, "cannot capture mode area")
	})

	t.Run("UnknownPinListsKnownNames", func(t *testing.T) {
		known := &fakeBackend{name: "known", available: true, modes: allModes()}
		_, err := capture.Select([]capture.Backend{known}, "imaginary", capture.ModeFull)
		require.Error(t, err)
		assert.ErrorContains(t, err, "unknown capture backend")
		assert.ErrorContains(t, err, "known")
	})

	t.Run("NothingUsableErrors", func(t *testing.T) {
		offline := &fakeBackend{name: "offline", available: false, modes: allModes()}
		_, err := capture.Select([]capture.Backend{offline}, "", capture.ModeFull)
		assert.ErrorContains(t, err, "no capture backend available")
	})
}

func TestToolBackends(t *testing.T) {
	t.Run("GnomeScreenshotArgs", func(t *testing.T) {
		var calls [][]string
		backend := capture.NewGnomeScreenshot(recordingRunner(&calls, nil))

		require.NoError(t, backend.Capture(context.Background(), capture.ModeFull, "/tmp/out.png"))
		require.NoError(t, backend.Capture(context.Background(), capture.ModeWindow, "/tmp/out.png"))
		require.NoError(t, backend.Capture(context.Background(), capture.ModeArea, "/tmp/out.png"))

		require.Len(t, calls, 3)
		assert.Equal(t, []string{"gnome-screenshot", "-f", "/tmp/out.png"}, calls[0])
		assert.Equal(t, []string{"gnome-screenshot", "-w", "-f", "/tmp/out.png"}, calls[1])
		assert.Equal(t, []string{"gnome-screenshot", "-a", "-f", "/tmp/out.png"}, calls[2])
	})

	t.Run("GrimOnlyCapturesFullScreen", func(t *testing.T) {
		var calls [][]string
		backend := capture.NewGrim(recordingRunner(&calls, nil))

		assert.True(t, backend.Supports(capture.ModeFull))
		assert.False(t, backend.Supports(capture.ModeWindow))
		assert.False(t, backend.Supports(capture.ModeArea))

		require.NoError(t, backend.Capture(context.Background(), capture.ModeFull, "/tmp/out.png"))
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"grim", "/tmp/out.png"}, calls[0])

		err := backend.Capture(context.Background(), capture.ModeArea, "/tmp/out.png")
		assert.ErrorContains(t, err, "cannot capture mode area")
	})

	t.Run("ScrotArgs", func(t *testing.T) {
		var calls [][]string
		backend := capture.NewScrot(recordingRunner(&calls, nil))

		require.NoError(t, backend.Capture(context.Background(), capture.ModeFull, "/tmp/out.png"))
		require.NoError(t, backend.Capture(context.Background(), capture.ModeWindow, "/tmp/out.png"))
		require.NoError(t, backend.Capture(context.Background(), capture.ModeArea, "/tmp/out.png"))

		require.Len(t, calls, 3)
		assert.Equal(t, []string{"scrot", "/tmp/out.png"}, calls[0])
		assert.Equal(t, []string{"scrot", "-u", "/tmp/out.png"}, calls[1])
		assert.Equal(t, []string{"scrot", "-s", "/tmp/out.png"}, calls[2])
	})

	t.Run("ToolFailureIsWrapped", func(t *testing.T) {
		var calls [][]string
		backend := capture.NewScrot(recordingRunner(&calls, fmt.Errorf("exit status 2")))
		err := backend.Capture(context.Background(), capture.ModeFull, "/tmp/out.png")
		require.Error(t, err)
		assert.ErrorContains(t, err, "scrot failed")
	})
}

func TestNativeBackend(t *testing.T) {
	backend := capture.NativeBackend{}
	assert.Equal(t, "native", backend.Name())
	assert.True(t, backend.Supports(capture.ModeFull))
	assert.False(t, backend.Supports(capture.ModeWindow))
	assert.False(t, backend.Supports(capture.ModeArea))

	err := backend.Capture(context.Background(), capture.ModeArea, "/tmp/out.png")
	assert.ErrorContains(t, err, "full screen")
}

func TestServiceRun(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 15, 4, 5, 123456000, time.UTC)

	t.Run("WritesTimestampedFileIntoSaveDir", func(t *testing.T) {
		saveDir := t.TempDir()
		backend := writingBackend("tool")
		service := &capture.Service{
			Backends: []capture.Backend{backend},
			Now:      func() time.Time { return fixed },
		}

		result, err := service.Run(context.Background(), capture.Options{SaveDir: saveDir})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(saveDir, "Screenshot_20260102_150405_123456.png"), result.Path)
		assert.Equal(t, "tool", result.Backend)
		assert.FileExists(t, result.Path)
		assert.Equal(t, capture.ModeFull, backend.lastMode)
	})

	t.Run("PinnedBackendIsUsed", func(t *testing.T) {
		first := writingBackend("first")
		second := writingBackend("second")
		service := &capture.Service{
			Backends: []capture.Backend{first, second},
			Now:      func() time.Time { return fixed },
		}

		result, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir(), Backend: "second"})
		require.NoError(t, err)
		assert.Equal(t, "second", result.Backend)
		assert.Empty(t, first.lastMode)
	})

	t.Run("MissingFileMeansCanceled", func(t *testing.T) {
		silent := &fakeBackend{name: "silent", available: true, modes: allModes()}
		service := &capture.Service{
			Backends: []capture.Backend{silent},
			Now:      func() time.Time { return fixed },
		}

		_, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir()})
		assert.ErrorIs(t, err, capture.ErrCanceled)
	})

	t.Run("BackendFailurePropagates", func(t *testing.T) {
		broken := &fakeBackend{
			name:      "broken",
			available: true,
			modes:     allModes(),
			capture: func(context.Context, capture.Mode, string) error {
				return fmt.Errorf("display gone")
			},
		}
		service := &capture.Service{
			Backends: []capture.Backend{broken},
			Now:      func() time.Time { return fixed },
		}

		_, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir()})
		assert.ErrorContains(t, err, "display gone")
	})

	t.Run("CopyPathPutsPathOnClipboard", func(t *testing.T) {
		var copied string
		service := &capture.Service{
			Backends:  []capture.Backend{writingBackend("tool")},
			Clipboard: func(text string) error { copied = text; return nil },
			Now:       func() time.Time { return fixed },
		}

		result, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir(), CopyPath: true})
		require.NoError(t, err)
		assert.True(t, result.PathCopied)
		assert.Equal(t, result.Path, copied)
	})

	t.Run("ClipboardFailureIsSoft", func(t *testing.T) {
		service := &capture.Service{
			Backends:  []capture.Backend{writingBackend("tool")},
			Clipboard: func(string) error { return fmt.Errorf("no clipboard on this session") },
			Now:       func() time.Time { return fixed },
		}

		result, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir(), CopyPath: true})
		require.NoError(t, err)
		assert.False(t, result.PathCopied)
		assert.FileExists(t, result.Path)
	})

	t.Run("EditHandsFileToEditor", func(t *testing.T) {
		var opened string
		service := &capture.Service{
			Backends: []capture.Backend{writingBackend("tool")},
			Editor:   func(_ context.Context, path string) error { opened = path; return nil },
			Now:      func() time.Time { return fixed },
		}

		result, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir(), Edit: true})
		require.NoError(t, err)
		assert.True(t, result.EditorLaunched)
		assert.Equal(t, result.Path, opened)
	})

	t.Run("EditorFailureIsSoft", func(t *testing.T) {
		service := &capture.Service{
			Backends: []capture.Backend{writingBackend("tool")},
			Editor:   func(context.Context, string) error { return fmt.Errorf("flatpak not installed") },
			Now:      func() time.Time { return fixed },
		}

		result, err := service.Run(context.Background(), capture.Options{SaveDir: t.TempDir(), Edit: true})
		require.NoError(t, err)
		assert.False(t, result.EditorLaunched)
	})
}

type fakeBackend struct {
	name      string
	available bool
	modes     map[capture.Mode]bool
	capture   func(ctx context.Context, mode capture.Mode, outPath string) error
	lastMode  capture.Mode
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Available() bool { return b.available }

func (b *fakeBackend) Supports(mode capture.Mode) bool { return b.modes[mode] }

func (b *fakeBackend) Capture(ctx context.Context, mode capture.Mode, outPath string) error {
	b.lastMode = mode
	if b.capture != nil {
		return b.capture(ctx, mode, outPath)
	}
	return nil
}

func writingBackend(name string) *fakeBackend {
	return &fakeBackend{
		name:      name,
		available: true,
		modes:     allModes(),
		capture: func(_ context.Context, _ capture.Mode, outPath string) error {
			return os.WriteFile(outPath, []byte("png"), 0o644)
		},
	}
}

func allModes() map[capture.Mode]bool {
	return map[capture.Mode]bool{
		capture.ModeFull:   true,
		capture.ModeWindow: true,
		capture.ModeArea:   true,
	}
}

func recordingRunner(calls *[][]string, err error) desktop.Runner {
	return func(ctx context.Context, name string, args ...string) (string, error) {
		*calls = append(*calls, append([]string{name}, args...))
		return "", err
	}
}
