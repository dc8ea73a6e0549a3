package capture

import (
	"context"
	"fmt"

	"github.com/rafa/screenux-screenshot/pkg/desktop"
)

// ToolBackend shells out to an external screenshot tool. The args builder
// returns nil for modes the tool cannot serve.
type ToolBackend struct {
	name      string
	runner    desktop.Runner
	available func() bool
	args      func(mode Mode, outPath string) []string
}

// NewGnomeScreenshot returns the gnome-screenshot backend. It serves all
// modes through the -w and -a flags.
func NewGnomeScreenshot(runner desktop.Runner) *ToolBackend {
	return &ToolBackend{
		name:      "gnome-screenshot",
		runner:    runner,
		available: func() bool { return desktop.HasCommand("gnome-screenshot") },
		args: func(mode Mode, outPath string) []string {
			switch mode {
			case ModeFull:
				return []string{"-f", outPath}
			case ModeWindow:
				return []string{"-w", "-f", outPath}
			case ModeArea:
				return []string{"-a", "-f", outPath}
			}
			return nil
		},
	}
}

// NewGrim returns the grim backend for wayland sessions. grim has no window
// or region picker of its own, so it only serves full-screen grabs.
func NewGrim(runner desktop.Runner) *ToolBackend {
	return &ToolBackend{
		name:      "grim",
		runner:    runner,
		available: func() bool { return desktop.HasCommand("grim") },
		args: func(mode Mode, outPath string) []string {
			if mode == ModeFull {
				return []string{outPath}
			}
			return nil
		},
	}
}

// NewScrot returns the scrot backend for X11 sessions. -u grabs the focused
// window, -s lets the user drag a region.
func NewScrot(runner desktop.Runner) *ToolBackend {
	return &ToolBackend{
		name:      "scrot",
		runner:    runner,
		available: func() bool { return desktop.HasCommand("scrot") },
		args: func(mode Mode, outPath string) []string {
			switch mode {
			case ModeFull:
				return []string{outPath}
			case ModeWindow:
				return []string{"-u", outPath}
			case ModeArea:
				return []string{"-s", outPath}
			}
			return nil
		},
	}
}

func (b *ToolBackend) Name() string { return b.name }

func (b *ToolBackend) Available() bool { return b.available() }

func (b *ToolBackend) Supports(mode Mode) bool { return b.args(mode, "") != nil }

// Capture runs the tool and waits for it to exit. Interactive modes block
// until the user picks a window or region, so the context carries no
// timeout of its own.
func (b *ToolBackend) Capture(ctx context.Context, mode Mode, outPath string) error {
	args := b.args(mode, outPath)
	if args == nil {
		return fmt.Errorf("%s cannot capture mode %s", b.name, mode)
	}
	if _, err := b.runner(ctx, b.name, args...); err != nil {
		return fmt.Errorf("%s failed: %w", b.name, err)
	}
	return nil
}
