// Package capture writes screenshots through a chain of backends: the GNOME
// screenshot tool first, then wayland and X11 fallbacks, then an in-process
// grab when no tool is installed.
package capture

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafa/screenux-screenshot/pkg/desktop"
)

// Mode selects what part of the screen gets captured.
type Mode string

const (
	ModeFull   Mode = "full"
	ModeWindow Mode = "window"
	ModeArea   Mode = "area"
)

// ParseMode maps user input onto a Mode. Empty input selects the full
// screen.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeFull:
		return ModeFull, nil
	case ModeWindow:
		return ModeWindow, nil
	case ModeArea:
		return ModeArea, nil
	}
	return "", fmt.Errorf("unknown capture mode %q (expected full, window or area)", value)
}

// Backend writes one screenshot to a file.
type Backend interface {
	Name() string
	Available() bool
	Supports(mode Mode) bool
	Capture(ctx context.Context, mode Mode, outPath string) error
}

// Chain returns the backends in preference order.
func Chain(runner desktop.Runner) []Backend {
	return []Backend{
		NewGnomeScreenshot(runner),
		NewGrim(runner),
		NewScrot(runner),
		NativeBackend{},
	}
}

// Names lists the backend names, for flag help and pin validation.
func Names(backends []Backend) []string {
	names := make([]string, 0, len(backends))
	for _, backend := range backends {
		names = append(names, backend.Name())
	}
	return names
}

// Select picks the backend for a run. A pin must name a known backend and be
// usable; without a pin the first available backend supporting the mode
// wins.
func Select(backends []Backend, pin string, mode Mode) (Backend, error) {
	if pin != "" {
		for _, backend := range backends {
			if backend.Name() != pin {
				continue
			}
			if !backend.Available() {
				return nil, fmt.Errorf("capture backend %s is not available", pin)
			}
			if !backend.Supports(mode) {
				return nil, fmt.Errorf("capture backend %s cannot capture mode %s", pin, mode)
			}
			return backend, nil
		}
		return nil, fmt.Errorf("unknown capture backend %q (known: %s)", pin, strings.Join(Names(backends), ", "))
	}
	for _, backend := range backends {
		if backend.Available() && backend.Supports(mode) {
			return backend, nil
		}
	}
	return nil, fmt.Errorf("no capture backend available for mode %s", mode)
}
