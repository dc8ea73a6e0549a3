// Package desktop probes the session environment: desktop flavor, GNOME
// Shell version and the availability of external tools.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// MinShellVersion is the oldest GNOME Shell the custom keybinding layout is
// known to work on. Older versions elicit a warning, not a refusal.
var MinShellVersion = semver.MustParse("40.0.0")

const probeTimeout = 3 * time.Second

var shellVersionPattern = regexp.MustCompile(`\d+(?:\.\d+)*`)

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// ExecRunner runs the command on the host.
func ExecRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// IsGNOME reports whether the session looks like GNOME, judged from
// XDG_CURRENT_DESKTOP and DESKTOP_SESSION.
func IsGNOME(getenv func(string) string) bool {
	desktop := strings.ToUpper(getenv("XDG_CURRENT_DESKTOP"))
	session := strings.ToUpper(getenv("DESKTOP_SESSION"))
	return strings.Contains(desktop, "GNOME") || strings.Contains(session, "GNOME")
}

// ShellVersion returns the running GNOME Shell version, parsed from
// "gnome-shell --version" output such as "GNOME Shell 46.2".
func ShellVersion(ctx context.Context, runner Runner) (*semver.Version, error) {
	if runner == nil {
		runner = ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	out, err := runner(ctx, "gnome-shell", "--version")
	if err != nil {
		return nil, fmt.Errorf("failed to query gnome-shell version: %w", err)
	}
	match := shellVersionPattern.FindString(out)
	if match == "" {
		return nil, fmt.Errorf("unrecognized gnome-shell version output %q", strings.TrimSpace(out))
	}
	version, err := semver.NewVersion(match)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gnome-shell version %q: %w", match, err)
	}
	return version, nil
}

// HasCommand reports whether an executable is on PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// FlatpakInstalled reports whether the flatpak app is installed for the
// current user.
func FlatpakInstalled(ctx context.Context, runner Runner, appID string) bool {
	if runner == nil {
		runner = ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	_, err := runner(ctx, "flatpak", "info", "--user", appID)
	return err == nil
}
