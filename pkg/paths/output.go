package paths

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// OutputFileName builds the timestamped screenshot name, for example
// Screenshot_20260821_153012_042137.png. The extension is taken from the
// source URI and defaults to .png.
func OutputFileName(sourceURI string, now time.Time) string {
	stamp := now.Format("20060102_150405")
	return fmt.Sprintf("Screenshot_%s_%06d%s", stamp, now.Nanosecond()/1000, extensionFromURI(sourceURI))
}

// BuildOutputPath joins the save directory with a fresh output name.
func BuildOutputPath(saveDir, sourceURI string, now time.Time) string {
	return filepath.Join(saveDir, OutputFileName(sourceURI, now))
}

// FormatSaved renders the status line printed after a successful save.
func FormatSaved(path string) string {
	return "Saved: " + path
}

func extensionFromURI(sourceURI string) string {
	parsed, err := url.Parse(sourceURI)
	if err != nil {
		return ".png"
	}
	ext := strings.ToLower(filepath.Ext(parsed.Path))
	if ext == "" || ext == "." {
		return ".png"
	}
	return ext
}

// URIToLocalPath validates a portal-supplied file URI and returns the
// resolved local path. The URI must use the file scheme with an empty or
// localhost host, carry an absolute path, and point at a readable regular
// file.
func URIToLocalPath(sourceURI string) (string, error) {
	parsed, err := url.Parse(sourceURI)
	if err != nil {
		return "", fmt.Errorf("invalid uri: %w", err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q", parsed.Scheme)
	}
	if parsed.Host != "" && parsed.Host != "localhost" {
		return "", fmt.Errorf("unsupported uri host %q", parsed.Host)
	}
	if parsed.Path == "" {
		return "", fmt.Errorf("uri carries no path")
	}
	if !filepath.IsAbs(parsed.Path) {
		return "", fmt.Errorf("uri path %q is not absolute", parsed.Path)
	}

	resolved, err := filepath.EvalSymlinks(parsed.Path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", parsed.Path, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", resolved, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", resolved)
	}
	if err := unix.Access(resolved, unix.R_OK); err != nil {
		return "", fmt.Errorf("%q is not readable: %w", resolved, err)
	}
	return resolved, nil
}
