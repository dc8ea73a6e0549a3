package capture

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/kbinani/screenshot"
)

// NativeBackend grabs the primary display in-process. It is the last resort
// when no capture tool is installed and only does full-screen grabs.
type NativeBackend struct{}

func (NativeBackend) Name() string { return "native" }

func (NativeBackend) Available() bool { return screenshot.NumActiveDisplays() > 0 }

func (NativeBackend) Supports(mode Mode) bool { return mode == ModeFull }

func (NativeBackend) Capture(_ context.Context, mode Mode, outPath string) error {
	if mode != ModeFull {
		return fmt.Errorf("native backend only captures the full screen")
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return fmt.Errorf("failed to grab display 0: %w", err)
	}
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return file.Close()
}
