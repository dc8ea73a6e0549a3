package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/capture"
	"github.com/rafa/screenux-screenshot/pkg/paths"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var (
	captureMode     string
	captureBackend  string
	captureCopyPath bool
	captureEdit     bool
	captureSaveDir  string
)

func init() {
	rootCmd.AddCommand(newCaptureCmd())
}

func newCaptureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Take a screenshot",
		Long: `Takes a screenshot with the first available backend and saves it into the
resolved save directory as Screenshot_<date>_<time>_<micro>.png.

Backends are tried in order: gnome-screenshot, grim, scrot, then the
in-process capturer. Window and area modes need one of the external tools.`,
		Example: `  # Full screen into the configured save directory
  screenux-screenshot capture

  # Interactive area selection, path on the clipboard
  screenux-screenshot capture --mode area --copy-path

  # Pin a backend and hand the file to the editor
  screenux-screenshot capture --backend grim --edit`,
		Args: cobra.NoArgs,
		RunE: runCapture,
	}

	cmd.Flags().StringVar(&captureMode, "mode", "full", "Capture mode: full, window or area")
	cmd.Flags().StringVar(&captureBackend, "backend", "", "Pin a capture backend instead of walking the chain")
	cmd.Flags().BoolVar(&captureCopyPath, "copy-path", false, "Copy the saved path to the clipboard")
	cmd.Flags().BoolVar(&captureEdit, "edit", false, "Open the screenshot in the companion editor")
	cmd.Flags().StringVar(&captureSaveDir, "save-dir", "", "Directory to save into (overrides the configured save_dir)")

	return cmd
}

func runCapture(cmd *cobra.Command, args []string) error {
	mode, err := capture.ParseMode(captureMode)
	if err != nil {
		return err
	}

	settings, prefs := loadRuntimeConfig()
	saveDir := captureSaveDir
	if saveDir == "" {
		saveDir = settings.SaveDir
	}
	if saveDir == "" {
		saveDir = prefs.SaveDir
	}
	pinned := captureBackend
	if pinned == "" {
		pinned = prefs.Capture.Backend
	}

	service := capture.NewService()
	result, err := service.Run(cmd.Context(), capture.Options{
		Mode:     mode,
		Backend:  pinned,
		SaveDir:  saveDir,
		CopyPath: captureCopyPath,
		Edit:     captureEdit,
	})
	if errors.Is(err, capture.ErrCanceled) {
		printWarning("Capture canceled.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(paths.FormatSaved(result.Path))
	if result.EditorLaunched {
		fmt.Println(theme.DefaultTheme.Muted.Render("Opened in editor."))
	}
	return nil
}
