package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/desktop"
	"github.com/rafa/screenux-screenshot/pkg/logging"
	"github.com/rafa/screenux-screenshot/pkg/paths"
)

// ErrCanceled reports that the tool exited cleanly without writing a file,
// which is how the interactive selectors signal a dismissed capture.
var ErrCanceled = errors.New("capture canceled")

// Options configures one capture run.
type Options struct {
	Mode Mode

	// Backend pins a backend by name; empty walks the chain.
	Backend string

	// SaveDir is the configured target directory. It goes through the
	// regular save dir resolution, so a missing or unwritable value falls
	// back to the desktop directory.
	SaveDir string

	CopyPath bool
	Edit     bool
}

// Result reports where the screenshot landed and which post-capture actions
// ran.
type Result struct {
	Path           string
	Backend        string
	PathCopied     bool
	EditorLaunched bool
}

// Service runs the capture pipeline: pick a backend, write the screenshot,
// then apply the post-capture actions. Clipboard and editor failures are
// warnings; the screenshot is already on disk.
type Service struct {
	Backends  []Backend
	Clipboard func(text string) error
	Editor    func(ctx context.Context, path string) error
	Now       func() time.Time

	logger *logrus.Entry
}

// NewService returns a Service wired to the host: the real backend chain,
// the system clipboard and the flatpak editor.
func NewService() *Service {
	return &Service{
		Backends:  Chain(desktop.ExecRunner),
		Clipboard: clipboard.WriteAll,
		Editor:    LaunchEditor,
		Now:       time.Now,
	}
}

// Run captures one screenshot.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeFull
	}
	backend, err := Select(s.Backends, opts.Backend, mode)
	if err != nil {
		return nil, err
	}

	outPath := paths.BuildOutputPath(paths.ResolveSaveDir(opts.SaveDir), "", s.now()())
	s.log().WithFields(logrus.Fields{
		"backend": backend.Name(),
		"mode":    string(mode),
		"path":    outPath,
	}).Debug("starting capture")

	if err := backend.Capture(ctx, mode, outPath); err != nil {
		return nil, err
	}
	if _, err := os.Stat(outPath); err != nil {
		return nil, ErrCanceled
	}

	result := &Result{Path: outPath, Backend: backend.Name()}
	if opts.CopyPath {
		if err := s.clipboard()(outPath); err != nil {
			s.log().WithError(err).Warn("could not copy path to clipboard")
		} else {
			result.PathCopied = true
		}
	}
	if opts.Edit {
		if err := s.editor()(ctx, outPath); err != nil {
			s.log().WithError(err).Warn("could not hand off to editor")
		} else {
			result.EditorLaunched = true
		}
	}
	return result, nil
}

// LaunchEditor opens the file in the companion editor flatpak and leaves it
// running.
func LaunchEditor(ctx context.Context, path string) error {
	if !desktop.FlatpakInstalled(ctx, nil, app.ID) {
		return fmt.Errorf("editor %s is not installed", app.ID)
	}
	cmd := exec.Command("flatpak", "run", app.ID, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch editor: %w", err)
	}
	return cmd.Process.Release()
}

func (s *Service) clipboard() func(string) error {
	if s.Clipboard != nil {
		return s.Clipboard
	}
	return clipboard.WriteAll
}

func (s *Service) editor() func(context.Context, string) error {
	if s.Editor != nil {
		return s.Editor
	}
	return LaunchEditor
}

func (s *Service) now() func() time.Time {
	if s.Now != nil {
		return s.Now
	}
	return time.Now
}

func (s *Service) log() *logrus.Entry {
	if s.logger == nil {
		s.logger = logging.NewLogger("capture")
	}
	return s.logger
}
