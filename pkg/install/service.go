// Package install copies the application into the user's session: the
// binary, the desktop entry, the icons, the optional editor flatpak and the
// global shortcut. Every step is idempotent so re-running converges, and
// dry-run mode collects the plan without touching anything.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rafa/screenux-screenshot/pkg/desktop"
	"github.com/rafa/screenux-screenshot/pkg/logging"
)

// ActionType classifies a step for the summary screen.
type ActionType string

const (
	ActionWriteFile  ActionType = "write_file"
	ActionCopyFile   ActionType = "copy_file"
	ActionRemoveFile ActionType = "remove_file"
	ActionRemoveDir  ActionType = "remove_dir"
	ActionRunCommand ActionType = "run_command"
	ActionShortcut   ActionType = "shortcut"
)

// Action is a single step performed or simulated by the service.
type Action struct {
	Type        ActionType
	Description string
	Path        string
	Success     bool
	Error       error
}

// Service carries out the file and command work behind install and
// uninstall. It respects dry-run mode and keeps a log of actions for the
// summary.
type Service struct {
	dryRun  bool
	actions []Action
	runner  desktop.Runner
	logger  *logrus.Entry
}

// NewService creates an install service.
func NewService(dryRun bool) *Service {
	return NewServiceWithRunner(dryRun, desktop.ExecRunner)
}

// NewServiceWithRunner creates an install service driving the given runner.
func NewServiceWithRunner(dryRun bool, runner desktop.Runner) *Service {
	return &Service{
		dryRun: dryRun,
		runner: runner,
		logger: logging.NewLogger("install"),
	}
}

// IsDryRun returns whether the service is in dry-run mode.
func (s *Service) IsDryRun() bool {
	return s.dryRun
}

// Actions returns all actions performed or simulated.
func (s *Service) Actions() []Action {
	return s.actions
}

// Record notes a step the caller carried out through another component, so
// it shows up in the action summary.
func (s *Service) Record(actionType ActionType, description, path string, err error) {
	s.logAction(actionType, description, path, err == nil, err)
}

func (s *Service) logAction(actionType ActionType, description string, path string, success bool, err error) {
	s.actions = append(s.actions, Action{
		Type:        actionType,
		Description: description,
		Path:        path,
		Success:     success,
		Error:       err,
	})
}

// WriteFile writes content to a file, creating parent directories.
func (s *Service) WriteFile(path string, content []byte, perm os.FileMode) error {
	description := fmt.Sprintf("Write %s", AbbreviatePath(path))
	if s.dryRun {
		s.logger.Infof("[dry-run] Would write %s", path)
		s.logAction(ActionWriteFile, description, path, true, nil)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logAction(ActionWriteFile, description, path, false, err)
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, perm); err != nil {
		s.logAction(ActionWriteFile, description, path, false, err)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	s.logger.Infof("Wrote %s", path)
	s.logAction(ActionWriteFile, description, path, true, nil)
	return nil
}

// CopyFile copies src to dst through a temp file and rename, so replacing a
// running binary works.
func (s *Service) CopyFile(src, dst string, perm os.FileMode) error {
	description := fmt.Sprintf("Copy %s", AbbreviatePath(dst))
	if s.dryRun {
		s.logger.Infof("[dry-run] Would copy %s to %s", src, dst)
		s.logAction(ActionCopyFile, description, dst, true, nil)
		return nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+"-*")
	if err != nil {
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to stage %s: %w", dst, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to stage %s: %w", dst, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to stage %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to stage %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		s.logAction(ActionCopyFile, description, dst, false, err)
		return fmt.Errorf("failed to install %s: %w", dst, err)
	}

	s.logger.Infof("Copied %s to %s", src, dst)
	s.logAction(ActionCopyFile, description, dst, true, nil)
	return nil
}

// RemoveFile deletes a file. Absent files are a silent no-op so repeated
// uninstalls converge.
func (s *Service) RemoveFile(path string) error {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}
	description := fmt.Sprintf("Remove %s", AbbreviatePath(path))
	if s.dryRun {
		s.logger.Infof("[dry-run] Would remove %s", path)
		s.logAction(ActionRemoveFile, description, path, true, nil)
		return nil
	}

	if err := os.Remove(path); err != nil {
		s.logAction(ActionRemoveFile, description, path, false, err)
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	s.logger.Infof("Removed %s", path)
	s.logAction(ActionRemoveFile, description, path, true, nil)
	return nil
}

// RemoveAll deletes a directory tree. Absent directories are a silent no-op.
func (s *Service) RemoveAll(path string) error {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}
	description := fmt.Sprintf("Remove %s", AbbreviatePath(path))
	if s.dryRun {
		s.logger.Infof("[dry-run] Would remove %s", path)
		s.logAction(ActionRemoveDir, description, path, true, nil)
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		s.logAction(ActionRemoveDir, description, path, false, err)
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	s.logger.Infof("Removed %s", path)
	s.logAction(ActionRemoveDir, description, path, true, nil)
	return nil
}

// RunCommand executes a command, respecting dry-run mode.
func (s *Service) RunCommand(ctx context.Context, name string, args ...string) error {
	description := fmt.Sprintf("Run %s %s", name, strings.Join(args, " "))
	if s.dryRun {
		s.logger.Infof("[dry-run] Would run: %s %s", name, strings.Join(args, " "))
		s.logAction(ActionRunCommand, description, "", true, nil)
		return nil
	}

	if _, err := s.runner(ctx, name, args...); err != nil {
		s.logAction(ActionRunCommand, description, "", false, err)
		return fmt.Errorf("failed to run %s: %w", name, err)
	}

	s.logger.Infof("Ran: %s %s", name, strings.Join(args, " "))
	s.logAction(ActionRunCommand, description, "", true, nil)
	return nil
}

// AbbreviatePath replaces the home directory with ~ for display.
func AbbreviatePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
