package install

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/config"
	"github.com/rafa/screenux-screenshot/pkg/desktop"
	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/logging"
	"github.com/rafa/screenux-screenshot/pkg/paths"
)

//go:embed assets/icon.svg
var iconBase []byte

//go:embed assets/icon-light.svg
var iconLight []byte

//go:embed assets/icon-dark.svg
var iconDark []byte

var desktopEntryTemplate = template.Must(template.New("desktop-entry").Parse(`[Desktop Entry]
Type=Application
Name={{.Name}}
Comment={{.Comment}}
Exec={{.Exec}}
Icon={{.Icon}}
Terminal=false
Categories=Utility;Graphics;
`))

// Options configures an install run.
type Options struct {
	// Bundle is a local flatpak bundle for the companion editor.
	Bundle string

	// Shortcut is an explicit accelerator to register. PrintScreen is a
	// shorthand for the Print key; NoShortcut skips registration.
	Shortcut    string
	NoShortcut  bool
	PrintScreen bool

	DryRun bool
}

// UninstallOptions configures an uninstall run.
type UninstallOptions struct {
	PreserveUserData bool
	DryRun           bool
}

// Installer wires the install and uninstall flows to the host. Every
// dependency can be swapped for tests.
type Installer struct {
	Store      gsettings.Store
	Runner     desktop.Runner
	Getenv     func(string) string
	Executable func() (string, error)

	logger *logrus.Entry
}

// NewInstaller returns an installer bound to the host.
func NewInstaller() *Installer {
	return &Installer{
		Store:      gsettings.NewCLI(),
		Runner:     desktop.ExecRunner,
		Getenv:     os.Getenv,
		Executable: os.Executable,
	}
}

// Run performs the install steps in order: environment check, binary,
// desktop entry, icons, editor bundle, global shortcut, cache refresh. The
// returned actions describe what happened, also in dry-run mode.
func (i *Installer) Run(ctx context.Context, opts Options) ([]Action, error) {
	service := NewServiceWithRunner(opts.DryRun, i.runner())

	i.checkEnvironment(ctx)

	binPath, err := i.installBinary(service)
	if err != nil {
		return service.Actions(), err
	}
	if err := i.installDesktopEntry(service, binPath); err != nil {
		return service.Actions(), err
	}
	if err := i.installIcons(service); err != nil {
		return service.Actions(), err
	}
	if err := i.installBundle(ctx, service, opts.Bundle); err != nil {
		return service.Actions(), err
	}
	if err := i.registerShortcut(service, opts); err != nil {
		return service.Actions(), err
	}
	i.refreshCaches(ctx, service)

	return service.Actions(), nil
}

// checkEnvironment warns about hosts where the desktop pieces will not
// work. Nothing here blocks the install.
func (i *Installer) checkEnvironment(ctx context.Context) {
	if !desktop.IsGNOME(i.getenv()) {
		i.log().Warn("this does not look like a GNOME session; the global shortcut and desktop entry may not work")
		return
	}
	version, err := desktop.ShellVersion(ctx, i.runner())
	if err != nil {
		i.log().WithError(err).Debug("could not determine gnome-shell version")
		return
	}
	if version.LessThan(desktop.MinShellVersion) {
		i.log().Warnf("GNOME Shell %s is older than %s; custom keybindings may misbehave", version, desktop.MinShellVersion)
	}
}

// installBinary copies the running executable into ~/.local/bin. Running
// from the installed location already is a no-op.
func (i *Installer) installBinary(service *Service) (string, error) {
	binDir, err := paths.LocalBinDir()
	if err != nil {
		return "", err
	}
	target := filepath.Join(binDir, app.BinaryName)

	current, err := i.executable()()
	if err != nil {
		return "", fmt.Errorf("failed to locate the running executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(current); err == nil {
		current = resolved
	}
	if current == target {
		i.log().Debugf("already running from %s", target)
		return target, nil
	}
	if err := service.CopyFile(current, target, 0o755); err != nil {
		return "", err
	}
	return target, nil
}

func (i *Installer) installDesktopEntry(service *Service, binPath string) error {
	appsDir, err := paths.ApplicationsDir()
	if err != nil {
		return err
	}
	var rendered bytes.Buffer
	err = desktopEntryTemplate.Execute(&rendered, struct {
		Name    string
		Comment string
		Exec    string
		Icon    string
	}{
		Name:    app.DisplayName,
		Comment: "Capture and annotate screenshots",
		Exec:    binPath + " capture",
		Icon:    app.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to render desktop entry: %w", err)
	}
	return service.WriteFile(filepath.Join(appsDir, app.ID+".desktop"), rendered.Bytes(), 0o644)
}

func (i *Installer) installIcons(service *Service) error {
	iconDir, err := paths.IconDir()
	if err != nil {
		return err
	}
	icons := []struct {
		name string
		data []byte
	}{
		{app.ID + ".svg", iconBase},
		{app.ID + "-light.svg", iconLight},
		{app.ID + "-dark.svg", iconDark},
	}
	for _, icon := range icons {
		if err := service.WriteFile(filepath.Join(iconDir, icon.name), icon.data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// installBundle installs the companion editor from a local flatpak bundle.
// Without a bundle the step is skipped; --or-update makes re-installs
// converge.
func (i *Installer) installBundle(ctx context.Context, service *Service, bundle string) error {
	if bundle == "" {
		if !desktop.FlatpakInstalled(ctx, i.runner(), app.ID) {
			i.log().Infof("no editor bundle given and %s is not installed; capture --edit will be unavailable", app.ID)
		}
		return nil
	}
	if _, err := os.Stat(bundle); err != nil {
		return fmt.Errorf("editor bundle %s: %w", bundle, err)
	}
	return service.RunCommand(ctx, "flatpak", "install", "-y", "--user", "--or-update", bundle)
}

func (i *Installer) registerShortcut(service *Service, opts Options) error {
	if opts.NoShortcut {
		i.log().Debug("shortcut registration disabled by flag")
		return nil
	}
	shortcut := opts.Shortcut
	if opts.PrintScreen {
		shortcut = "Print"
	}

	description := "Register global shortcut"
	if shortcut != "" {
		description = fmt.Sprintf("Register global shortcut %s", shortcut)
	}
	if service.IsDryRun() {
		i.log().Infof("[dry-run] Would register the global shortcut")
		service.Record(ActionShortcut, description, "", nil)
		return nil
	}

	settingsPath, err := paths.SettingsPath()
	if err != nil {
		return err
	}
	manager := i.newManager(settingsPath)
	var result hotkey.RegistrationResult
	if shortcut != "" {
		result, err = manager.Apply(shortcut)
	} else {
		result, err = manager.EnsureRegistered()
	}
	if err != nil {
		service.Record(ActionShortcut, description, "", err)
		return err
	}
	if result.Warning != "" {
		i.log().Warn(result.Warning)
	}
	if opts.PrintScreen && result.Shortcut != "" {
		// Print takeover silences the whole native screenshot set, not
		// only the keys that held Print.
		err := hotkey.NewReconciler(i.store(), hotkey.DefaultIdentity()).DisableNativeBindings()
		if err != nil && !errors.Is(err, gsettings.ErrUnavailable) {
			service.Record(ActionShortcut, description, "", err)
			return err
		}
	}
	if result.Shortcut != "" {
		description = fmt.Sprintf("Register global shortcut %s", result.Shortcut)
	}
	service.Record(ActionShortcut, description, "", nil)
	return nil
}

// refreshCaches asks the desktop to pick up the new entry and icons. Both
// tools are optional and failures are warnings.
func (i *Installer) refreshCaches(ctx context.Context, service *Service) {
	if appsDir, err := paths.ApplicationsDir(); err == nil && desktop.HasCommand("update-desktop-database") {
		if err := service.RunCommand(ctx, "update-desktop-database", appsDir); err != nil {
			i.log().WithError(err).Warn("could not refresh the desktop entry cache")
		}
	}
	if themeDir, err := paths.HicolorDir(); err == nil && desktop.HasCommand("gtk-update-icon-cache") {
		if err := service.RunCommand(ctx, "gtk-update-icon-cache", "-f", "-t", themeDir); err != nil {
			i.log().WithError(err).Warn("could not refresh the icon cache")
		}
	}
}

// newManager builds a hotkey manager carrying the user's preferences file
// defaults.
func (i *Installer) newManager(settingsPath string) *hotkey.Manager {
	manager := hotkey.NewManager(i.store(), settingsPath)
	manager.Getenv = i.getenv()
	if prefsPath, err := paths.PreferencesPath(); err == nil {
		if prefs, err := config.LoadPreferences(prefsPath); err == nil {
			manager.DefaultPreference = prefs.Shortcut
			manager.ExtraFallbacks = prefs.ExtraFallbacks
		}
	}
	return manager
}

func (i *Installer) store() gsettings.Store {
	if i.Store != nil {
		return i.Store
	}
	return gsettings.NewCLI()
}

func (i *Installer) runner() desktop.Runner {
	if i.Runner != nil {
		return i.Runner
	}
	return desktop.ExecRunner
}

func (i *Installer) getenv() func(string) string {
	if i.Getenv != nil {
		return i.Getenv
	}
	return os.Getenv
}

func (i *Installer) executable() func() (string, error) {
	if i.Executable != nil {
		return i.Executable
	}
	return os.Executable
}

func (i *Installer) log() *logrus.Entry {
	if i.logger == nil {
		i.logger = logging.NewLogger("install")
	}
	return i.logger
}
