package install

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/desktop"
	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/paths"
)

// Uninstall removes everything Run put in place. Absent artifacts are
// skipped, so it converges when run repeatedly or after a partial install.
func (i *Installer) Uninstall(ctx context.Context, opts UninstallOptions) ([]Action, error) {
	service := NewServiceWithRunner(opts.DryRun, i.runner())

	i.removeShortcut(service)

	appsDir, err := paths.ApplicationsDir()
	if err != nil {
		return service.Actions(), err
	}
	if err := service.RemoveFile(filepath.Join(appsDir, app.ID+".desktop")); err != nil {
		return service.Actions(), err
	}

	iconDir, err := paths.IconDir()
	if err != nil {
		return service.Actions(), err
	}
	for _, name := range []string{app.ID + ".svg", app.ID + "-light.svg", app.ID + "-dark.svg"} {
		if err := service.RemoveFile(filepath.Join(iconDir, name)); err != nil {
			return service.Actions(), err
		}
	}

	binDir, err := paths.LocalBinDir()
	if err != nil {
		return service.Actions(), err
	}
	if err := service.RemoveFile(filepath.Join(binDir, app.BinaryName)); err != nil {
		return service.Actions(), err
	}

	if desktop.FlatpakInstalled(ctx, i.runner(), app.ID) {
		if err := service.RunCommand(ctx, "flatpak", "uninstall", "-y", "--user", app.ID); err != nil {
			i.log().WithError(err).Warn("could not uninstall the editor flatpak")
		}
	}

	if !opts.PreserveUserData {
		dataDir, err := paths.FlatpakUserDataDir()
		if err != nil {
			return service.Actions(), err
		}
		if err := service.RemoveAll(dataDir); err != nil {
			return service.Actions(), err
		}
		configDir, err := paths.ConfigDir()
		if err != nil {
			return service.Actions(), err
		}
		if err := service.RemoveAll(configDir); err != nil {
			return service.Actions(), err
		}
	}

	i.refreshCaches(ctx, service)
	return service.Actions(), nil
}

// removeShortcut drops the keybinding slot and restores the native
// screenshot bindings. A host without a usable gsettings backend has
// nothing to remove; real write failures are warnings so the rest of the
// uninstall still runs.
func (i *Installer) removeShortcut(service *Service) {
	description := "Remove global shortcut and restore native bindings"
	if service.IsDryRun() {
		i.log().Infof("[dry-run] Would remove the global shortcut")
		service.Record(ActionShortcut, description, "", nil)
		return
	}

	reconciler := hotkey.NewReconciler(i.store(), hotkey.DefaultIdentity())
	err := reconciler.Remove()
	if err == nil {
		err = reconciler.RestoreNativeBindings()
	}
	if err != nil {
		var schemaMissing *gsettings.SchemaMissingError
		if errors.Is(err, gsettings.ErrUnavailable) || errors.As(err, &schemaMissing) {
			i.log().Debug("gsettings backend not usable; no shortcut to remove")
			return
		}
		i.log().WithError(err).Warn("could not remove the global shortcut")
		service.Record(ActionShortcut, description, "", err)
		return
	}
	service.Record(ActionShortcut, description, "", nil)
}
