package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/install"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var (
	uninstallPreserveUserData bool
	uninstallDryRun           bool
)

func init() {
	rootCmd.AddCommand(newUninstallCmd())
}

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the installed files and the global shortcut",
		Long: `Removes the global shortcut, restores the native screenshot shortcuts and
deletes the desktop entry, icons and installed binary. The companion editor
flatpak is uninstalled when present.

User data under ~/.config/screenux and the editor's flatpak data are removed
too unless --preserve-user-data is given. Absent artifacts are skipped, so
uninstalling twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: runUninstall,
	}

	cmd.Flags().BoolVar(&uninstallPreserveUserData, "preserve-user-data", false, "Keep the config directory and editor data")
	cmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "Print the plan without changing anything")

	return cmd
}

func runUninstall(cmd *cobra.Command, args []string) error {
	installer := install.NewInstaller()
	actions, err := installer.Uninstall(cmd.Context(), install.UninstallOptions{
		PreserveUserData: uninstallPreserveUserData,
		DryRun:           uninstallDryRun,
	})
	renderActions(actions)
	if err != nil {
		return err
	}

	t := theme.DefaultTheme
	if uninstallDryRun {
		fmt.Println(t.Muted.Render("Dry run; nothing was changed."))
		return nil
	}
	fmt.Printf("%s %s uninstalled.\n", t.Success.Render(theme.IconSuccess), app.DisplayName)
	return nil
}
