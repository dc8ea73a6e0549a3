package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/install"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var (
	installBundle      string
	installShortcut    string
	installNoShortcut  bool
	installPrintScreen bool
	installDryRun      bool
)

func init() {
	rootCmd.AddCommand(newInstallCmd())
}

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the binary, desktop entry, icons and global shortcut",
		Long: `Copies the running executable to ~/.local/bin, writes the desktop entry
and icons, optionally installs the companion editor flatpak and registers the
global capture shortcut.

Every step is idempotent; re-running converges on the same state.`,
		Example: `  # Default install with the Ctrl+Shift+S shortcut
  screenux-screenshot install

  # Take over the Print key and silence the native screenshot shortcuts
  screenux-screenshot install --print-screen

  # See the plan without touching anything
  screenux-screenshot install --dry-run`,
		Args: cobra.NoArgs,
		RunE: runInstall,
	}

	cmd.Flags().StringVar(&installBundle, "bundle", "", "Path of the companion editor flatpak bundle to install")
	cmd.Flags().StringVar(&installShortcut, "shortcut", "", "Preferred accelerator, for example Ctrl+Shift+S")
	cmd.Flags().BoolVar(&installNoShortcut, "no-shortcut", false, "Skip global shortcut registration")
	cmd.Flags().BoolVar(&installPrintScreen, "print-screen", false, "Bind the Print key and silence the native screenshot shortcuts")
	cmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Print the plan without changing anything")
	cmd.MarkFlagsMutuallyExclusive("shortcut", "no-shortcut", "print-screen")

	return cmd
}

func runInstall(cmd *cobra.Command, args []string) error {
	installer := install.NewInstaller()
	actions, err := installer.Run(cmd.Context(), install.Options{
		Bundle:      installBundle,
		Shortcut:    installShortcut,
		NoShortcut:  installNoShortcut,
		PrintScreen: installPrintScreen,
		DryRun:      installDryRun,
	})
	renderActions(actions)
	if err != nil {
		return err
	}

	t := theme.DefaultTheme
	if installDryRun {
		fmt.Println(t.Muted.Render("Dry run; nothing was changed."))
		return nil
	}
	fmt.Printf("%s %s installed.\n", t.Success.Render(theme.IconSuccess), app.DisplayName)
	return nil
}

// renderActions prints the summary of performed or simulated steps.
func renderActions(actions []install.Action) {
	t := theme.DefaultTheme
	for _, action := range actions {
		line := fmt.Sprintf("%s %s", statusGlyph(action.Success), action.Description)
		if action.Path != "" {
			line += " " + t.Path.Render(install.AbbreviatePath(action.Path))
		}
		fmt.Println(line)
		if action.Error != nil {
			fmt.Println("  " + t.Error.Render(action.Error.Error()))
		}
	}
}
