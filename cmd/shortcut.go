package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var shortcutStatusFormat = newFormatValue(formatText)

func init() {
	rootCmd.AddCommand(newShortcutCmd())
}

func newShortcutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Manage the global capture shortcut",
		Long: `Inspects and edits the GNOME custom keybinding that launches capture.

Without a subcommand the current status is printed. apply is the high-level
path: it normalizes the accelerator, falls back when the combination is taken
and persists the outcome. configure writes the raw keybinding slot directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printShortcutStatus(formatText)
		},
	}

	cmd.AddCommand(newShortcutStatusCmd())
	cmd.AddCommand(newShortcutApplyCmd())
	cmd.AddCommand(newShortcutConfigureCmd())
	cmd.AddCommand(newShortcutRemoveCmd())
	cmd.AddCommand(newShortcutDisableCmd())
	cmd.AddCommand(newShortcutPickCmd())

	return cmd
}

func newShortcutStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored preference and registry state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printShortcutStatus(shortcutStatusFormat.String())
		},
	}
	cmd.Flags().Var(shortcutStatusFormat, "format", "Output format: text, json or yaml")
	return cmd
}

func newShortcutApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <accelerator>",
		Short: "Set and register the global shortcut",
		Long: `Normalizes the accelerator, resolves conflicts against the registry and the
native screenshot keys, persists the outcome and writes the keybinding slot.

When the combination is taken, the default and the fixed fallbacks are tried
in order; the pick is reported on stderr.`,
		Example: `  screenux-screenshot shortcut apply "Ctrl+Shift+S"
  screenux-screenshot shortcut apply "<Super>Print"`,
		Args: cobra.ExactArgs(1),
		RunE: runShortcutApply,
	}
}

func newShortcutConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure <binding-literal>",
		Short: "Write the raw keybinding slot",
		Long: `Writes the keybinding slot with a GVariant string list literal, reusing the
owned slot or allocating the lowest free one. No conflict resolution and no
preference persistence happen; apply is the high-level path.`,
		Example: `  screenux-screenshot shortcut configure "['<Control><Shift>s']"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShortcutConfigure,
	}
}

func newShortcutRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Drop the keybinding slot and restore the native shortcuts",
		Args:  cobra.NoArgs,
		RunE:  runShortcutRemove,
	}
}

func newShortcutDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Persist an explicit disable and remove the registration",
		Args:  cobra.NoArgs,
		RunE:  runShortcutDisable,
	}
}

func printShortcutStatus(format string) error {
	manager, err := newHotkeyManager()
	if err != nil {
		return err
	}
	status := manager.Status()
	if format != formatText {
		return renderStructured(status, format)
	}

	t := theme.DefaultTheme
	fmt.Println(t.Header.Render("Global Shortcut"))
	fmt.Printf("%s GNOME desktop\n", statusGlyph(status.GNOMEDesktop))
	fmt.Printf("%s gsettings backend\n", statusGlyph(status.BackendAvailable))
	fmt.Printf("%s media keys schema\n", statusGlyph(status.SchemaPresent))
	fmt.Println()

	switch {
	case status.Disabled:
		fmt.Println("Preference: " + t.Muted.Render("disabled"))
	case status.Preference != "":
		fmt.Println("Preference: " + t.Highlight.Render(status.Preference))
	default:
		fmt.Println("Preference: " + t.Muted.Render("not set"))
	}

	if status.OwnedSlot != "" {
		accel := status.Accel
		if accel == "" {
			accel = status.Binding
		}
		fmt.Printf("Registered: %s %s\n", t.Highlight.Render(accel), t.Muted.Render("("+status.OwnedSlot+")"))
	} else {
		fmt.Println("Registered: " + t.Muted.Render("no"))
	}

	if len(status.Taken) > 0 {
		accels := make([]string, 0, len(status.Taken))
		for accel := range status.Taken {
			accels = append(accels, accel)
		}
		sort.Strings(accels)

		fmt.Println()
		fmt.Println(t.Bold.Render("Shortcuts held by others:"))
		for _, accel := range accels {
			labels := make([]string, 0, len(status.Taken[accel]))
			for _, holder := range status.Taken[accel] {
				labels = append(labels, holder.String())
			}
			fmt.Printf("  %s  %s\n", accel, t.Muted.Render(strings.Join(labels, ", ")))
		}
	}
	return nil
}

func runShortcutApply(cmd *cobra.Command, args []string) error {
	manager, err := newHotkeyManager()
	if err != nil {
		return err
	}
	result, err := manager.Apply(args[0])
	if err != nil {
		return err
	}
	reportRegistration(result)
	return nil
}

func runShortcutConfigure(cmd *cobra.Command, args []string) error {
	binding := args[0]
	reconciler := hotkey.NewReconciler(gsettings.NewCLI(), hotkey.DefaultIdentity())
	if err := reconciler.Configure(binding); err != nil {
		if warning, soft := softRegistryWarning(err); soft {
			printWarning(warning)
			return nil
		}
		return err
	}
	fmt.Printf("%s Keybinding slot set to %s\n", theme.DefaultTheme.Success.Render(theme.IconSuccess), binding)
	return nil
}

func runShortcutRemove(cmd *cobra.Command, args []string) error {
	reconciler := hotkey.NewReconciler(gsettings.NewCLI(), hotkey.DefaultIdentity())
	if err := reconciler.Remove(); err != nil {
		if warning, soft := softRegistryWarning(err); soft {
			printWarning(warning)
			return nil
		}
		return err
	}
	if err := reconciler.RestoreNativeBindings(); err != nil {
		if warning, soft := softRegistryWarning(err); soft {
			printWarning(warning)
			return nil
		}
		return err
	}
	fmt.Println("Global shortcut removed; native screenshot shortcuts restored.")
	return nil
}

func runShortcutDisable(cmd *cobra.Command, args []string) error {
	manager, err := newHotkeyManager()
	if err != nil {
		return err
	}
	result, err := manager.Disable()
	if err != nil {
		return err
	}
	reportRegistration(result)
	return nil
}

// reportRegistration prints the outcome of a registration pass. Warnings go
// to stderr so scripted callers still get a clean shortcut on stdout.
func reportRegistration(result hotkey.RegistrationResult) {
	if result.Warning != "" {
		printWarning(result.Warning)
	}
	t := theme.DefaultTheme
	if result.Shortcut == "" {
		fmt.Println("Global shortcut disabled.")
		return
	}
	fmt.Printf("%s Global shortcut: %s\n", t.Success.Render(theme.IconSuccess), t.Highlight.Render(result.Shortcut))
}
