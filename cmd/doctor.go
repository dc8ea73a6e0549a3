package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/capture"
	"github.com/rafa/screenux-screenshot/pkg/desktop"
	"github.com/rafa/screenux-screenshot/pkg/gsettings"
	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/install"
	"github.com/rafa/screenux-screenshot/pkg/paths"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var doctorFormat = newFormatValue(formatText)

func init() {
	rootCmd.AddCommand(newDoctorCmd())
}

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for capture and shortcut support",
		Long: `Probes the desktop session, the gsettings backend, the capture backends and
the companion editor, and reports where screenshots and settings live.`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
	cmd.Flags().Var(doctorFormat, "format", "Output format: text, json or yaml")
	return cmd
}

type doctorBackend struct {
	Name      string `json:"name" yaml:"name"`
	Available bool   `json:"available" yaml:"available"`
}

type doctorReport struct {
	Desktop         string          `json:"desktop,omitempty" yaml:"desktop,omitempty"`
	GNOME           bool            `json:"gnome" yaml:"gnome"`
	ShellVersion    string          `json:"shell_version,omitempty" yaml:"shell_version,omitempty"`
	GSettings       bool            `json:"gsettings" yaml:"gsettings"`
	MediaKeysSchema bool            `json:"media_keys_schema" yaml:"media_keys_schema"`
	Backends        []doctorBackend `json:"capture_backends" yaml:"capture_backends"`
	EditorInstalled bool            `json:"editor_installed" yaml:"editor_installed"`
	SettingsPath    string          `json:"settings_path,omitempty" yaml:"settings_path,omitempty"`
	SaveDir         string          `json:"save_dir" yaml:"save_dir"`
	ShortcutState   string          `json:"shortcut_state" yaml:"shortcut_state"`
	Shortcut        string          `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := collectDoctorReport(cmd.Context())
	if format := doctorFormat.String(); format != formatText {
		return renderStructured(report, format)
	}
	renderDoctorText(report)
	return nil
}

func collectDoctorReport(ctx context.Context) doctorReport {
	report := doctorReport{
		Desktop: os.Getenv("XDG_CURRENT_DESKTOP"),
		GNOME:   desktop.IsGNOME(os.Getenv),
	}
	if version, err := desktop.ShellVersion(ctx, nil); err == nil {
		report.ShellVersion = version.String()
	}

	store := gsettings.NewCLI()
	report.GSettings = store.Available()
	if report.GSettings {
		report.MediaKeysSchema = store.SchemaExists(hotkey.MediaKeysSchema)
	}

	for _, backend := range capture.Chain(desktop.ExecRunner) {
		report.Backends = append(report.Backends, doctorBackend{
			Name:      backend.Name(),
			Available: backend.Available(),
		})
	}
	report.EditorInstalled = desktop.FlatpakInstalled(ctx, nil, app.ID)

	if path, err := paths.SettingsPath(); err == nil {
		report.SettingsPath = path
	}
	settings, prefs := loadRuntimeConfig()
	configured := settings.SaveDir
	if configured == "" {
		configured = prefs.SaveDir
	}
	report.SaveDir = paths.ResolveSaveDir(configured)

	if manager, err := newHotkeyManager(); err == nil {
		status := manager.Status()
		switch {
		case status.Disabled:
			report.ShortcutState = "disabled"
		case status.Accel != "":
			report.ShortcutState = "registered"
			report.Shortcut = status.Accel
		case status.OwnedSlot != "":
			report.ShortcutState = "registered"
			report.Shortcut = status.Binding
		default:
			report.ShortcutState = "unregistered"
		}
	}
	return report
}

func renderDoctorText(report doctorReport) {
	t := theme.DefaultTheme

	fmt.Println(t.Header.Render("Environment"))
	desktopLabel := report.Desktop
	if desktopLabel == "" {
		desktopLabel = "unknown"
	}
	fmt.Printf("%s GNOME desktop %s\n", statusGlyph(report.GNOME), t.Muted.Render("("+desktopLabel+")"))
	if report.ShellVersion != "" {
		fmt.Printf("%s GNOME Shell %s\n", statusGlyph(true), report.ShellVersion)
	}
	fmt.Printf("%s gsettings backend\n", statusGlyph(report.GSettings))
	fmt.Printf("%s media keys schema\n", statusGlyph(report.MediaKeysSchema))

	fmt.Println()
	fmt.Println(t.Header.Render("Capture"))
	for _, backend := range report.Backends {
		fmt.Printf("%s %s\n", statusGlyph(backend.Available), backend.Name)
	}
	fmt.Printf("%s editor flatpak\n", statusGlyph(report.EditorInstalled))

	fmt.Println()
	fmt.Println(t.Header.Render("Files"))
	fmt.Printf("Settings: %s\n", t.Path.Render(install.AbbreviatePath(report.SettingsPath)))
	fmt.Printf("Save dir: %s\n", t.Path.Render(install.AbbreviatePath(report.SaveDir)))

	fmt.Println()
	switch report.ShortcutState {
	case "registered":
		fmt.Printf("%s Global shortcut: %s\n", t.Success.Render(theme.IconSuccess), t.Highlight.Render(report.Shortcut))
	case "disabled":
		fmt.Println("Global shortcut: " + t.Muted.Render("disabled"))
	default:
		fmt.Println("Global shortcut: " + t.Muted.Render("not registered"))
	}
}
