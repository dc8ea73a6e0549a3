package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/app"
	"github.com/rafa/screenux-screenshot/pkg/config"
	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/paths"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var configShowFormat = newFormatValue(formatJSON)

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the stored configuration",
		Long: `Works on the settings file, the runtime state kept under the user config
directory. The optional screenux.toml preferences overlay lives next to it
and is edited by hand.`,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigSchemaCmd())

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.SettingsPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	cmd.Flags().Var(configShowFormat, "format", "Output format: json or yaml")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a settings key",
		Long: `Writes one settings key. Known keys:

  global_hotkey   accelerator, normalized before storing
  save_dir        screenshot target directory
  editor_bundle   recorded editor bundle path

Setting global_hotkey only stores the preference; run shortcut apply to
register it with the desktop in the same step.`,
		Example: `  screenux-screenshot config set save_dir ~/Pictures
  screenux-screenshot config set global_hotkey "Ctrl+Shift+S"`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the settings file",
		Args:  cobra.NoArgs,
		RunE:  runConfigSchema,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, _ := loadRuntimeConfig()
	format := configShowFormat.String()
	if format == formatText {
		format = formatJSON
	}
	return renderStructured(settings.View(), format)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := paths.SettingsPath()
	if err != nil {
		return err
	}
	settings := config.LoadSettings(path)

	switch key {
	case "global_hotkey":
		normalized, err := hotkey.NormalizeAccel(value)
		if err != nil {
			return err
		}
		settings.SetGlobalHotkey(normalized)
		value = normalized
	case "save_dir":
		settings.SaveDir = value
	case "editor_bundle":
		settings.EditorBundle = value
	default:
		return fmt.Errorf("unknown settings key %q (known: global_hotkey, save_dir, editor_bundle)", key)
	}

	if err := config.SaveSettings(path, settings); err != nil {
		return err
	}
	fmt.Printf("%s %s = %s\n", theme.DefaultTheme.Success.Render(theme.IconSuccess), key, value)
	return nil
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&config.SettingsDocument{})
	schema.Title = app.DisplayName + " Settings"
	schema.Description = "Schema for the settings.json state file."
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
