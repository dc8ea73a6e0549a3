// Package cmd wires the command line surface: capture, install, shortcut
// management, config inspection and the environment doctor.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/logging"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

var (
	rootVerbose bool
	rootNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "screenux-screenshot",
	Short: "Screenshot capture with GNOME shortcut integration",
	Long: `Screenux Screenshot captures the screen into your desktop directory and
keeps a global GNOME shortcut pointed at itself.

The capture command is what the registered shortcut invokes; install sets up
the binary, desktop entry, icons and the shortcut in one pass.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(rootVerbose)
		theme.Configure(rootNoColor)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
