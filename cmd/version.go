package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/app"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", app.BinaryName, app.Version)
		},
	}
}
