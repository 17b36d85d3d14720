package cmd

import (
	"github.com/spf13/cobra"

	"github.com/caiiiycuk/sockdrive"
)

// VersionCmd represents the version subcommand
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Output the version information",
	Long:  "Outputs the tool version, runtime information, and optionally the commit hash.",
	Run: func(*cobra.Command, []string) {
		sockdrive.PrintVersion()
	},
}
