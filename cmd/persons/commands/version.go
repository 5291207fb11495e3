package commands

import (
	"github.com/spf13/cobra"

	"github.com/SaschaSchweitzer/persons/cmd/persons/internal"
)

// Version is the CLI version, overridable at build time.
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		internal.Printf("persons %s\n", Version)
	},
}

// GetVersionCommand returns the version command.
func GetVersionCommand() *cobra.Command {
	return versionCmd
}
