package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framecast/pkg/buildinfo"
)

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := buildinfo.Current()
			printKeyValue("Version", info.Version)
			printKeyValue("Commit", info.Commit)
			printKeyValue("Built", info.Date)
			printKeyValue("Go", runtime.Version())
		},
	}
}
