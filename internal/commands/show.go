// internal/commands/show.go
package densebench

import (
	"github.com/spf13/cobra"
)

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display the configuration and catalog densebench runs with.`,
}

func init() {
	rootCmd.AddCommand(showCmd)
}
