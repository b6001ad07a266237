package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit, and build date of pspr.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "🎮 "+version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
