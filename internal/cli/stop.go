package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/console"
	"github.com/tessro/pspr/internal/locator"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running PPSSPP",
	Long:  "Ask the PPSSPP instance launched by pspr to terminate. Works on instances started from any pspr process.",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	out := console.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

	a, err := newApp(out, locator.NoPicker{})
	if err != nil {
		return err
	}
	return reported(a.runner.Stop())
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
