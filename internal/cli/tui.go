package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal user interface",
	Long:  "Launch the interactive TUI for running and stopping PPSSPP. Quitting the TUI closes the emulator it launched.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		surface := tui.NewSurface()
		a, err := newApp(surface, surface)
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), tui.Options{
			Runner:    a.runner,
			Surface:   surface,
			Workspace: a.workspace,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
