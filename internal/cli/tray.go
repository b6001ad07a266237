package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/tray"
)

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run pspr in the system tray",
	Long: `Show a system tray menu for running and stopping PPSSPP.

The tray never prompts for files: set executable-path with 'pspr config set'
if PPSSPP is not installed in a standard location. Quitting the tray closes
the emulator it launched. Not available on Linux.`,
	Args: cobra.NoArgs,
	RunE: runTray,
}

func runTray(cmd *cobra.Command, args []string) error {
	state := tray.NewState()
	a, err := newApp(state, locator.NoPicker{})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tray.Run(ctx, tray.Options{
		Runner:    a.runner,
		State:     state,
		Workspace: a.workspace,
	})
	if errors.Is(err, tray.ErrUnsupported) {
		return fmt.Errorf("%w; use 'pspr tui' instead", err)
	}
	return err
}

func init() {
	rootCmd.AddCommand(trayCmd)
}
