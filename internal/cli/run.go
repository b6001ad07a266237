package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/console"
	"github.com/tessro/pspr/internal/locator"
	"github.com/tessro/pspr/internal/picker"
)

var (
	runDetach   bool
	runNoPrompt bool
)

// stopGrace bounds how long run waits for the emulator after an interrupt.
const stopGrace = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch PPSSPP on the workspace EBOOT.PBP",
	Long: `Launch PPSSPP with the workspace's EBOOT.PBP.

The executable comes from the executable-path setting, then from well-known
install locations, and finally from an interactive file picker. Found paths
are saved so later runs skip the search.

By default run stays in the foreground until PPSSPP exits; Ctrl+C stops it.
With --detach it returns right away and 'pspr stop' closes the emulator.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	out := console.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

	var pick locator.Picker = picker.Terminal{}
	if runNoPrompt {
		pick = locator.NoPicker{}
	}

	a, err := newApp(out, pick)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := a.runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return reported(err)
	}

	if runDetach {
		fmt.Fprintf(cmd.OutOrStdout(), "🎮 PPSSPP running (pid %d). Stop it with: pspr stop\n", h.PID())
		return nil
	}

	select {
	case <-h.Done():
		if err := h.Err(); err != nil {
			slog.Info("emulator exited with error", "pid", h.PID(), "error", err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := a.runner.Stop(); err != nil {
		return reported(err)
	}
	waitExit(h.Done(), stopGrace)
	return nil
}

func waitExit(done <-chan struct{}, grace time.Duration) {
	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-done:
	case <-t.C:
		slog.Warn("emulator still running after stop", "grace", grace)
	}
}

func init() {
	runCmd.Flags().BoolVarP(&runDetach, "detach", "d", false, "return once PPSSPP has started")
	runCmd.Flags().BoolVar(&runNoPrompt, "no-prompt", false, "never show the file picker")
	rootCmd.AddCommand(runCmd)
}
