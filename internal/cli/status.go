package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/config"
	"github.com/tessro/pspr/internal/console"
	"github.com/tessro/pspr/internal/locator"
)

var statusShowSettings bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether PPSSPP is running",
	Long:  "Report whether a PPSSPP instance launched by pspr is running, and optionally the effective settings.",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	a, err := newApp(console.New(w, cmd.ErrOrStderr()), locator.NoPicker{})
	if err != nil {
		return err
	}

	st := a.runner.Status()
	switch {
	case !st.Running:
		fmt.Fprintln(w, "🎮 PPSSPP is not running")
	case st.StartedAt.IsZero():
		fmt.Fprintf(w, "🎮 PPSSPP running (pid %d)\n", st.PID)
	default:
		uptime := time.Since(st.StartedAt).Truncate(time.Second)
		fmt.Fprintf(w, "🎮 PPSSPP running (pid %d, uptime %s)\n", st.PID, uptime)
	}
	fmt.Fprintf(w, "   Workspace: %s\n", a.workspace)

	if statusShowSettings {
		fmt.Fprintln(w)
		tw := newTable(w, "", table.Row{"Setting", "Value"})
		for _, key := range config.Keys {
			v, _ := a.store.Get(key)
			tw.AppendRow(table.Row{string(key), orDash(v)})
		}
		tw.Render()
	}
	return nil
}

func init() {
	statusCmd.Flags().BoolVarP(&statusShowSettings, "settings", "s", false, "show effective settings")
	rootCmd.AddCommand(statusCmd)
}
