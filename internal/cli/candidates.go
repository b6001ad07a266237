package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/locator"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List the install locations probed for PPSSPP",
	Long:  "List, in probe order, the locations where pspr looks for PPSSPP when executable-path is not set.",
	Args:  cobra.NoArgs,
	RunE:  runCandidates,
}

func runCandidates(cmd *cobra.Command, args []string) error {
	l := locator.New(locator.Options{})
	chosen, found := l.Probe()

	tw := newTable(cmd.OutOrStdout(), "PPSSPP locations", table.Row{"#", "Path", "Status"})
	for i, path := range l.Candidates() {
		status := "missing"
		switch {
		case found && path == chosen:
			status = "selected"
		case locator.FileExists(path):
			status = "found"
		}
		tw.AppendRow(table.Row{i + 1, path, status})
	}
	tw.Render()
	return nil
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
}
