package cli

import (
	"fmt"
	"path/filepath"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

var revealConfig bool

// openPath is swapped in tests.
var openPath = open.Start

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Open the workspace folder",
	Long:  "Open the workspace folder, or with --config the global settings folder, in the desktop file manager.",
	Args:  cobra.NoArgs,
	RunE:  runReveal,
}

func runReveal(cmd *cobra.Command, args []string) error {
	store, root, err := openStore()
	if err != nil {
		return err
	}

	target := root
	if revealConfig {
		target = filepath.Dir(store.GlobalPath())
	}

	if err := openPath(target); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🎮 Opened %s\n", target)
	return nil
}

func init() {
	revealCmd.Flags().BoolVar(&revealConfig, "config", false, "open the global settings folder instead")
	rootCmd.AddCommand(revealCmd)
}
