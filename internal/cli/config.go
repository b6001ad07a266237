package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tessro/pspr/internal/config"
)

var configScope string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pspr settings",
	Long: `Read and write pspr settings.

Settings live in two scopes: global (~/.config/pspr/config.toml) and
workspace (.pspr.yaml in the workspace folder). The workspace value wins.

Keys:
  executable-path   path to the PPSSPP executable
  image-path        path to the EBOOT.PBP to launch`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting",
	Long:  "Print the effective value of a setting. With --scope, print the value from that scope only.",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from a scope",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings in every scope",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func parseKey(s string) (config.Key, error) {
	if err := config.ValidateKey(s); err != nil {
		return "", err
	}
	return config.Key(s), nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key, err := parseKey(args[0])
	if err != nil {
		return err
	}
	store, _, err := openStore()
	if err != nil {
		return err
	}

	var (
		value string
		ok    bool
	)
	if cmd.Flags().Changed("scope") {
		scope, err := config.ParseScope(configScope)
		if err != nil {
			return err
		}
		value, ok, err = store.Lookup(key, scope)
		if err != nil {
			return err
		}
	} else {
		value, ok = store.Get(key)
	}

	if !ok {
		return fmt.Errorf("%s is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, err := parseKey(args[0])
	if err != nil {
		return err
	}
	scope, err := config.ParseScope(configScope)
	if err != nil {
		return err
	}
	store, _, err := openStore()
	if err != nil {
		return err
	}

	if err := store.Set(key, args[1], scope); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🎮 Set %s = %s (%s)\n", key, args[1], scope)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key, err := parseKey(args[0])
	if err != nil {
		return err
	}
	scope, err := config.ParseScope(configScope)
	if err != nil {
		return err
	}
	store, _, err := openStore()
	if err != nil {
		return err
	}

	if err := store.Unset(key, scope); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🎮 Unset %s (%s)\n", key, scope)
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	tw := newTable(w, "pspr settings", table.Row{"Key", "Global", "Workspace", "Effective"})
	for _, key := range config.Keys {
		global, _, err := store.Lookup(key, config.ScopeGlobal)
		if err != nil {
			return err
		}
		workspace, _, err := store.Lookup(key, config.ScopeWorkspace)
		if err != nil {
			return err
		}
		effective, _ := store.Get(key)
		tw.AppendRow(table.Row{string(key), orDash(global), orDash(workspace), orDash(effective)})
	}
	tw.Render()

	fmt.Fprintf(w, "   Global:    %s\n", store.GlobalPath())
	fmt.Fprintf(w, "   Workspace: %s\n", store.WorkspacePath())
	return nil
}

func init() {
	for _, c := range []*cobra.Command{configGetCmd, configSetCmd, configUnsetCmd} {
		c.Flags().StringVar(&configScope, "scope", string(config.ScopeGlobal), "settings scope: global or workspace")
	}
	configCmd.AddCommand(configGetCmd, configSetCmd, configUnsetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}
