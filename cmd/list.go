package cmd

import (
	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all git users",
	Long: `Display all stored identities plus the identity currently set in git's
global config, marking the active one with '*'.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	switcher, err := newSwitcher()
	if err != nil {
		return err
	}

	entries, err := switcher.List()
	if err != nil {
		return err
	}

	ui.PrintProfiles(entries)
	return nil
}
