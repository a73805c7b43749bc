package cmd

import (
	"errors"
	"fmt"

	"github.com/byterings/gitu/internal/identity"
	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "del <name>",
	Aliases: []string{"delete"},
	Short:   "Delete one git user",
	Long: `Remove a stored identity. If it is the active one, git's global
user.name and user.email are cleared first.`,
	Args: cobra.ExactArgs(1),
	Example: `  gitu del work
  gitu delete personal`,
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	switcher, err := newSwitcher()
	if err != nil {
		return err
	}

	result, err := switcher.Delete(name)
	if errors.Is(err, identity.ErrProfileNotFound) {
		ui.Warning(fmt.Sprintf("Not found user: %s", name))
		return nil
	}
	if err != nil {
		return err
	}

	if result.Deactivated {
		ui.Info("Active user cleared")
	}
	ui.Success(fmt.Sprintf("User '%s' deleted", result.Profile.Name))
	return nil
}
