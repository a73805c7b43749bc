package cmd

import (
	"errors"
	"fmt"

	"github.com/byterings/gitu/internal/identity"
	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Change git user",
	Long: `Switch git's global user.name and user.email to a stored profile.

Names match exactly first, then case-insensitively when only one profile
differs in case.`,
	Args:    cobra.ExactArgs(1),
	Example: `  gitu use work`,
	RunE:    runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	name := args[0]

	switcher, err := newSwitcher()
	if err != nil {
		return err
	}

	result, err := switcher.Use(name)
	if errors.Is(err, identity.ErrProfileNotFound) {
		ui.Warning(fmt.Sprintf("Not found user: %s", name))
		fmt.Fprintln(ui.Stderr, "Run: gitu ls")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update git config: %w", err)
	}

	if !result.Changed {
		ui.Info(fmt.Sprintf("Already using %s (%s)", result.Name, result.Email))
		return nil
	}

	ui.Success(fmt.Sprintf("Switched to %s (%s)", result.Name, result.Email))
	return nil
}
