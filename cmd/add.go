package cmd

import (
	"errors"
	"fmt"

	"github.com/byterings/gitu/internal/identity"
	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Add one git user",
	Long: `Store a new identity. The email is used both to recognise the profile
as active and as the user.email written on 'gitu use'.

The first identity added is switched to immediately. Adding a name that
already exists does nothing.`,
	Args:    cobra.ExactArgs(2),
	Example: `  gitu add work me@work.com`,
	RunE:    runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, url := args[0], args[1]

	switcher, err := newSwitcher()
	if err != nil {
		return err
	}

	result, err := switcher.Add(name, url)
	if errors.Is(err, identity.ErrProfileExists) {
		logger.Debug("add ignored, name already exists", "name", name)
		return nil
	}
	if err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("User '%s' (%s) added", result.Profile.Name, result.Profile.Registry))
	if result.Activated {
		ui.Success(fmt.Sprintf("Switched to %s (%s)", result.Profile.Name, result.Profile.Home))
		return nil
	}

	fmt.Fprintf(ui.Stdout, "\nNext: gitu use %s\n", name)
	return nil
}
