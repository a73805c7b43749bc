package cmd

import (
	"fmt"

	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var cleanYes bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all git users",
	Long: `Delete every stored identity and clear git's global user.name and
user.email.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runClean(cmd *cobra.Command, args []string) error {
	if !cleanYes {
		if !ui.IsInteractive() {
			return fmt.Errorf("refusing to clean without confirmation; pass --yes")
		}
		confirmed, err := ui.PromptConfirmation("Delete all users and clear git's global identity?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(ui.Stdout, "Cancelled")
			return nil
		}
	}

	switcher, err := newSwitcher()
	if err != nil {
		return err
	}

	if err := switcher.Clean(); err != nil {
		return err
	}

	ui.Success("All users removed")
	return nil
}
