package cmd

import (
	"fmt"

	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var currentShowURL bool

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current git user",
	Long: `Print the name of the profile matching git's global user.email, or its
email with --show-url. Prints nothing when no profile is active.`,
	Example: `  gitu current
  gitu current --show-url`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)
	currentCmd.Flags().BoolVarP(&currentShowURL, "show-url", "u", false, "Show the registry email instead of the name")
	currentCmd.Flags().BoolVarP(&currentShowURL, "show-email", "e", false, "Alias for --show-url")
	currentCmd.Flags().MarkHidden("show-email")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	switcher, err := newSwitcher()
	if err != nil {
		return err
	}

	entry, ok, err := switcher.Current()
	if err != nil {
		return err
	}
	if !ok {
		logger.Debug("no active profile")
		return nil
	}

	if currentShowURL {
		fmt.Fprintln(ui.Stdout, entry.Registry)
	} else {
		fmt.Fprintln(ui.Stdout, entry.Name)
	}
	return nil
}
