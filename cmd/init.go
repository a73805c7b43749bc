package cmd

import (
	"fmt"

	"github.com/byterings/gitu/internal/config"
	"github.com/byterings/gitu/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gitu configuration",
	Long:  `Create the gitu configuration directory and a default settings file. This is optional - gitu works without it.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	exists, err := config.ConfigExists()
	if err != nil {
		return fmt.Errorf("failed to check config: %w", err)
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}

	if exists {
		ui.Info(fmt.Sprintf("gitu is already initialized at: %s", configDir))
		return nil
	}

	if err := config.CreateConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.SaveConfig(config.NewConfig()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	ui.Success(fmt.Sprintf("gitu initialized at: %s", configDir))
	fmt.Fprintln(ui.Stdout, "\nNext: gitu add <name> <email>")

	return nil
}
