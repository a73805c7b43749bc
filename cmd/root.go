package cmd

import (
	"fmt"
	"os"

	"github.com/byterings/gitu/internal/config"
	"github.com/byterings/gitu/internal/logging"
	"github.com/byterings/gitu/internal/ui"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagNoColor bool

	// Resolved once per invocation in PersistentPreRunE
	settings *config.Settings
	logger   hclog.Logger = hclog.NewNullLogger()
)

var rootCmd = &cobra.Command{
	Use:   "gitu",
	Short: "Switch between git user identities",
	Long: `gitu keeps a list of named git identities and switches the global
git user.name / user.email between them.

The active identity is whatever git's global config says; gitu marks the
profile whose email matches it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command and exits non-zero on failure
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

// setup loads settings and configures output before any command runs
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	settings = s

	switch {
	case flagNoColor || s.Color == config.ColorNever:
		ui.SetColor(false)
	case s.Color == config.ColorAlways:
		ui.SetColor(true)
	}

	level := s.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logger = logging.New(level, os.Stderr, !flagNoColor && s.Color != config.ColorNever)
	logger.Debug("settings loaded", "registry", s.RegistryPath, "gitconfig", s.GitConfigPath)
	return nil
}
