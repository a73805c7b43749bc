package cmd

import (
	"github.com/byterings/gitu/internal/git"
	"github.com/byterings/gitu/internal/identity"
	"github.com/byterings/gitu/internal/registry"
)

// newSwitcher wires the registry file and git's global config for one
// command invocation
func newSwitcher() (*identity.Switcher, error) {
	gitConfigPath, err := git.GlobalConfigPath(settings.GitConfigPath)
	if err != nil {
		return nil, err
	}

	store := registry.NewStore(settings.RegistryPath, logger.Named("registry"))
	external := git.NewConfigStore(gitConfigPath, settings.GitBinary, logger.Named("git"))
	return identity.NewSwitcher(store, external, logger.Named("identity")), nil
}
