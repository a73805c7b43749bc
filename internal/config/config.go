package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/byterings/gitu/internal/platform"
	"github.com/mitchellh/go-homedir"
)

const (
	ConfigFileName   = "config.toml"
	RegistryFileName = "registry.json"
	DefaultGitBinary = "git"
	DefaultLogLevel  = "warn"
)

// Environment overrides, applied on top of the settings file
const (
	EnvRegistry  = "GITU_REGISTRY"
	EnvGitConfig = "GITU_GITCONFIG"
	EnvGit       = "GITU_GIT"
	EnvLogLevel  = "GITU_LOG_LEVEL"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "off"}

// GetConfigDirName returns the config directory name
func GetConfigDirName() string {
	return platform.GetConfigDirName()
}

// GetConfigDir returns the path to the gitu config directory
func GetConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, GetConfigDirName()), nil
}

// GetConfigPath returns the path to the settings file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// DefaultRegistryPath returns the default location of the profile registry
func DefaultRegistryPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, RegistryFileName), nil
}

// ConfigExists checks if the settings file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CreateConfigDir creates the gitu config directory
func CreateConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return platform.MkdirSecure(configDir)
}

// NewConfig returns settings populated with defaults
func NewConfig() *Settings {
	return &Settings{
		GitBinary: DefaultGitBinary,
		LogLevel:  DefaultLogLevel,
		Color:     ColorAuto,
	}
}

// LoadConfig reads the settings file, applies environment overrides and
// expands paths. A missing settings file is not an error.
func LoadConfig() (*Settings, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	settings, err := decodeFile(configPath)
	if err != nil {
		return nil, err
	}

	applyEnv(settings)

	if err := settings.expandPaths(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func decodeFile(path string) (*Settings, error) {
	settings := NewConfig()
	if _, err := toml.DecodeFile(path, settings); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Keys present but blank fall back to defaults
	if settings.GitBinary == "" {
		settings.GitBinary = DefaultGitBinary
	}
	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}
	if settings.Color == "" {
		settings.Color = ColorAuto
	}
	return settings, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv(EnvRegistry); v != "" {
		s.RegistryPath = v
	}
	if v := os.Getenv(EnvGitConfig); v != "" {
		s.GitConfigPath = v
	}
	if v := os.Getenv(EnvGit); v != "" {
		s.GitBinary = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
}

func (s *Settings) expandPaths() error {
	if s.RegistryPath == "" {
		p, err := DefaultRegistryPath()
		if err != nil {
			return err
		}
		s.RegistryPath = p
	}

	p, err := homedir.Expand(s.RegistryPath)
	if err != nil {
		return fmt.Errorf("invalid registry_path %q: %w", s.RegistryPath, err)
	}
	s.RegistryPath = p

	if s.GitConfigPath != "" {
		p, err := homedir.Expand(s.GitConfigPath)
		if err != nil {
			return fmt.Errorf("invalid gitconfig_path %q: %w", s.GitConfigPath, err)
		}
		s.GitConfigPath = p
	}
	return nil
}

// Validate ensures settings are sane
func (s *Settings) Validate() error {
	level := strings.ToLower(s.LogLevel)
	valid := false
	for _, l := range validLogLevels {
		if l == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level: %s (must be one of %s)", s.LogLevel, strings.Join(validLogLevels, ", "))
	}

	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color: %s (must be auto, always, or never)", s.Color)
	}

	if s.GitBinary == "" {
		return fmt.Errorf("git_binary must not be empty")
	}
	return nil
}

// SaveConfig saves the settings to file
func SaveConfig(settings *Settings) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	f, err := platform.OpenFileSecure(configPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
