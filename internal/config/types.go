package config

// Color modes accepted by the color setting
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings represents the gitu settings file (~/.gitu/config.toml).
// Empty path fields mean "use the default location".
type Settings struct {
	RegistryPath  string `toml:"registry_path"`  // Profile registry (JSON)
	GitConfigPath string `toml:"gitconfig_path"` // Global git config to read/write
	GitBinary     string `toml:"git_binary"`
	LogLevel      string `toml:"log_level"`
	Color         string `toml:"color"` // auto, always, never
}
