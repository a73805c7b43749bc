package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/byterings/gitu/internal/platform"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/ini.v1"
)

// Identity is the user.name/user.email pair from git's global config
type Identity struct {
	Name  string
	Email string
}

// Configured reports whether an email is set. A name without an email is
// not an active identity.
func (i Identity) Configured() bool {
	return i.Email != ""
}

// ConfigStore reads and writes the [user] section of a git config file.
// Reads parse the file directly; writes go through git itself so the file
// keeps git's own formatting.
type ConfigStore struct {
	path   string
	binary string
	logger hclog.Logger
}

// NewConfigStore returns a store for the config file at path, writing with
// the given git binary
func NewConfigStore(path, binary string, logger hclog.Logger) *ConfigStore {
	if binary == "" {
		binary = "git"
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ConfigStore{path: path, binary: binary, logger: logger}
}

// Path returns the config file this store operates on
func (s *ConfigStore) Path() string {
	return s.path
}

// Get returns the identity currently configured. A missing file yields an
// empty identity. When a key repeats, the last value wins as it does in git.
func (s *ConfigStore) Get() (Identity, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Loose:                     true,
		IgnoreContinuation:        true,
		Insensitive:               true,
		AllowBooleanKeys:          true,
		AllowShadows:              true,
		SpaceBeforeInlineComment:  true,
		UnescapeValueDoubleQuotes: true,
	}, s.path)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to parse git config %s: %w", s.path, err)
	}

	user := cfg.Section("user")
	id := Identity{
		Name:  lastValue(user.Key("name")),
		Email: lastValue(user.Key("email")),
	}
	s.logger.Debug("read git identity", "path", s.path, "name", id.Name, "email", id.Email)
	return id, nil
}

// lastValue returns the final occurrence of a possibly repeated key with
// git's escapes decoded
func lastValue(key *ini.Key) string {
	values := key.ValueWithShadows()
	if len(values) == 0 {
		return ""
	}
	return unescapeValue(values[len(values)-1])
}

// unescapeValue decodes the backslash escapes git writes inside values.
// ini has already turned \" into " for double-quoted values, which leaves
// the other escapes for this pass. Unknown escapes are kept verbatim.
func unescapeValue(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}

	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i+1 == len(v) {
			b.WriteByte(v[i])
			continue
		}
		i++
		switch v[i] {
		case '\\', '"':
			b.WriteByte(v[i])
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		default:
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

// Set writes user.name and user.email
func (s *ConfigStore) Set(id Identity) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create git config directory: %w", err)
	}

	if err := s.runGitConfig("user.name", id.Name); err != nil {
		return fmt.Errorf("failed to set git user.name: %w", err)
	}

	if err := s.runGitConfig("user.email", id.Email); err != nil {
		return fmt.Errorf("failed to set git user.email: %w", err)
	}

	s.logger.Debug("wrote git identity", "path", s.path, "name", id.Name, "email", id.Email)
	return nil
}

// Clear blanks user.name and user.email
func (s *ConfigStore) Clear() error {
	return s.Set(Identity{})
}

// runGitConfig runs git config against the store's file to set a value,
// collapsing any repeats of the key
func (s *ConfigStore) runGitConfig(key, value string) error {
	cmd := exec.Command(s.binary, "config", "--file", s.path, "--replace-all", key, value)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git config failed: %s: %w", string(output), err)
	}
	return nil
}

// GlobalConfigPath resolves the global git config file. An explicit path
// wins; otherwise GIT_CONFIG_GLOBAL, then ~/.gitconfig, then the XDG
// location, falling back to ~/.gitconfig when neither exists.
func GlobalConfigPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv("GIT_CONFIG_GLOBAL"); p != "" {
		return homedir.Expand(p)
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dotfile := filepath.Join(home, ".gitconfig")
	if _, err := os.Stat(dotfile); err == nil {
		return dotfile, nil
	}

	xdgHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgHome == "" {
		xdgHome = filepath.Join(home, ".config")
	}
	xdg := filepath.Join(xdgHome, "git", "config")
	if _, err := os.Stat(xdg); err == nil {
		return xdg, nil
	}

	return dotfile, nil
}

// IsGitInstalled checks if git is installed and runs
func IsGitInstalled(binary string) bool {
	if binary == "" {
		binary = "git"
	}
	if !platform.HasCommand(binary) {
		return false
	}
	cmd := exec.Command(binary, "--version")
	return cmd.Run() == nil
}
