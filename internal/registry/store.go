package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/byterings/gitu/internal/platform"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/orderedmap"
)

// Store is the file-backed registry. The whole file is rewritten on every
// save. The lock only guards a single read or write; a load-modify-save
// sequence is not atomic across processes, so the last writer wins.
type Store struct {
	path   string
	flock  *flock.Flock
	logger hclog.Logger
}

// NewStore returns a Store for the registry file at path
func NewStore(path string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		path:   path,
		flock:  flock.New(path + ".lock"),
		logger: logger,
	}
}

// Path returns the registry file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. A missing or blank file is an empty registry.
func (s *Store) Load() (*Registry, error) {
	data, err := s.read()
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("registry file missing, starting empty", "path", s.path)
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", s.path, err)
	}

	reg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", s.path, err)
	}
	s.logger.Debug("loaded registry", "path", s.path, "profiles", reg.Len())
	return reg, nil
}

func (s *Store) read() ([]byte, error) {
	// The lock file lives next to the registry; with no directory there is
	// nothing to read
	if _, err := os.Stat(s.path); err != nil {
		return nil, err
	}

	if err := s.flock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock registry: %w", err)
	}
	defer s.flock.Unlock()

	return os.ReadFile(s.path)
}

// Save atomically replaces the registry file with reg
func (s *Store) Save(reg *Registry) error {
	data, err := Encode(reg)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := platform.MkdirSecure(dir); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	if err := s.flock.Lock(); err != nil {
		return fmt.Errorf("failed to lock registry: %w", err)
	}
	defer s.flock.Unlock()

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp registry file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close registry: %w", err)
	}
	if err := os.Chmod(tmpPath, platform.SecureFileMode()); err != nil {
		return fmt.Errorf("failed to set registry permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace registry: %w", err)
	}

	s.logger.Debug("saved registry", "path", s.path, "profiles", reg.Len())
	return nil
}

// Encode serializes reg as a compact JSON object keyed by profile name,
// in insertion order
func Encode(reg *Registry) ([]byte, error) {
	om := orderedmap.New()
	for _, p := range reg.Profiles() {
		om.Set(p.Name, p)
	}
	return json.Marshal(om)
}

// Decode parses a JSON registry, keeping the file's key order. Blank input
// is an empty registry.
func Decode(data []byte) (*Registry, error) {
	reg := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return reg, nil
	}

	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, err
	}

	for _, name := range om.Keys() {
		v, _ := om.Get(name)
		p, err := decodeProfile(name, v)
		if err != nil {
			return nil, err
		}
		reg.Set(p)
	}
	return reg, nil
}

func decodeProfile(name string, v interface{}) (Profile, error) {
	p := Profile{Name: name}

	var get func(key string) (interface{}, bool)
	switch m := v.(type) {
	case orderedmap.OrderedMap:
		get = m.Get
	case *orderedmap.OrderedMap:
		get = m.Get
	case map[string]interface{}:
		get = func(key string) (interface{}, bool) {
			val, ok := m[key]
			return val, ok
		}
	default:
		return Profile{}, fmt.Errorf("profile %q: expected object, got %T", name, v)
	}

	var err error
	if p.Registry, err = stringField(get, name, "registry"); err != nil {
		return Profile{}, err
	}
	if p.Home, err = stringField(get, name, "home"); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func stringField(get func(string) (interface{}, bool), name, key string) (string, error) {
	v, ok := get(key)
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("profile %q: field %q must be a string, got %T", name, key, v)
	}
	return s, nil
}
