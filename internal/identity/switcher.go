package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/byterings/gitu/internal/git"
	"github.com/byterings/gitu/internal/registry"
	"github.com/hashicorp/go-hclog"
)

var (
	// ErrProfileNotFound indicates the named profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists indicates a profile with that name already exists.
	ErrProfileExists = errors.New("profile already exists")
)

// ExternalStore is where the active identity lives (git's global config)
type ExternalStore interface {
	Get() (git.Identity, error)
	Set(git.Identity) error
	Clear() error
}

// UseResult describes the outcome of Use
type UseResult struct {
	Name    string
	Email   string
	Changed bool // false when the profile was already active
}

// AddResult describes the outcome of Add
type AddResult struct {
	Profile   registry.Profile
	Activated bool // true when the first profile was switched to automatically
}

// DeleteResult describes the outcome of Delete
type DeleteResult struct {
	Profile     registry.Profile
	Deactivated bool // true when the deleted profile was active
}

// Switcher governs which profile is active. The active profile is not
// stored anywhere; it is whatever git's config currently says.
type Switcher struct {
	store    *registry.Store
	external ExternalStore
	logger   hclog.Logger
}

// NewSwitcher creates a Switcher for one command invocation
func NewSwitcher(store *registry.Store, external ExternalStore, logger hclog.Logger) *Switcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Switcher{store: store, external: external, logger: logger}
}

// snapshot loads both stores and computes the effective registry
func (s *Switcher) snapshot() (*registry.Registry, git.Identity, []Entry, error) {
	current, err := s.external.Get()
	if err != nil {
		return nil, git.Identity{}, nil, fmt.Errorf("failed to read current identity: %w", err)
	}

	reg, err := s.store.Load()
	if err != nil {
		return nil, git.Identity{}, nil, err
	}

	return reg, current, Effective(reg, current), nil
}

// List returns the effective registry with the active entry marked
func (s *Switcher) List() ([]Entry, error) {
	_, _, entries, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Current returns the active entry. ok is false when git has no identity
// or it matches no profile.
func (s *Switcher) Current() (entry Entry, ok bool, err error) {
	_, _, entries, err := s.snapshot()
	if err != nil {
		return Entry{}, false, err
	}
	entry, ok = ActiveEntry(entries)
	return entry, ok, nil
}

// Use makes the named profile active. Switching to the profile that is
// already active writes nothing.
func (s *Switcher) Use(name string) (UseResult, error) {
	_, _, entries, err := s.snapshot()
	if err != nil {
		return UseResult{}, err
	}

	target, ok := Lookup(entries, name)
	if !ok {
		return UseResult{Name: name}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	email := target.Home
	if email == "" {
		email = target.Registry
	}
	result := UseResult{Name: target.Name, Email: email}

	if active, ok := ActiveEntry(entries); ok && strings.EqualFold(active.Name, target.Name) {
		s.logger.Debug("profile already active", "name", target.Name)
		return result, nil
	}

	if err := s.external.Set(git.Identity{Name: target.Name, Email: email}); err != nil {
		return UseResult{}, err
	}

	s.logger.Info("switched identity", "name", target.Name, "email", email)
	result.Changed = true
	return result, nil
}

// Deactivate clears git's identity so no profile is active
func (s *Switcher) Deactivate() error {
	if err := s.external.Clear(); err != nil {
		return err
	}
	s.logger.Info("cleared identity")
	return nil
}

// Add stores a new profile whose registry and home are both url. Names
// already in the effective registry, including git's current identity,
// are rejected with ErrProfileExists. The first profile ever added is
// switched to immediately.
func (s *Switcher) Add(name, url string) (AddResult, error) {
	reg, _, entries, err := s.snapshot()
	if err != nil {
		return AddResult{}, err
	}

	if _, exists := findExact(entries, name); exists {
		return AddResult{}, fmt.Errorf("%w: %s", ErrProfileExists, name)
	}

	wasEmpty := reg.Len() == 0
	p := registry.Profile{Name: name, Registry: url, Home: url}
	reg.Set(p)
	if err := s.store.Save(reg); err != nil {
		return AddResult{}, err
	}
	s.logger.Info("added profile", "name", name, "registry", url)

	result := AddResult{Profile: p}
	if wasEmpty {
		used, err := s.Use(name)
		if err != nil {
			return result, err
		}
		result.Activated = used.Changed
	}
	return result, nil
}

// Delete removes a stored profile. Entries that only mirror git's current
// identity cannot be deleted. Deleting the active profile clears git's
// identity first.
func (s *Switcher) Delete(name string) (DeleteResult, error) {
	reg, current, _, err := s.snapshot()
	if err != nil {
		return DeleteResult{}, err
	}

	p, ok := reg.Get(name)
	if !ok {
		return DeleteResult{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	result := DeleteResult{Profile: p}
	if EqualFold(p.Registry, current.Email) {
		if err := s.Deactivate(); err != nil {
			return DeleteResult{}, err
		}
		result.Deactivated = true
	}

	reg.Delete(name)
	if err := s.store.Save(reg); err != nil {
		return result, err
	}
	s.logger.Info("deleted profile", "name", name)
	return result, nil
}

// Clean removes every stored profile and clears git's identity
func (s *Switcher) Clean() error {
	if err := s.store.Save(registry.New()); err != nil {
		return err
	}
	s.logger.Info("registry cleared", "path", s.store.Path())
	return s.Deactivate()
}
