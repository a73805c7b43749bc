package identity

import (
	"strings"

	"github.com/byterings/gitu/internal/git"
	"github.com/byterings/gitu/internal/registry"
)

// EntrySource indicates where an effective entry came from
type EntrySource string

const (
	// SourceStored entries exist in the persisted registry
	SourceStored EntrySource = "stored"
	// SourceDerived entries mirror git's current identity and are never persisted
	SourceDerived EntrySource = "derived"
)

// Entry is one profile in the effective registry
type Entry struct {
	registry.Profile
	Source EntrySource
	Active bool
}

// Effective merges the stored registry with git's current identity.
//
// Stored entries keep their order. When the current identity's name is also
// stored, the stored profile wins as-is, empty fields included; otherwise
// the identity is appended as a SourceDerived entry. An identity without an
// email contributes nothing. The entry whose registry matches the current
// email is marked Active.
func Effective(stored *registry.Registry, current git.Identity) []Entry {
	derived, hasDerived := derivedProfile(current)

	entries := make([]Entry, 0, stored.Len()+1)
	for _, p := range stored.Profiles() {
		if hasDerived && p.Name == derived.Name {
			hasDerived = false
		}
		entries = append(entries, Entry{Profile: p, Source: SourceStored})
	}
	if hasDerived {
		entries = append(entries, Entry{Profile: derived, Source: SourceDerived})
	}

	for i := range entries {
		if EqualFold(entries[i].Registry, current.Email) {
			entries[i].Active = true
			break
		}
	}
	return entries
}

// derivedProfile builds the synthetic profile for git's current identity
func derivedProfile(current git.Identity) (registry.Profile, bool) {
	if !current.Configured() {
		return registry.Profile{}, false
	}
	return registry.Profile{
		Name:     current.Name,
		Registry: current.Email,
		Home:     current.Email,
	}, true
}

// ActiveEntry returns the entry marked active, if any
func ActiveEntry(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.Active {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup finds an entry by exact name, falling back to a unique
// case-insensitive match
func Lookup(entries []Entry, name string) (Entry, bool) {
	if e, ok := findExact(entries, name); ok {
		return e, true
	}

	var found Entry
	matches := 0
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			found = e
			matches++
		}
	}
	if matches != 1 {
		return Entry{}, false
	}
	return found, true
}

func findExact(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// EqualFold compares registry/email values case-insensitively. Empty values
// never match anything, including each other.
func EqualFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
