// Package registry holds the persisted set of named git identity profiles.
package registry

// Profile is a named identity. Registry is the email used to recognise the
// profile as active; Home is the email written to git when switching to it.
type Profile struct {
	Name     string `json:"-"`
	Registry string `json:"registry"`
	Home     string `json:"home"`
}

// Registry is an insertion-ordered mapping from profile name to Profile.
// Names are case-sensitive keys.
type Registry struct {
	order    []string
	profiles map[string]Profile
}

// New returns an empty Registry
func New() *Registry {
	return &Registry{profiles: map[string]Profile{}}
}

// Len returns the number of profiles
func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns the profile stored under name
func (r *Registry) Get(name string) (Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Set inserts p, or replaces the profile with the same name in place
func (r *Registry) Set(p Profile) {
	if _, ok := r.profiles[p.Name]; !ok {
		r.order = append(r.order, p.Name)
	}
	r.profiles[p.Name] = p
}

// Delete removes the named profile, reporting whether it existed
func (r *Registry) Delete(name string) bool {
	if _, ok := r.profiles[name]; !ok {
		return false
	}
	delete(r.profiles, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Profiles returns profiles in insertion order
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.profiles[n])
	}
	return out
}
