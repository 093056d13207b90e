// Package sources holds the registry of price sources the service knows about.
package sources

import (
	"fmt"
	"strings"
)

// Source is a price source (sportsbook) and its display name
type Source struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

// Registry is an ordered, read-only mapping from source id to display name
type Registry struct {
	ordered []Source
	byID    map[string]string
}

// New builds a registry from sources in the given order
func New(list []Source) (*Registry, error) {
	r := &Registry{
		ordered: make([]Source, 0, len(list)),
		byID:    make(map[string]string, len(list)),
	}

	for _, s := range list {
		if s.ID == "" {
			return nil, fmt.Errorf("source id is required")
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate source id: %s", s.ID)
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}
		r.byID[s.ID] = name
		r.ordered = append(r.ordered, Source{ID: s.ID, Name: name})
	}

	return r, nil
}

// Name returns the display name for a source id
func (r *Registry) Name(id string) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}

// Contains reports whether id is registered
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns the registered ids in registration order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ordered))
	for i, s := range r.ordered {
		ids[i] = s.ID
	}
	return ids
}

// Joined returns the ids comma-joined, as the provider expects them
func (r *Registry) Joined() string {
	return strings.Join(r.IDs(), ",")
}

// All returns a copy of the registered sources in order
func (r *Registry) All() []Source {
	out := make([]Source, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered sources
func (r *Registry) Len() int {
	return len(r.ordered)
}
