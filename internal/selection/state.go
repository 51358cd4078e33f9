// Package selection tracks which roles the operator has chosen.
//
// The chosen set is the only source of truth. The two aggregate flags only
// record which bulk action was applied last so the menu can render it; any
// individual toggle clears them.
package selection

import (
	"fmt"

	"github.com/hemantobora/auto-provision/internal/catalog"
	"github.com/hemantobora/auto-provision/internal/models"
)

// State is owned by a single session and is not safe for concurrent use.
type State struct {
	catalog        *catalog.Catalog
	chosen         map[string]bool
	standardActive bool
	completeActive bool
}

// New returns an empty selection over c
func New(c *catalog.Catalog) *State {
	return &State{
		catalog: c,
		chosen:  make(map[string]bool),
	}
}

// Catalog returns the catalog the selection is bound to
func (s *State) Catalog() *catalog.Catalog { return s.catalog }

// Toggle adds name if absent and removes it if present.
func (s *State) Toggle(name string) error {
	if !s.catalog.Contains(name) {
		return &models.InvalidFeatureError{Name: name}
	}
	if s.chosen[name] {
		delete(s.chosen, name)
	} else {
		s.chosen[name] = true
	}
	s.standardActive = false
	s.completeActive = false
	return nil
}

// ToggleIndex toggles the role at a 0-based catalog position
func (s *State) ToggleIndex(i int) error {
	name, ok := s.catalog.At(i)
	if !ok {
		return &models.InvalidFeatureError{Name: fmt.Sprintf("#%d", i+1)}
	}
	return s.Toggle(name)
}

// ApplyAggregate selects the aggregate's roles. Applying the aggregate that is
// already active clears the whole selection instead.
func (s *State) ApplyAggregate(kind catalog.Aggregate) error {
	set, err := s.catalog.Set(kind)
	if err != nil {
		return err
	}
	if s.isActive(kind) {
		s.Clear()
		return nil
	}
	s.chosen = make(map[string]bool, len(set))
	for _, name := range set {
		s.chosen[name] = true
	}
	s.standardActive = kind == catalog.Standard
	s.completeActive = kind == catalog.Complete
	return nil
}

// Select sets the chosen roles to exactly names. Used for non-interactive runs.
func (s *State) Select(names ...string) error {
	next := make(map[string]bool, len(names))
	for _, name := range names {
		if !s.catalog.Contains(name) {
			return &models.InvalidFeatureError{Name: name}
		}
		next[name] = true
	}
	s.chosen = next
	s.standardActive = false
	s.completeActive = false
	return nil
}

// Clear empties the selection and both aggregate flags
func (s *State) Clear() {
	s.chosen = make(map[string]bool)
	s.standardActive = false
	s.completeActive = false
}

func (s *State) isActive(kind catalog.Aggregate) bool {
	switch kind {
	case catalog.Standard:
		return s.standardActive
	case catalog.Complete:
		return s.completeActive
	}
	return false
}

// Has reports whether name is chosen
func (s *State) Has(name string) bool { return s.chosen[name] }

// IsEmpty reports whether nothing is chosen
func (s *State) IsEmpty() bool { return len(s.chosen) == 0 }

// Len returns the number of chosen roles
func (s *State) Len() int { return len(s.chosen) }

// StandardActive reports whether "standard" was the last bulk action
func (s *State) StandardActive() bool { return s.standardActive }

// CompleteActive reports whether "complete" was the last bulk action
func (s *State) CompleteActive() bool { return s.completeActive }

// AggregateActive reports the flag for kind
func (s *State) AggregateActive(kind catalog.Aggregate) bool { return s.isActive(kind) }

// Snapshot returns the chosen roles in catalog order
func (s *State) Snapshot() []string {
	out := make([]string, 0, len(s.chosen))
	for _, name := range s.catalog.Features() {
		if s.chosen[name] {
			out = append(out, name)
		}
	}
	return out
}
