// internal/registry/registry.go
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"mergington-activities/internal/models"
	"mergington-activities/pkg/catalog"
)

var (
	ErrActivityNotFound = errors.New("ACTIVITY_NOT_FOUND")
	ErrAlreadySignedUp  = errors.New("ALREADY_SIGNED_UP")
	ErrNotRegistered    = errors.New("NOT_REGISTERED")
	ErrActivityFull     = errors.New("ACTIVITY_FULL")
)

// entry pairs an activity with its own lock. The registry map and name order
// never change after seeding; only the roster behind each lock mutates.
type entry struct {
	mu       sync.RWMutex
	activity models.Activity
}

// Registry holds the authoritative activity rosters. All lookups are by
// exact, case-sensitive name.
type Registry struct {
	entries map[string]*entry
	order   []string
}

// New seeds a registry from a catalog. Seeding is the only moment activities
// are created; it rejects catalogs that would violate a roster invariant.
func New(cat *catalog.Catalog) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]*entry, len(cat.Activities)),
		order:   make([]string, 0, len(cat.Activities)),
	}

	for _, e := range cat.Activities {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry missing name")
		}
		if _, exists := r.entries[e.Name]; exists {
			return nil, fmt.Errorf("duplicate activity name %q", e.Name)
		}

		act := e.Activity()
		if act.MaxParticipants < 1 {
			return nil, fmt.Errorf("activity %q: max_participants must be positive, got %d", e.Name, act.MaxParticipants)
		}
		seen := make(map[string]struct{}, len(act.Participants))
		for _, p := range act.Participants {
			if _, dup := seen[p]; dup {
				return nil, fmt.Errorf("activity %q: duplicate participant %q", e.Name, p)
			}
			seen[p] = struct{}{}
		}
		if len(act.Participants) > act.MaxParticipants {
			return nil, fmt.Errorf("activity %q: %d participants exceed capacity %d", e.Name, len(act.Participants), act.MaxParticipants)
		}

		r.entries[e.Name] = &entry{activity: act}
		r.order = append(r.order, e.Name)
	}

	return r, nil
}

// Snapshot is a point-in-time view of every activity. It marshals as a JSON
// object whose keys keep catalog order rather than Go's sorted-map order.
type Snapshot struct {
	Names      []string
	Activities map[string]models.Activity
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.Activities[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// List returns a snapshot of all activities in catalog order. Each record is
// copied under its own read lock, so no partially mutated roster is visible.
func (r *Registry) List() Snapshot {
	snap := Snapshot{
		Names:      make([]string, len(r.order)),
		Activities: make(map[string]models.Activity, len(r.order)),
	}
	copy(snap.Names, r.order)

	for _, name := range r.order {
		e := r.entries[name]
		e.mu.RLock()
		snap.Activities[name] = e.activity.Clone()
		e.mu.RUnlock()
	}
	return snap
}

// Activity returns a copy of one activity's record.
func (r *Registry) Activity(name string) (models.Activity, error) {
	e, ok := r.entries[name]
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: no such activity %q", ErrActivityNotFound, name)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activity.Clone(), nil
}

// Signup appends email to the activity's roster. The duplicate check runs
// before the capacity check, so a student already on a full roster gets the
// duplicate error.
func (r *Registry) Signup(name, email string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: no such activity %q", ErrActivityNotFound, name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activity.HasParticipant(email) {
		return fmt.Errorf("%w: %s already on roster of %q", ErrAlreadySignedUp, email, name)
	}
	if e.activity.IsFull() {
		return fmt.Errorf("%w: %q is at capacity %d", ErrActivityFull, name, e.activity.MaxParticipants)
	}

	e.activity.Participants = append(e.activity.Participants, email)
	return nil
}

// Unregister removes email from the activity's roster. Rosters hold no
// duplicates, so removing the single match is unambiguous.
func (r *Registry) Unregister(name, email string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: no such activity %q", ErrActivityNotFound, name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i, p := range e.activity.Participants {
		if p == email {
			e.activity.Participants = append(e.activity.Participants[:i], e.activity.Participants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not on roster of %q", ErrNotRegistered, email, name)
}
