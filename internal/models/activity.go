// internal/models/activity.go
package models

// Activity is the wire shape of a single extracurricular activity. The
// participant list is ordered by signup time, earliest first.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a deep copy so callers can hold the value without observing
// later roster mutations.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// IsFull reports whether the roster reached MaxParticipants.
func (a Activity) IsFull() bool {
	return a.MaxParticipants > 0 && len(a.Participants) >= a.MaxParticipants
}

// HasParticipant reports whether email is on the roster. Comparison is
// case-sensitive, matching the registry's treatment of identifiers.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}
