// pkg/catalog/schema.go
package catalog

import "mergington-activities/internal/models"

// Catalog is the persisted seed document the registry boots from.
type Catalog struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"lastUpdated"`
	Activities  []Entry `json:"activities"`
}

// Entry is one catalog row. Field names follow the API wire shape so a
// catalog file reads the same as a GET /activities response entry.
type Entry struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Activity converts the entry to its registry record.
func (e Entry) Activity() models.Activity {
	participants := make([]string, len(e.Participants))
	copy(participants, e.Participants)
	return models.Activity{
		Description:     e.Description,
		Schedule:        e.Schedule,
		MaxParticipants: e.MaxParticipants,
		Participants:    participants,
	}
}
