// internal/api/activities/models.go
package activities

// MessageResponse is the success payload for signup and unregister.
type MessageResponse struct {
	Message string `json:"message"`
}
