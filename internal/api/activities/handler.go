// internal/api/activities/handler.go
package activities

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apierrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/registry"
)

type Handler struct {
	config    *Config
	registry  *registry.Registry
	logger    logger.Logger
	responder *apierrors.Responder
}

func NewHandler(config *Config, reg *registry.Registry, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"component": "activities-api"})
	return &Handler{
		config:    config,
		registry:  reg,
		logger:    scoped,
		responder: apierrors.NewResponder(scoped),
	}
}

// Register mounts the API routes. Method-qualified patterns let the mux
// answer mismatched verbs with 405 before any handler runs, and {name} /
// {email} segments arrive percent-decoded via PathValue.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /activities", h.handleList)
	mux.HandleFunc("POST /activities/{name}/signup", h.handleSignup)
	mux.HandleFunc("DELETE /activities/{name}/participants/{email}", h.handleUnregister)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.config.IndexRedirect, http.StatusTemporaryRedirect)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.registry.List())
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")

	if email == "" {
		metrics.RosterOperations.WithLabelValues("signup", "invalid").Inc()
		h.responder.WriteError(w, r, apierrors.NewMissingParameterError("email"))
		return
	}

	if err := h.registry.Signup(name, email); err != nil {
		metrics.RosterOperations.WithLabelValues("signup", outcome(err)).Inc()
		h.responder.WriteError(w, r, h.mapRegistryError(err, name, email))
		return
	}

	metrics.RosterOperations.WithLabelValues("signup", "ok").Inc()
	h.recordRosterSize(name)

	h.logger.Info("participant signed up", map[string]interface{}{
		"activity": name,
		"email":    email,
	})

	h.writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *Handler) handleUnregister(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.PathValue("email")

	if err := h.registry.Unregister(name, email); err != nil {
		metrics.RosterOperations.WithLabelValues("unregister", outcome(err)).Inc()
		h.responder.WriteError(w, r, h.mapRegistryError(err, name, email))
		return
	}

	metrics.RosterOperations.WithLabelValues("unregister", "ok").Inc()
	h.recordRosterSize(name)

	h.logger.Info("participant unregistered", map[string]interface{}{
		"activity": name,
		"email":    email,
	})

	h.writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// mapRegistryError translates registry sentinels into API errors carrying
// the offending identifiers.
func (h *Handler) mapRegistryError(err error, name, email string) error {
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		return apierrors.NewActivityNotFoundError(name)
	case errors.Is(err, registry.ErrAlreadySignedUp):
		return apierrors.NewAlreadySignedUpError(email, name)
	case errors.Is(err, registry.ErrNotRegistered):
		return apierrors.NewNotRegisteredError(email, name)
	case errors.Is(err, registry.ErrActivityFull):
		return apierrors.NewActivityFullError(name)
	default:
		return apierrors.NewInternalError(err)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, registry.ErrAlreadySignedUp):
		return "duplicate"
	case errors.Is(err, registry.ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, registry.ErrActivityFull):
		return "full"
	default:
		return "error"
	}
}

func (h *Handler) recordRosterSize(name string) {
	if act, err := h.registry.Activity(name); err == nil {
		metrics.RosterSize.WithLabelValues(name).Set(float64(len(act.Participants)))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", map[string]interface{}{
			"error": err,
		})
	}
}
