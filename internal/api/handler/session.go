package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storelocator/storelocator/internal/api/models"
	"github.com/storelocator/storelocator/internal/api/response"
	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/selection"
	"github.com/storelocator/storelocator/internal/session"
	"github.com/storelocator/storelocator/internal/theme"
)

// SessionHandler handles locator session endpoints.
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSession handles POST /v1/sessions - open a locator session.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	// The body is optional; a chunked request reports ContentLength -1, so
	// decode unconditionally and treat an empty body as defaults.
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	sess := h.sessions.Create(theme.ID(req.Theme))

	resp := models.SessionCreated{
		SessionID: sess.ID,
		Theme:     string(sess.Theme.ID),
		CreatedAt: models.Timestamp(sess.CreatedAt),
	}
	response.Created(w, r, "/v1/sessions/"+sess.ID, resp)
}

// GetSnapshot handles GET /v1/sessions/{sessionId} - full session state.
func (h *SessionHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	snap, err := h.sessions.Snapshot(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// DeleteSession handles DELETE /v1/sessions/{sessionId} - end a session.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	if err := h.sessions.Delete(id); err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// MarkerClick handles POST /v1/sessions/{sessionId}/marker-click - a resolved
// map tap. Origin and empty taps are accepted and leave the selection alone.
func (h *SessionHandler) MarkerClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	var req models.MarkerClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", errs)
		return
	}

	hit := selection.MarkerHit{Index: req.Index}
	switch req.Kind {
	case models.MarkerKindOrigin:
		hit.Kind = selection.HitOrigin
	case models.MarkerKindLocation:
		hit.Kind = selection.HitLocation
	default:
		hit.Kind = selection.HitNone
	}

	if err := h.sessions.MarkerClick(r.Context(), id, hit, directions.Profile(req.Profile)); err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	snap, err := h.sessions.Snapshot(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// CardClick handles POST /v1/sessions/{sessionId}/card-click - a card list
// tap, which toggles the selection at that index.
func (h *SessionHandler) CardClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	var req models.CardClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", errs)
		return
	}

	if err := h.sessions.CardClick(r.Context(), id, req.Index, directions.Profile(req.Profile)); err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	snap, err := h.sessions.Snapshot(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// ClearSelection handles DELETE /v1/sessions/{sessionId}/selection.
func (h *SessionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	if err := h.sessions.ClearSelection(id); err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// NavigationHandOff handles GET /v1/sessions/{sessionId}/navigation - the
// payload for an external turn-by-turn surface.
func (h *SessionHandler) NavigationHandOff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	handOff, err := h.sessions.NavigationHandOff(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNoSelection) {
			response.BadRequest(w, r, "no location selected", nil)
			return
		}
		h.writeSessionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, handOff)
}

// writeSessionError maps session and catalog errors to problem responses.
func (h *SessionHandler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(w, r, "session not found")
	case errors.Is(err, catalog.ErrLocationNotFound):
		response.NotFound(w, r, "location not found")
	default:
		response.InternalError(w, r, "session operation failed")
	}
}
