package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shashankvwali/VoltGo/internal/api/middleware"
	"github.com/Shashankvwali/VoltGo/internal/api/models"
	"github.com/Shashankvwali/VoltGo/internal/api/response"
	"github.com/Shashankvwali/VoltGo/internal/session"
	"github.com/Shashankvwali/VoltGo/internal/station"
)

// TokenIssuer issues bearer tokens for new sessions.
type TokenIssuer interface {
	Issue(sessionID string) (string, time.Time, error)
}

// SessionHandler handles the per-session search and reservation endpoints.
type SessionHandler struct {
	sessions *session.Service
	tokens   TokenIssuer
	logger   zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Service, tokens TokenIssuer, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// CreateSession handles POST /v1/sessions - start a session and issue its token.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, snap, err := h.sessions.Create(r.Context())
	if err != nil {
		h.internalError(w, r, err, "session could not be created")
		return
	}

	token, expiresAt, err := h.tokens.Issue(id)
	if err != nil {
		_ = h.sessions.End(r.Context(), id)
		h.internalError(w, r, err, "session could not be created")
		return
	}

	response.Created(w, r, "/v1/session", models.SessionCreated{
		Token:     token,
		ExpiresAt: models.Timestamp(expiresAt),
		View:      toView(snap),
	})
}

// GetSession handles GET /v1/session - the current view.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.View(r.Context(), middleware.GetSessionID(r.Context()))
	h.writeView(w, r, snap, err)
}

// EndSession handles DELETE /v1/session - discard the session.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		h.sessionError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// Search handles POST /v1/session/search - run a location search.
// A query without matches still returns 200 with the not-found message.
func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	snap, err := h.sessions.Search(r.Context(), middleware.GetSessionID(r.Context()), req.Query)
	h.writeView(w, r, snap, err)
}

// Reserve handles POST /v1/session/stations/{stationId}/reservation.
// Requests for occupied, hidden or already reserved stations return the
// unchanged view.
func (h *SessionHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, ok := stationIDParam(w, r)
	if !ok {
		return
	}

	snap, err := h.sessions.Reserve(r.Context(), middleware.GetSessionID(r.Context()), id)
	h.writeView(w, r, snap, err)
}

// Cancel handles DELETE /v1/session/stations/{stationId}/reservation.
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := stationIDParam(w, r)
	if !ok {
		return
	}

	snap, err := h.sessions.Cancel(r.Context(), middleware.GetSessionID(r.Context()), id)
	h.writeView(w, r, snap, err)
}

func (h *SessionHandler) writeView(w http.ResponseWriter, r *http.Request, snap station.Snapshot, err error) {
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, toView(snap))
}

func (h *SessionHandler) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		response.NotFound(w, r, "session not found or expired")
		return
	}
	h.internalError(w, r, err, "session request failed")
}

func (h *SessionHandler) internalError(w http.ResponseWriter, r *http.Request, err error, detail string) {
	h.logger.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("session_id", middleware.GetSessionID(r.Context())).
		Msg(detail)
	response.InternalError(w, r, detail)
}
