package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"illumicheck/internal/contextutil"
	"illumicheck/internal/service"
)

// SessionHandler handles incremental checker sessions, one per open editor.
type SessionHandler struct {
	spellService service.SpellService
	logger       *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(spellService service.SpellService) *SessionHandler {
	return &SessionHandler{
		spellService: spellService,
		logger:       slog.Default(),
	}
}

// SessionResponse represents a created session.
//
// swagger:model SessionResponse
type SessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// Create opens a session.
//
// swagger:route POST /api/sessions createSession
//
// responses:
//
//	'201':
//	  schema:
//	    "$ref": "#/definitions/SessionResponse"
//	'429':
//	  description: Too many open sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx, h.logger)

	info, err := h.spellService.NewSession(ctx)
	if err != nil {
		handleServiceError(w, r, logger, err, "Failed to create session")
		return
	}

	writeJSON(w, logger, r, http.StatusCreated, SessionResponse{
		ID:        info.ID,
		CreatedAt: info.CreatedAt.Format(time.RFC3339),
	})
}

// Check runs the session's incremental checker on the full current text.
//
// swagger:route POST /api/sessions/{id}/check checkSession
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/CheckResponse"
//	'404':
//	  description: Unknown session
func (h *SessionHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	logger := contextutil.LoggerFromContext(ctx, h.logger).With("session_id", id)

	req, err := decodeCheckRequest(w, r)
	if err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.spellService.CheckSession(ctx, id, service.CheckRequest{Text: req.Text})
	if err != nil {
		handleServiceError(w, r, logger, err, "Failed to check text")
		return
	}

	writeJSON(w, logger, r, http.StatusOK, toCheckResponse(resp))
}

// Close drops a session.
//
// swagger:route DELETE /api/sessions/{id} closeSession
//
// responses:
//
//	'204':
//	  description: Session closed
//	'404':
//	  description: Unknown session
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	logger := contextutil.LoggerFromContext(ctx, h.logger).With("session_id", id)

	if err := h.spellService.CloseSession(ctx, id); err != nil {
		handleServiceError(w, r, logger, err, "Failed to close session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
