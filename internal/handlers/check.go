package handlers

import (
	"log/slog"
	"net/http"

	"illumicheck/internal/contextutil"
	"illumicheck/internal/service"
)

// CheckHandler handles stateless check requests.
type CheckHandler struct {
	spellService service.SpellService
	logger       *slog.Logger
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(spellService service.SpellService) *CheckHandler {
	return &CheckHandler{
		spellService: spellService,
		logger:       slog.Default(),
	}
}

// ServeHTTP handles HTTP requests for a one-shot check.
//
// swagger:route POST /api/check checkText
//
// Check a text against the dictionary without keeping any state.
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/CheckResponse"
//	'400':
//	  description: Invalid request body
func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx, h.logger)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := decodeCheckRequest(w, r)
	if err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.spellService.CheckOnce(ctx, service.CheckRequest{Text: req.Text})
	if err != nil {
		handleServiceError(w, r, logger, err, "Failed to check text")
		return
	}

	writeJSON(w, logger, r, http.StatusOK, toCheckResponse(resp))
}
