package handlers

import (
	"log/slog"
	"net/http"

	"illumicheck/internal/contextutil"
	"illumicheck/internal/service"
)

// StatusHandler reports the dictionary load state.
type StatusHandler struct {
	spellService service.SpellService
	logger       *slog.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(spellService service.SpellService) *StatusHandler {
	return &StatusHandler{
		spellService: spellService,
		logger:       slog.Default(),
	}
}

// StatusResponse represents the dictionary load state.
//
// swagger:model StatusResponse
type StatusResponse struct {
	Ready     bool    `json:"ready"`
	Loading   bool    `json:"loading"`
	Words     int     `json:"words"`
	Progress  float64 `json:"progress"`
	LastError string  `json:"last_error,omitempty"`
}

// ServeHTTP handles HTTP requests for the load status.
//
// swagger:route GET /api/status dictionaryStatus
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/StatusResponse"
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx, h.logger)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	st := h.spellService.Status(ctx)
	writeJSON(w, logger, r, http.StatusOK, StatusResponse{
		Ready:     st.Ready,
		Loading:   st.Loading,
		Words:     st.Words,
		Progress:  st.Progress,
		LastError: st.LastError,
	})
}
