package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"illumicheck/internal/checker"
	"illumicheck/internal/service"
)

// maxBodyBytes bounds request bodies; texts are capped at service.MaxTextLength runes.
const maxBodyBytes = 8 << 20

// CheckRequest represents the HTTP request payload for a check.
//
// swagger:model CheckRequest
type CheckRequest struct {
	// Full current text of the document
	Text string `json:"text"`
}

// MisspellingResponse is one misspelled token. Start and End are character offsets.
//
// swagger:model MisspellingResponse
type MisspellingResponse struct {
	Word  string `json:"word"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// CheckResponse represents the HTTP response payload for a check.
//
// swagger:model CheckResponse
type CheckResponse struct {
	// False while the dictionary is still loading
	Ready bool `json:"ready"`
	// True when the previous result was reused
	Reused       bool                  `json:"reused"`
	Misspellings []MisspellingResponse `json:"misspellings"`
	// Distinct misspelled words, sorted
	Words []string `json:"words"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toCheckResponse(resp service.CheckResponse) CheckResponse {
	out := CheckResponse{
		Ready:        resp.Ready,
		Reused:       resp.Reused,
		Misspellings: toMisspellings(resp.Misspellings),
		Words:        resp.Words,
	}
	if out.Words == nil {
		out.Words = []string{}
	}
	return out
}

func toMisspellings(ms []checker.Misspelling) []MisspellingResponse {
	out := make([]MisspellingResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MisspellingResponse{Word: m.Word, Text: m.Text, Start: m.Start, End: m.End})
	}
	return out
}

// decodeCheckRequest reads a CheckRequest body.
func decodeCheckRequest(w http.ResponseWriter, r *http.Request) (CheckRequest, error) {
	var req CheckRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return CheckRequest{}, err
	}
	return req, nil
}

// writeJSON writes v as a JSON response with statusCode.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, r *http.Request, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, defaultMsg string) {
	ctx := r.Context()

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "invalid request", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		logger.WarnContext(ctx, "invalid request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		logger.WarnContext(ctx, "resource not found", "error", err)
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	if errors.Is(err, service.ErrSessionLimit) {
		logger.WarnContext(ctx, "session limit reached", "error", err)
		writeError(w, http.StatusTooManyRequests, "Too many open sessions")
		return
	}

	// Default to internal server error
	logger.ErrorContext(ctx, "service error", "error", err)
	writeError(w, http.StatusInternalServerError, defaultMsg)
}
