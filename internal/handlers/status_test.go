package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"illumicheck/internal/dictionary"
	"illumicheck/internal/service/mocks"
)

func TestStatusHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSpellService := mocks.NewMockSpellService(ctrl)
	mockSpellService.EXPECT().Status(gomock.Any()).Return(dictionary.Status{
		Ready:    true,
		Loading:  true,
		Words:    1200,
		Progress: 50,
	})

	handler := NewStatusHandler(mockSpellService)
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, http.StatusOK)
	}
	if strings.Contains(w.Body.String(), "last_error") {
		t.Errorf("last_error should be omitted when empty, got %s", w.Body.String())
	}

	var resp StatusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := StatusResponse{Ready: true, Loading: true, Words: 1200, Progress: 50}
	if resp != want {
		t.Errorf("response = %+v, want %+v", resp, want)
	}
}

func TestStatusHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewStatusHandler(mocks.NewMockSpellService(ctrl))
	req := httptest.NewRequest(http.MethodDelete, "/api/status", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("ServeHTTP() status = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestEditorHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	EditorHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("EditorHandler() status = %v, want %v", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "/api/sessions") {
		t.Error("editor page should talk to the session API")
	}
}
