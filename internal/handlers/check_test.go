package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"illumicheck/internal/checker"
	"illumicheck/internal/service"
	"illumicheck/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewCheckHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSpellService := mocks.NewMockSpellService(ctrl)
	handler := NewCheckHandler(mockSpellService)

	if handler == nil {
		t.Fatal("NewCheckHandler() returned nil")
	}
	if handler.spellService != mockSpellService {
		t.Error("NewCheckHandler() spellService not set correctly")
	}
}

func TestCheckHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		method        string
		body          string
		mockSetup     func(*mocks.MockSpellService)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "successful POST request",
			method: http.MethodPost,
			body:   `{"text":"hello wrold"}`,
			mockSetup: func(m *mocks.MockSpellService) {
				m.EXPECT().
					CheckOnce(gomock.Any(), service.CheckRequest{Text: "hello wrold"}).
					Return(service.CheckResponse{
						Ready:        true,
						Misspellings: []checker.Misspelling{{Word: "wrold", Text: "wrold", Start: 6, End: 11}},
						Words:        []string{"wrold"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp CheckResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				want := CheckResponse{
					Ready:        true,
					Misspellings: []MisspellingResponse{{Word: "wrold", Text: "wrold", Start: 6, End: 11}},
					Words:        []string{"wrold"},
				}
				if !reflect.DeepEqual(resp, want) {
					t.Errorf("response = %+v, want %+v", resp, want)
				}
			},
		},
		{
			name:   "empty result encodes empty arrays",
			method: http.MethodPost,
			body:   `{"text":""}`,
			mockSetup: func(m *mocks.MockSpellService) {
				m.EXPECT().
					CheckOnce(gomock.Any(), service.CheckRequest{Text: ""}).
					Return(service.CheckResponse{Ready: true}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				body := w.Body.String()
				if !bytes.Contains([]byte(body), []byte(`"misspellings":[]`)) || !bytes.Contains([]byte(body), []byte(`"words":[]`)) {
					t.Errorf("response = %s, want empty arrays", body)
				}
			},
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			mockSetup:  func(m *mocks.MockSpellService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "invalid JSON body",
			method:     http.MethodPost,
			body:       "invalid json",
			mockSetup:  func(m *mocks.MockSpellService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   `{"text":"x"}`,
			mockSetup: func(m *mocks.MockSpellService) {
				m.EXPECT().
					CheckOnce(gomock.Any(), gomock.Any()).
					Return(service.CheckResponse{}, &service.ValidationError{Field: "text", Message: "too long"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "service error",
			method: http.MethodPost,
			body:   `{"text":"x"}`,
			mockSetup: func(m *mocks.MockSpellService) {
				m.EXPECT().
					CheckOnce(gomock.Any(), gomock.Any()).
					Return(service.CheckResponse{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSpellService := mocks.NewMockSpellService(ctrl)
			tt.mockSetup(mockSpellService)

			handler := NewCheckHandler(mockSpellService)

			req := httptest.NewRequest(tt.method, "/api/check", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
