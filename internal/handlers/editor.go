package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed editor.html
var editorHTML []byte

// EditorHandler serves a minimal browser editor that re-checks the whole
// text on every key release through a checker session.
func EditorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(editorHTML)
}
