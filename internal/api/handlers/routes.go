package handlers

import (
	"net/http"
	"time"

	"github.com/ayethu/voiceledger/internal/api/middleware"
)

// NewRouter wires the API endpoints. Both transaction endpoints are
// POST-only; anything else gets a 405.
func NewRouter(transcribe *TranscribeHandler, save *SaveHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transcribe-process", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transcribe.Transcribe(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/save-transaction", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			save.Save(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return mux
}
