package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayethu/voiceledger/internal/api/middleware"
	"github.com/ayethu/voiceledger/internal/domain"
	"github.com/ayethu/voiceledger/internal/notionstore"
	"github.com/rs/zerolog"
)

// TranscriptionService runs one voice submission through the model pipeline.
type TranscriptionService interface {
	Process(ctx context.Context, audio []byte, mimeType string) (domain.TranscriptionResult, error)
}

// TransactionStore persists a confirmed draft and returns its external ID.
type TransactionStore interface {
	Save(ctx context.Context, draft domain.TransactionDraft, transcriptFallbackTitle string) (string, error)
}

// TranscribeHandler handles the transcription endpoint.
type TranscribeHandler struct {
	transcriber TranscriptionService
	log         zerolog.Logger
}

// NewTranscribeHandler creates a new transcribe handler.
func NewTranscribeHandler(transcriber TranscriptionService, log zerolog.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: transcriber,
		log:         log,
	}
}

// Transcribe handles POST /api/transcribe-process.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Audio    string `json:"audio"`
		MimeType string `json:"mimeType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Audio == "" || req.MimeType == "" {
		middleware.WriteError(w, http.StatusBadRequest, "audio and mimeType are required")
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "audio must be base64-encoded")
		return
	}

	result, err := h.transcriber.Process(r.Context(), audio, req.MimeType)
	if err != nil {
		// Malformed model output is absorbed into a degraded draft upstream;
		// an error here means the model capability itself failed.
		h.log.Error().Err(err).Msg("Failed to process audio")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process audio")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"originalTranscript": result.Transcript,
		"extractedData":      result.Draft,
		"degraded":           result.Degraded,
	})
}

// SaveHandler handles the save endpoint.
type SaveHandler struct {
	store TransactionStore
	log   zerolog.Logger
}

// NewSaveHandler creates a new save handler.
func NewSaveHandler(store TransactionStore, log zerolog.Logger) *SaveHandler {
	return &SaveHandler{
		store: store,
		log:   log,
	}
}

// saveRequest uses pointer fields so missing keys are distinguishable from
// zero values; the note key must exist even when its value is empty.
type saveRequest struct {
	Transcript    string `json:"transcript"`
	ExtractedData *struct {
		Type     *string  `json:"type"`
		Amount   *float64 `json:"amount"`
		Category *string  `json:"category"`
		Date     *string  `json:"date"`
		Note     *string  `json:"note"`
	} `json:"extractedData"`
}

// Save handles POST /api/save-transaction.
func (h *SaveHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	data := req.ExtractedData
	if data == nil || data.Type == nil || data.Amount == nil || data.Category == nil || data.Date == nil || data.Note == nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid or incomplete transaction data provided")
		return
	}

	draft := domain.TransactionDraft{
		Type:     *data.Type,
		Amount:   *data.Amount,
		Category: *data.Category,
		Date:     *data.Date,
		Note:     *data.Note,
	}

	pageID, err := h.store.Save(r.Context(), draft, req.Transcript)
	if err != nil {
		var verr *notionstore.ValidationError
		if errors.As(err, &verr) {
			middleware.WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.log.Error().Err(err).Msg("Failed to save transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notionPageId":  pageID,
		"extractedData": draft,
	})
}
