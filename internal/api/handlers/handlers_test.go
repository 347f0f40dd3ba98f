package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayethu/voiceledger/internal/domain"
	"github.com/ayethu/voiceledger/internal/notionstore"
	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTranscriptionService is a test double for the model pipeline.
type mockTranscriptionService struct {
	ProcessFunc func(ctx context.Context, audio []byte, mimeType string) (domain.TranscriptionResult, error)
}

func (m *mockTranscriptionService) Process(ctx context.Context, audio []byte, mimeType string) (domain.TranscriptionResult, error) {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, audio, mimeType)
	}
	return domain.TranscriptionResult{}, nil
}

// mockNotionService backs a real notionstore.Store so handler tests exercise
// the store's validation rules.
type mockNotionService struct {
	CreatePageFunc func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
}

func (m *mockNotionService) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(ctx, databaseID, properties)
	}
	return &notionapi.Page{ID: "page-123"}, nil
}

func newTestRouter(transcriber TranscriptionService, notion notionstore.NotionService) http.Handler {
	log := zerolog.Nop()
	store := notionstore.NewStore(notion, "db-1", log)
	return NewRouter(
		NewTranscribeHandler(transcriber, log),
		NewSaveHandler(store, log),
	)
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTranscribe_Success(t *testing.T) {
	transcriber := &mockTranscriptionService{
		ProcessFunc: func(_ context.Context, audio []byte, mimeType string) (domain.TranscriptionResult, error) {
			assert.Equal(t, []byte("audio bytes"), audio)
			assert.Equal(t, "audio/webm", mimeType)
			return domain.TranscriptionResult{
				Transcript: "bought lunch for 5000",
				Draft: domain.TransactionDraft{
					Type: "Expense", Amount: 5000, Category: "Food", Date: "2025-06-01", Note: "lunch",
				},
			}, nil
		},
	}

	handler := newTestRouter(transcriber, &mockNotionService{})
	rec := doRequest(t, handler, http.MethodPost, "/api/transcribe-process", map[string]string{
		"audio":    base64.StdEncoding.EncodeToString([]byte("audio bytes")),
		"mimeType": "audio/webm",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OriginalTranscript string                  `json:"originalTranscript"`
		ExtractedData      domain.TransactionDraft `json:"extractedData"`
		Degraded           bool                    `json:"degraded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bought lunch for 5000", resp.OriginalTranscript)
	assert.Equal(t, "Food", resp.ExtractedData.Category)
	assert.False(t, resp.Degraded)
}

func TestTranscribe_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing audio", map[string]string{"mimeType": "audio/webm"}},
		{"missing mimeType", map[string]string{"audio": "aGk="}},
		{"audio not base64", map[string]string{"audio": "!!not base64!!", "mimeType": "audio/webm"}},
	}

	handler := newTestRouter(&mockTranscriptionService{}, &mockNotionService{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/transcribe-process", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTranscribe_ModelFailure(t *testing.T) {
	transcriber := &mockTranscriptionService{
		ProcessFunc: func(context.Context, []byte, string) (domain.TranscriptionResult, error) {
			return domain.TranscriptionResult{Degraded: true}, errors.New("model unreachable")
		},
	}

	handler := newTestRouter(transcriber, &mockNotionService{})
	rec := doRequest(t, handler, http.MethodPost, "/api/transcribe-process", map[string]string{
		"audio":    "aGk=",
		"mimeType": "audio/webm",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "model unreachable", "upstream detail must not leak")
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&mockTranscriptionService{}, &mockNotionService{})

	for _, path := range []string{"/api/transcribe-process", "/api/save-transaction"} {
		t.Run(path, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func saveBody(amount interface{}) map[string]interface{} {
	return map[string]interface{}{
		"transcript": "bought lunch",
		"extractedData": map[string]interface{}{
			"type":     "Expense",
			"amount":   amount,
			"category": "Food",
			"date":     "2025-06-01",
			"note":     "lunch",
		},
	}
}

func TestSave_Success(t *testing.T) {
	handler := newTestRouter(&mockTranscriptionService{}, &mockNotionService{})
	rec := doRequest(t, handler, http.MethodPost, "/api/save-transaction", saveBody(15000))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		NotionPageID  string                  `json:"notionPageId"`
		ExtractedData domain.TransactionDraft `json:"extractedData"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "page-123", resp.NotionPageID)
	assert.Equal(t, float64(15000), resp.ExtractedData.Amount)
}

func TestSave_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"negative amount", saveBody(-5)},
		{"zero amount", saveBody(0)},
		{"non-numeric amount", saveBody("fifteen thousand")},
		{"missing extractedData", map[string]interface{}{"transcript": "x"}},
		{
			"missing note key", map[string]interface{}{
				"transcript": "x",
				"extractedData": map[string]interface{}{
					"type": "Expense", "amount": 100, "category": "Food", "date": "2025-06-01",
				},
			},
		},
	}

	handler := newTestRouter(&mockTranscriptionService{}, &mockNotionService{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/save-transaction", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSave_EmptyNoteIsAccepted(t *testing.T) {
	var got notionapi.Properties
	notion := &mockNotionService{
		CreatePageFunc: func(_ context.Context, _ string, props notionapi.Properties) (*notionapi.Page, error) {
			got = props
			return &notionapi.Page{ID: "page-123"}, nil
		},
	}

	body := saveBody(100)
	body["extractedData"].(map[string]interface{})["note"] = ""

	handler := newTestRouter(&mockTranscriptionService{}, notion)
	rec := doRequest(t, handler, http.MethodPost, "/api/save-transaction", body)

	require.Equal(t, http.StatusOK, rec.Code)

	// With an empty note, the transcript becomes the page title.
	title := got["Name"].(notionapi.TitleProperty)
	require.Len(t, title.Title, 1)
	assert.Equal(t, "bought lunch", title.Title[0].Text.Content)
}

func TestSave_StoreFailure(t *testing.T) {
	notion := &mockNotionService{
		CreatePageFunc: func(context.Context, string, notionapi.Properties) (*notionapi.Page, error) {
			return nil, errors.New("unauthorized")
		},
	}

	handler := newTestRouter(&mockTranscriptionService{}, notion)
	rec := doRequest(t, handler, http.MethodPost, "/api/save-transaction", saveBody(100))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "unauthorized", "upstream detail must not leak")
}

func TestHealth(t *testing.T) {
	handler := newTestRouter(&mockTranscriptionService{}, &mockNotionService{})
	rec := doRequest(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
