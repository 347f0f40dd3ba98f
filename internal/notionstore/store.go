package notionstore

import (
	"context"
	"fmt"

	"github.com/ayethu/voiceledger/internal/domain"
	"github.com/rs/zerolog"
)

// ValidationError marks a save rejected before reaching the external store.
// Callers map it to a client error rather than a generic save failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Store writes confirmed transaction drafts to a single Notion database.
type Store struct {
	notion     NotionService
	databaseID string
	log        zerolog.Logger
}

// NewStore creates a store targeting the given database.
func NewStore(notion NotionService, databaseID string, log zerolog.Logger) *Store {
	return &Store{
		notion:     notion,
		databaseID: databaseID,
		log:        log,
	}
}

// Save validates the draft and creates one page for it, returning the
// created page's ID. Saving is stricter than the draft stage: the amount
// must be positive, and type, category and date must be present. Any error
// from the store itself is returned unwrapped into a generic save failure;
// there is no retry.
func (s *Store) Save(ctx context.Context, draft domain.TransactionDraft, transcriptFallbackTitle string) (string, error) {
	if draft.Amount <= 0 {
		return "", validationErrorf("amount must be greater than 0, got %v", draft.Amount)
	}
	if draft.Type == "" || draft.Category == "" || draft.Date == "" {
		return "", validationErrorf("type, category and date are required")
	}

	props, err := DraftToProperties(draft, transcriptFallbackTitle)
	if err != nil {
		return "", validationErrorf("date must be a valid YYYY-MM-DD date, got %q", draft.Date)
	}

	page, err := s.notion.CreatePage(ctx, s.databaseID, props)
	if err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}

	s.log.Info().
		Str("page_id", string(page.ID)).
		Str("type", draft.Type).
		Str("category", draft.Category).
		Float64("amount", draft.Amount).
		Msg("Transaction saved to Notion")

	return string(page.ID), nil
}
