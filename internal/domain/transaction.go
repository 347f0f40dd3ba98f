package domain

// TransactionDraft is the canonical record shape flowing through the whole
// pipeline: extracted from a voice note, reviewed client-side, then saved.
// A draft leaving the normalizer always has all five fields populated.
type TransactionDraft struct {
	Type     string  `json:"type"`     // "Income" or "Expense"
	Amount   float64 `json:"amount"`   // non-negative; must be > 0 to save
	Category string  `json:"category"` // one of the fixed category set
	Date     string  `json:"date"`     // "YYYY-MM-DD"
	Note     string  `json:"note"`     // free-form, may be empty
}

// TranscriptionResult pairs the raw transcript with the normalized draft.
// Degraded is true when any field needed a fallback substitution, signaling
// the caller to prompt for manual review more insistently.
type TranscriptionResult struct {
	Transcript string           `json:"transcript"`
	Draft      TransactionDraft `json:"draft"`
	Degraded   bool             `json:"degraded"`
}
