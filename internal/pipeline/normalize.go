package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ayethu/voiceledger/internal/domain"
	"github.com/ayethu/voiceledger/internal/schema"
)

// Normalizer coerces an untrusted model payload into a valid TransactionDraft.
// Every field is independently validated and independently recoverable: a
// failure in one field never blocks recovery of the others. The normalizer
// itself never returns an error; all failure modes resolve to a degraded
// draft, because human review downstream is the real correctness backstop.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer using the system clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerWithClock creates a normalizer with a fixed clock for tests.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize parses candidate as a JSON object with keys type, amount,
// category, date and note, substituting fallbacks for missing or invalid
// fields. The returned flag is true if any substitution occurred.
func (n *Normalizer) Normalize(candidate string) (domain.TransactionDraft, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return n.fallbackDraft(err, candidate), true
	}
	if obj == nil {
		return n.fallbackDraft(fmt.Errorf("payload is not a JSON object"), candidate), true
	}

	var draft domain.TransactionDraft
	degraded := false

	if t, ok := stringField(obj, "type"); ok && schema.ValidType(t) {
		draft.Type = t
	} else {
		draft.Type = schema.FallbackType
		degraded = true
	}

	if c, ok := stringField(obj, "category"); ok && schema.ValidCategory(c) {
		draft.Category = c
	} else {
		draft.Category = schema.FallbackCategory
		degraded = true
	}

	if d, ok := stringField(obj, "date"); ok && schema.ValidDate(d) {
		draft.Date = d
	} else {
		draft.Date = schema.Today(n.now())
		degraded = true
	}

	if a, ok := amountField(obj); ok {
		draft.Amount = a
	} else {
		draft.Amount = 0
		degraded = true
	}

	// A missing note never degrades the draft on its own.
	if note, ok := stringField(obj, "note"); ok {
		draft.Note = note
	}

	return draft, degraded
}

// fallbackDraft is the fixed safe default produced on total parse failure.
// The note carries a diagnostic so the reviewer can see what the model said.
func (n *Normalizer) fallbackDraft(cause error, raw string) domain.TransactionDraft {
	return domain.TransactionDraft{
		Type:     schema.FallbackType,
		Amount:   0,
		Category: schema.FallbackCategory,
		Date:     schema.Today(n.now()),
		Note:     fmt.Sprintf("could not parse model output: %v; raw output: %s", cause, raw),
	}
}

func stringField(obj map[string]interface{}, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// amountField coerces the amount to a non-negative number. Models return
// amounts both as JSON numbers and as numeric strings.
func amountField(obj map[string]interface{}) (float64, bool) {
	v, ok := obj["amount"]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		if val < 0 {
			return 0, false
		}
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || f < 0 {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
