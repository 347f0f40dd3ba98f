package notionstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayethu/voiceledger/internal/domain"
	"github.com/ayethu/voiceledger/internal/schema"
	"github.com/jomei/notionapi"
)

// DraftToProperties maps a confirmed draft onto the expense database's
// property schema: Name (title), Type (select), Amount (number),
// Category (select) and Date (start date only, no range).
// The title falls back from note to the transcript to a literal "Transaction".
func DraftToProperties(draft domain.TransactionDraft, transcriptFallbackTitle string) (notionapi.Properties, error) {
	title := strings.TrimSpace(draft.Note)
	if title == "" {
		title = strings.TrimSpace(transcriptFallbackTitle)
	}
	if title == "" {
		title = "Transaction"
	}

	parsed, err := time.Parse(schema.DateLayout, draft.Date)
	if err != nil {
		return nil, fmt.Errorf("DraftToProperties: invalid date %q: %w", draft.Date, err)
	}
	start := notionapi.Date(parsed)

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: title,
					},
				},
			},
		},
		"Type": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: draft.Type,
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: draft.Amount,
		},
		"Category": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: draft.Category,
			},
		},
		"Date": notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &start,
			},
		},
	}

	return props, nil
}
