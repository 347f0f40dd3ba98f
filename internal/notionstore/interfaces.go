package notionstore

import (
	"context"

	"github.com/jomei/notionapi"
)

// NotionService defines the outbound document-store capability.
// This interface enables mocking and testing of Notion operations.
type NotionService interface {
	// CreatePage creates a new page in a Notion database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
}
