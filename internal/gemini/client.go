// Package gemini wraps the Google GenAI SDK behind the pipeline's
// SpeechModel interface. Credentials are read from the environment by the
// SDK itself (GEMINI_API_KEY).
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Client issues text and audio generation requests against a single model.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. An empty model selects DefaultModel.
func NewClient(ctx context.Context, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewClient: create genai client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Client{client: c, model: model}, nil
}

// Generate sends the prompt, with the audio attached inline when present,
// and returns the model's text response. A single attempt, no retries.
func (c *Client) Generate(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		{Text: prompt},
	}
	if len(audio) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     audio,
			},
		})
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: parts,
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Generate: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Generate: empty response from model")
	}

	return text, nil
}
