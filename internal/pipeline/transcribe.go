package pipeline

import (
	"context"
	"fmt"

	"github.com/ayethu/voiceledger/internal/domain"
	"github.com/rs/zerolog"
)

// SpeechModel is the outbound generative-model capability. Audio is nil for
// text-only stages. Implementations are injectable so tests can substitute
// a double for the real client.
type SpeechModel interface {
	Generate(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
}

// Transcriber drives the staged model calls for one voice submission and
// feeds the final stage's output through the sanitizer and normalizer.
type Transcriber struct {
	model      SpeechModel
	normalizer *Normalizer
	stages     []Stage
	log        zerolog.Logger
}

// NewTranscriber creates a transcriber over the given stage sequence.
func NewTranscriber(model SpeechModel, normalizer *Normalizer, stages []Stage, log zerolog.Logger) *Transcriber {
	return &Transcriber{
		model:      model,
		normalizer: normalizer,
		stages:     stages,
		log:        log,
	}
}

// Process runs the audio through every stage and normalizes the result.
// A model-capability failure returns a non-nil error alongside the
// total-failure fallback draft, paired with whatever partial transcript was
// obtained; malformed model output is absorbed into a degraded draft and is
// not an error.
func (t *Transcriber) Process(ctx context.Context, audio []byte, mimeType string) (domain.TranscriptionResult, error) {
	var text, transcript string

	for i, stage := range t.stages {
		stageAudio := []byte(nil)
		stageMime := ""
		if i == 0 {
			stageAudio = audio
			stageMime = mimeType
		}

		out, err := t.model.Generate(ctx, stage.Prompt(text), stageAudio, stageMime)
		if err != nil {
			err = fmt.Errorf("Process: stage %q: %w", stage.Name, err)
			t.log.Error().Err(err).Str("stage", stage.Name).Msg("Model call failed")
			return domain.TranscriptionResult{
				Transcript: transcript,
				Draft:      t.normalizer.fallbackDraft(err, text),
				Degraded:   true,
			}, err
		}

		text = out
		if stage.Transcript {
			transcript = out
		}

		t.log.Debug().
			Str("stage", stage.Name).
			Int("output_chars", len(out)).
			Msg("Stage completed")
	}

	draft, degraded := t.normalizer.Normalize(ExtractPayload(text))
	if degraded {
		t.log.Warn().Str("payload", text).Msg("Draft required fallback substitution")
	}

	return domain.TranscriptionResult{
		Transcript: transcript,
		Draft:      draft,
		Degraded:   degraded,
	}, nil
}
