package pipeline

import (
	"strings"

	"github.com/ayethu/voiceledger/internal/schema"
)

// Pipeline modes selectable via configuration.
const (
	ModeStandard = "standard" // transcribe -> extract
	ModeStaged   = "staged"   // transcribe -> correct -> extract
	ModeCombined = "combined" // single transcribe+extract call
)

// Stage is one named model call in the transcription pipeline. Each stage's
// output text is the sole input to the next; the first stage additionally
// receives the audio. A stage flagged Transcript records its output as the
// original transcript returned to the caller.
type Stage struct {
	Name       string
	Transcript bool
	Prompt     func(input string) string
}

// StagesFor returns the stage sequence for the given pipeline mode.
// Unknown modes fall back to the standard two-stage pipeline.
func StagesFor(mode string) []Stage {
	switch mode {
	case ModeStaged:
		return []Stage{
			{Name: "transcribe", Transcript: true, Prompt: transcribePrompt},
			{Name: "correct", Prompt: correctPrompt},
			{Name: "extract", Prompt: extractPrompt},
		}
	case ModeCombined:
		return []Stage{
			{Name: "transcribe-extract", Prompt: combinedPrompt},
		}
	default:
		return []Stage{
			{Name: "transcribe", Transcript: true, Prompt: transcribePrompt},
			{Name: "extract", Prompt: extractPrompt},
		}
	}
}

func transcribePrompt(string) string {
	return "Transcribe this audio accurately. It is a short voice note, in " +
		"Burmese or English, describing a single financial transaction " +
		"(an expense or income). Return only the transcript text."
}

func correctPrompt(input string) string {
	return "Correct any grammar or transcription mistakes in the following " +
		"voice note transcript. Keep the original language and meaning. " +
		"Return only the corrected text.\n\n" + input
}

func extractPrompt(input string) string {
	return extractionRules() +
		"\nVoice note transcript:\n" + input
}

func combinedPrompt(string) string {
	return "Listen to the attached audio. It is a short voice note, in " +
		"Burmese or English, describing a single financial transaction.\n\n" +
		extractionRules()
}

// extractionRules constrains the model to the closed type and category sets
// and to strict raw JSON output.
func extractionRules() string {
	var b strings.Builder

	b.WriteString("Extract the transaction details as a JSON object with exactly these fields:\n")
	b.WriteString("- \"type\": string, one of: " + strings.Join(schema.Types(), ", ") + "\n")
	b.WriteString("- \"amount\": number (the transaction amount, no currency symbol)\n")
	b.WriteString("- \"category\": string, EXACTLY one of the categories below\n")
	b.WriteString("- \"date\": string, ISO format \"YYYY-MM-DD\"; omit if no date is mentioned\n")
	b.WriteString("- \"note\": string, a short description of the transaction\n\n")

	b.WriteString("Use ONLY the following categories:\n")
	for _, c := range schema.Categories() {
		b.WriteString("  - " + c + "\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- If you are unsure of the category, use \"" + schema.FallbackCategory + "\".\n")
	b.WriteString("- Return ONLY valid raw JSON.\n")
	b.WriteString("- Do NOT wrap the response in code fences.\n")
	b.WriteString("- Do NOT use ```json or any Markdown.\n")
	b.WriteString("- Output must begin with \"{\" and end with \"}\".\n")

	return b.String()
}
