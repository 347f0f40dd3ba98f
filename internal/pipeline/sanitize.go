package pipeline

import "strings"

// ExtractPayload strips an optional Markdown code fence (``` or ```json)
// from a model response and returns the inner content. Responses without a
// fence are the common case and come back trimmed, never an error.
func ExtractPayload(raw string) string {
	s := strings.TrimSpace(raw)

	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the first line (``` or ```json).
	idx := strings.Index(s, "\n")
	if idx == -1 {
		// Single-line weirdness; just return as-is.
		return s
	}
	s = s[idx+1:]

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
