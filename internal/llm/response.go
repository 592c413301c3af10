package llm

import "strings"

// StripFences removes a surrounding markdown code fence from a model
// response, if present. Providers regularly wrap JSON output in
// ```json ... ``` despite instructions not to; structural parsing
// happens on the stripped text.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}

	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}

	return s
}
