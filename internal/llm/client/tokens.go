package llmclient

import "strings"

// CountTokens provides a rough token count for text, used to warn when a
// zone batch approaches a model's capacity.
// It counts whitespace-delimited words and falls back to a character-based heuristic.
func CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	// Paths are long unbroken words; charge at least one token per 4 bytes.
	words := len(strings.Fields(text))
	chars := len(text) / 4
	if chars > words {
		return chars
	}
	return words
}
