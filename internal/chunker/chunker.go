// Package chunker splits document text into fixed-size windows for indexing.
package chunker

import "strings"

// Split cuts text into consecutive, non-overlapping windows of exactly size
// runes; the final window may be shorter. Carriage returns are stripped
// first, so concatenating the output reproduces the normalized input.
// Boundaries are positional, not semantic: a window may end mid-word.
// Returns nil for empty input or size <= 0.
func Split(text string, size int) []string {
	if size <= 0 {
		return nil
	}
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
