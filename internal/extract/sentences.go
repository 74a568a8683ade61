package extract

import (
	"regexp"
	"strings"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+|[\n\r]+`)

// Sentences splits slide text into trimmed, non-empty sentences. Newlines
// count as boundaries because slide bullets rarely carry terminal
// punctuation.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SentenceContext returns the sentence containing the span [start, end) of
// text, falling back to a ±100 character window when the boundaries cannot
// be located.
func SentenceContext(text string, start, end int) string {
	pos := 0
	for _, loc := range sentenceSplitRe.FindAllStringIndex(text, -1) {
		if pos <= start && start < loc[1] {
			return strings.TrimSpace(text[pos:loc[0]])
		}
		pos = loc[1]
	}
	if pos <= start && start < len(text) {
		return strings.TrimSpace(text[pos:])
	}

	lo := max(0, start-100)
	hi := min(len(text), end+100)
	return strings.TrimSpace(text[lo:hi])
}
