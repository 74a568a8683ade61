package ingest

import "strings"

// bulletGlyphs are list markers that exporters emit inconsistently. They are
// normalized to a single canonical bullet so downstream text matching does
// not depend on the authoring tool. "-" and "*" count only when followed by
// a space: a bare leading "-" may be the sign of a number.
var bulletGlyphs = []string{"◦", "▪", "‣", "·", "●", "○", "∙", "- ", "* "}

// CleanText normalizes extracted slide text: runs of spaces and tabs
// collapse to one space, lines are trimmed, bullet glyphs become "•", and
// empty lines are dropped.
func CleanText(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		for _, g := range bulletGlyphs {
			if strings.HasPrefix(line, g) {
				line = "• " + strings.TrimSpace(strings.TrimPrefix(line, g))
				break
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
