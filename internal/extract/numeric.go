package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// RawNumber is a numeric token found on a slide before any semantic
// classification. ValuePart and Suffix feed NormalizeValue; Sentence is the
// enclosing context used by the grouping prompt.
type RawNumber struct {
	Raw       string `json:"number"`
	ValuePart string `json:"value_part"`
	Suffix    string `json:"suffix_part,omitempty"`
	Sentence  string `json:"sentence"`
}

// numberRe matches numbers with optional currency prefix, thousands
// separators, decimals, a K/M/B/T scale suffix and a trailing unit word.
var numberRe = regexp.MustCompile(
	`(?i)(?:(?:USD?|EUR?|GBP|\$|€|£|Rs\.?)\s*)?` +
		`(-?\d{1,3}(?:,\d{3})+(?:\.\d+)?|-?\d+(?:\.\d+)?)` +
		`\s*(?:([KMBT])\b)?` +
		`(?:\s*(?:USD?|EUR?|GBP|\$|€|£|Rs\.?|hours?|mins?|minutes?|%|x|times?))?`)

// NumberExtractor finds numeric tokens in slide text.
type NumberExtractor struct{}

// NewNumberExtractor creates a new number extractor.
func NewNumberExtractor() *NumberExtractor {
	return &NumberExtractor{}
}

// Extract returns every numeric token in text with its sentence context.
func (e *NumberExtractor) Extract(text string) []RawNumber {
	var out []RawNumber
	for _, idx := range numberRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[idx[0]:idx[1]]
		valuePart := text[idx[2]:idx[3]]
		suffix := ""
		if idx[4] >= 0 {
			suffix = text[idx[4]:idx[5]]
		}
		out = append(out, RawNumber{
			Raw:       raw,
			ValuePart: valuePart,
			Suffix:    suffix,
			Sentence:  SentenceContext(text, idx[0], idx[1]),
		})
	}
	return out
}

// NormalizeValue converts a matched number to a float64, stripping thousands
// separators and expanding the K/M/B/T suffix. Unparseable input yields 0.
func NormalizeValue(valuePart, suffix string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(valuePart, ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(suffix) {
	case "K":
		v *= 1e3
	case "M":
		v *= 1e6
	case "B":
		v *= 1e9
	case "T":
		v *= 1e12
	}
	return v
}
