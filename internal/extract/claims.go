package extract

import (
	"regexp"
	"strings"

	"github.com/slidesift/slidesift/internal/model"
)

// businessIndicators mark sentences that assert something about the
// business: market position, performance, customers, comparisons, quality.
var businessIndicators = []string{
	"market", "competition", "competitive", "competitor", "leading", "dominant",
	"growth", "revenue", "profit", "cost", "saving", "efficiency", "performance",
	"customer", "client", "user", "successful", "innovative", "scalable",
	"faster", "better", "improved", "superior", "advanced", "optimized",
	"higher", "lower", "more", "less", "increased", "decreased",
	"time", "productivity", "automated", "streamlined", "efficient",
	"reliable", "secure", "quality", "robust", "stable", "proven",
}

// claimStructureRes match assertion shapes: linking verbs, comparatives and
// superlative position words. A business word alone is not a claim.
var claimStructureRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(is|are|has|have|can|will|does|provides?|offers?|enables?|delivers?)\b`),
	regexp.MustCompile(`\b(more|less|better|worse|faster|slower|higher|lower|greater|smaller)\b`),
	regexp.MustCompile(`\b(leading|top|best|worst|first|primary|main|key|critical|important)\b`),
}

var (
	// Bullet glyphs, or ordered markers like "1." / "2)". A bare leading
	// number is content ("2024 revenue grew"), not a marker.
	listMarkerRe  = regexp.MustCompile(`^(?:[•‣◦⁃∙\-*\s]+|\d+[.)]\s+)+`)
	oddPunctRe    = regexp.MustCompile(`[^\w\s.,!?;:\-'"()]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	numericOnlyRe = regexp.MustCompile(`^[\d\s.,$%\-x]+$`)
)

// ClaimExtractor extracts business assertions from slide text for
// contradiction analysis.
type ClaimExtractor struct {
	minWords int
	maxWords int
}

// NewClaimExtractor creates a claim extractor with the given sentence
// length bounds.
func NewClaimExtractor(minWords, maxWords int) *ClaimExtractor {
	return &ClaimExtractor{minWords: minWords, maxWords: maxWords}
}

// Extract returns the slide's cleaned business-claim sentences.
func (e *ClaimExtractor) Extract(slide model.SlideText) []model.Claim {
	var claims []model.Claim
	for _, sentence := range Sentences(slide.AllText()) {
		cleaned := cleanSentence(sentence)
		if e.isBusinessClaim(cleaned) {
			claims = append(claims, model.Claim{Text: cleaned, Slide: slide.Number})
		}
	}
	return claims
}

// cleanSentence strips list markers and stray symbols while keeping the
// sentence structure intact.
func cleanSentence(sentence string) string {
	sentence = listMarkerRe.ReplaceAllString(sentence, "")
	sentence = oddPunctRe.ReplaceAllString(sentence, " ")
	sentence = whitespaceRe.ReplaceAllString(sentence, " ")
	return strings.TrimSpace(sentence)
}

func (e *ClaimExtractor) isBusinessClaim(sentence string) bool {
	words := len(strings.Fields(sentence))
	if words < e.minWords || words > e.maxWords {
		return false
	}
	if numericOnlyRe.MatchString(sentence) {
		return false
	}

	lower := strings.ToLower(sentence)
	hasBusiness := false
	for _, ind := range businessIndicators {
		if strings.Contains(lower, ind) {
			hasBusiness = true
			break
		}
	}
	if !hasBusiness {
		return false
	}

	for _, re := range claimStructureRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
