package extract

import (
	"regexp"
	"strconv"

	"github.com/slidesift/slidesift/internal/model"
)

var percentRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*%`)

// PercentExtractor finds percentage mentions in slide text.
type PercentExtractor struct{}

// NewPercentExtractor creates a new percentage extractor.
func NewPercentExtractor() *PercentExtractor {
	return &PercentExtractor{}
}

// Extract returns every percentage on the slide. Values are not clamped;
// the sign is kept so the evaluator can flag negatives. CategoryHint carries
// the enclosing sentence for breakdown-keyword checks.
func (e *PercentExtractor) Extract(slide model.SlideText) []model.Percentage {
	text := slide.AllText()
	var out []model.Percentage
	for _, idx := range percentRe.FindAllStringSubmatchIndex(text, -1) {
		v, err := strconv.ParseFloat(text[idx[2]:idx[3]], 64)
		if err != nil {
			continue
		}
		out = append(out, model.Percentage{
			Value:        v,
			CategoryHint: SentenceContext(text, idx[0], idx[1]),
			Slide:        slide.Number,
		})
	}
	return out
}
