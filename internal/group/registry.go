// Package group assembles semantically equivalent facts from different
// slides so the evaluators only compare like with like.
package group

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slidesift/slidesift/internal/extract"
	"github.com/slidesift/slidesift/internal/model"
	"github.com/slidesift/slidesift/internal/oracle"
)

// validContexts are the classification context types that count as
// comparable business metrics. Identifiers, years, and technical specs are
// excluded.
var validContexts = map[string]bool{
	"financial":            true,
	"time_performance":     true,
	"business_performance": true,
}

// unitSynonyms collapses unit spellings the classifier uses interchangeably.
var unitSynonyms = map[string]string{
	"usd_millions":     "usd_m",
	"usd_million":      "usd_m",
	"dollars_millions": "usd_m",
	"minutes":          "min",
	"minute":           "min",
	"hours":            "hr",
	"hour":             "hr",
}

// Registry maps semantic metric keys to their observations across slides.
type Registry map[string][]model.NumericMetric

// classifiedNumber is one entry of the classifier's JSON response.
type classifiedNumber struct {
	ID               int    `json:"id"`
	MetricName       string `json:"metric_name"`
	Unit             string `json:"unit"`
	IsBusinessMetric bool   `json:"is_business_metric"`
	ContextType      string `json:"context_type"`
}

// Grouper builds a metric registry by classifying each slide's numbers with
// one oracle call per slide.
type Grouper struct {
	client  *oracle.Client
	numbers *extract.NumberExtractor
	log     *slog.Logger
}

// NewGrouper creates a metric grouper.
func NewGrouper(client *oracle.Client, log *slog.Logger) *Grouper {
	return &Grouper{client: client, numbers: extract.NewNumberExtractor(), log: log}
}

// BuildRegistry classifies the numbers on every slide and collects business
// metrics under normalized semantic keys. A failed or unparseable
// classification skips that slide and is logged; the registry stays usable.
func (g *Grouper) BuildRegistry(ctx context.Context, slides []model.SlideText) (Registry, error) {
	registry := Registry{}

	for _, slide := range slides {
		text := slide.AllText()
		numbers := g.numbers.Extract(text)
		if len(numbers) == 0 {
			continue
		}

		classified, err := g.classifySlide(ctx, text, numbers)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			g.log.Warn("metric classification failed, skipping slide", "slide", slide.Number, "error", err)
			continue
		}

		for _, c := range classified {
			if c.ID < 0 || c.ID >= len(numbers) {
				continue
			}
			if !c.IsBusinessMetric || !validContexts[c.ContextType] {
				continue
			}
			num := numbers[c.ID]
			key := SemanticKey(c.MetricName)
			if key == "" {
				continue
			}
			registry[key] = append(registry[key], model.NumericMetric{
				Value:    extract.NormalizeValue(num.ValuePart, num.Suffix),
				Unit:     c.Unit,
				RawText:  num.Raw,
				Sentence: num.Sentence,
				Slide:    slide.Number,
			})
		}
	}
	return registry, nil
}

func (g *Grouper) classifySlide(ctx context.Context, slideText string, numbers []extract.RawNumber) ([]classifiedNumber, error) {
	type numberInfo struct {
		ID       int    `json:"id"`
		Number   string `json:"number"`
		Sentence string `json:"sentence"`
	}
	infos := make([]numberInfo, len(numbers))
	for i, n := range numbers {
		infos[i] = numberInfo{ID: i, Number: n.Raw, Sentence: n.Sentence}
	}
	encoded, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode numbers: %w", err)
	}

	response, err := g.client.Generate(ctx, classifyPrompt(slideText, string(encoded)))
	if err != nil {
		return nil, err
	}

	var classified []classifiedNumber
	if err := oracle.Decode(response, &classified); err != nil {
		return nil, err
	}
	return classified, nil
}

// SemanticKey normalizes a metric name into a registry key.
func SemanticKey(metricName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(metricName)), " ", "_")
}

// NormalizeUnit collapses unit synonyms for cross-slide comparison.
func NormalizeUnit(unit string) string {
	lower := strings.ToLower(strings.TrimSpace(unit))
	if norm, ok := unitSynonyms[lower]; ok {
		return norm
	}
	return lower
}

func classifyPrompt(slideText, numbersJSON string) string {
	return fmt.Sprintf(`Analyze the following slide content and identify all business metrics. For each numbered item below, determine what business concept the number represents.

Slide Content: %q

Numbers to analyze: %s

For each number, return a JSON object with:
- "id": The ID from the input (0, 1, 2, etc.)
- "metric_name": What specific business concept this number represents (e.g., "annual_revenue", "time_saved_per_slide", "market_share_percentage")
- "unit": The unit of measurement (e.g., "USD_millions", "minutes", "percentage", "multiplier", "hours")
- "is_business_metric": true if this is a measurable business/performance metric that could conflict with similar metrics, false for identifiers, years, versions, technical specs
- "context_type": "financial", "time_performance", "business_performance", "technical_specification", or "identifier"

Guidelines:
- Only mark as business_metric=true if it's a quantifiable business performance indicator
- Graduation years, version numbers, team sizes, technical specs should be is_business_metric=false
- Different types of time savings (e.g., "time per slide" vs "time per month") are different metrics
- Revenue, costs, savings, market metrics are business metrics if they measure performance

Respond with a JSON array of objects, one for each input number.`, slideText, numbersJSON)
}
