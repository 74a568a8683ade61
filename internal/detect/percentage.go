package detect

import (
	"context"
	"fmt"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/extract"
	"github.com/slidesift/slidesift/internal/model"
)

// Fixed confidences for the oracle-free percentage rules: a negative share
// is near-certainly wrong, while over-100 values and sum drift can have
// legitimate readings (growth rates, rounding).
const (
	invalidPercentConfidence = 0.95
	over100Confidence        = 0.75
	sumErrorConfidence       = 0.75
)

// PercentageEvaluator applies local sanity rules to percentage mentions.
// It needs no oracle calls.
type PercentageEvaluator struct {
	cfg       config.PercentageConfig
	extractor *extract.PercentExtractor
}

// NewPercentageEvaluator creates the percentage sanity evaluator.
func NewPercentageEvaluator(cfg config.PercentageConfig) *PercentageEvaluator {
	return &PercentageEvaluator{cfg: cfg, extractor: extract.NewPercentExtractor()}
}

// Name identifies the evaluator.
func (e *PercentageEvaluator) Name() string { return "percentage" }

// Evaluate checks each slide's percentages for negative values, values over
// 100, and plausible breakdowns that fail to sum to 100.
func (e *PercentageEvaluator) Evaluate(_ context.Context, slides []model.SlideText) ([]model.Finding, error) {
	var findings []model.Finding
	for _, slide := range slides {
		findings = append(findings, e.checkSlide(slide)...)
	}
	return findings, nil
}

func (e *PercentageEvaluator) checkSlide(slide model.SlideText) []model.Finding {
	percentages := e.extractor.Extract(slide)
	if len(percentages) == 0 {
		return nil
	}

	var findings []model.Finding
	var shares []float64 // Values that could be parts of a whole

	for _, p := range percentages {
		switch {
		case p.Value < 0:
			findings = append(findings, model.Finding{
				Slides:      []int{slide.Number},
				Type:        model.IssueInvalidPercentage,
				Description: "Negative percentage detected",
				Details:     fmt.Sprintf("Found %g%% in slide content", p.Value),
				Confidence:  invalidPercentConfidence,
			})
		case p.Value > 100:
			findings = append(findings, model.Finding{
				Slides:      []int{slide.Number},
				Type:        model.IssuePercentageError,
				Description: "Percentage exceeds 100%",
				Details:     fmt.Sprintf("Found %g%% in slide content - may be a growth rate rather than a share", p.Value),
				Confidence:  over100Confidence,
			})
		default:
			shares = append(shares, p.Value)
		}
	}

	if f, ok := e.checkSum(slide.Number, shares); ok {
		findings = append(findings, f)
	}
	return findings
}

// checkSum flags a slide whose percentages land near 100 but not on it: a
// total inside the plausible band is read as an intended breakdown, and a
// deviation beyond tolerance as an arithmetic slip. Totals outside the band
// are assumed to be unrelated figures.
func (e *PercentageEvaluator) checkSum(slideNum int, shares []float64) (model.Finding, bool) {
	if len(shares) < 2 {
		return model.Finding{}, false
	}

	var total float64
	for _, v := range shares {
		total += v
	}
	if total < e.cfg.BandLow || total > e.cfg.BandHigh {
		return model.Finding{}, false
	}
	if deviation := total - 100; deviation <= e.cfg.SumTolerancePP && deviation >= -e.cfg.SumTolerancePP {
		return model.Finding{}, false
	}

	return model.Finding{
		Slides:      []int{slideNum},
		Type:        model.IssuePercentageSum,
		Description: "Related percentages don't sum to 100%",
		Details:     fmt.Sprintf("Found %d percentages summing to %.1f%% (expected: ~100%%)", len(shares), total),
		Confidence:  sumErrorConfidence,
	}, true
}
