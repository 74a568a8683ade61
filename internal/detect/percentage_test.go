package detect

import (
	"context"
	"strings"
	"testing"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/model"
)

func percentageEvaluator() *PercentageEvaluator {
	return NewPercentageEvaluator(config.PercentageConfig{
		SumTolerancePP: 2.0,
		BandLow:        80.0,
		BandHigh:       120.0,
	})
}

func findingsOfType(findings []model.Finding, t model.IssueType) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

func TestNegativePercentage(t *testing.T) {
	findings, err := percentageEvaluator().Evaluate(context.Background(), []model.SlideText{
		{Number: 3, Body: "Churn moved to -5% after the change"},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	invalid := findingsOfType(findings, model.IssueInvalidPercentage)
	if len(invalid) != 1 {
		t.Fatalf("expected 1 invalid_percentage, got %v", findings)
	}
	if invalid[0].Confidence != 0.95 {
		t.Errorf("confidence: got %v", invalid[0].Confidence)
	}
	if !strings.Contains(invalid[0].Details, "-5%") {
		t.Errorf("details: %q", invalid[0].Details)
	}
}

func TestPercentageOver100(t *testing.T) {
	findings, err := percentageEvaluator().Evaluate(context.Background(), []model.SlideText{
		{Number: 1, Body: "Win rate of 150% this quarter"},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	over := findingsOfType(findings, model.IssuePercentageError)
	if len(over) != 1 {
		t.Fatalf("expected 1 potential_percentage_error, got %v", findings)
	}
	if over[0].Confidence != 0.75 {
		t.Errorf("confidence: got %v", over[0].Confidence)
	}
}

func TestPercentageSumChecks(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantFinding bool
	}{
		{"near-100 breakdown off by 5", "Market split: EMEA 40%, APAC 35%, LATAM 20%", true},
		{"exact 100", "Market split: EMEA 40%, APAC 35%, LATAM 25%", false},
		{"within tolerance", "Market split: EMEA 40%, APAC 35%, LATAM 26%", false},
		{"unrelated figures outside band", "Growth 30%, margin 20%", false},
		{"single percentage", "Margin of 95%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := percentageEvaluator().Evaluate(context.Background(), []model.SlideText{
				{Number: 2, Body: tt.body},
			})
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			sums := findingsOfType(findings, model.IssuePercentageSum)
			if got := len(sums) == 1; got != tt.wantFinding {
				t.Errorf("sum finding = %v, want %v (findings: %v)", got, tt.wantFinding, findings)
			}
			if tt.wantFinding && len(sums) == 1 {
				if sums[0].Confidence != 0.75 {
					t.Errorf("confidence: got %v", sums[0].Confidence)
				}
				if !strings.Contains(sums[0].Details, "95.0%") {
					t.Errorf("details must carry the total: %q", sums[0].Details)
				}
			}
		})
	}
}

func TestInvalidValuesExcludedFromSum(t *testing.T) {
	// The 150% growth figure must not drag the breakdown total around.
	findings, err := percentageEvaluator().Evaluate(context.Background(), []model.SlideText{
		{Number: 4, Body: "Growth of 150%. Split: 40% enterprise, 35% SMB, 25% consumer"},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sums := findingsOfType(findings, model.IssuePercentageSum); len(sums) != 0 {
		t.Errorf("breakdown sums to 100, got %v", sums)
	}
	if over := findingsOfType(findings, model.IssuePercentageError); len(over) != 1 {
		t.Errorf("expected the 150%% flag, got %v", findings)
	}
}
