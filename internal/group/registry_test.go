package group

import (
	"context"
	"errors"
	"testing"

	"github.com/slidesift/slidesift/internal/logging"
	"github.com/slidesift/slidesift/internal/model"
	"github.com/slidesift/slidesift/internal/oracle"
)

// fakeProvider returns canned generate responses in call order.
type fakeProvider struct {
	responses []string
	calls     int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, _ string) (string, error) {
	if f.calls >= len(f.responses) {
		return "", errors.New("unexpected generate call")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeProvider) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0}
	}
	return out, nil
}

func (f *fakeProvider) Close() error { return nil }

func testClient(responses ...string) *oracle.Client {
	return oracle.NewClient(&fakeProvider{responses: responses}, 0, 1, logging.Discard())
}

func TestBuildRegistry(t *testing.T) {
	slides := []model.SlideText{
		{Number: 1, Body: "Annual savings of $2M across the org"},
		{Number: 5, Body: "We save $3.5M annually"},
	}
	client := testClient(
		`[{"id": 0, "metric_name": "annual_savings", "unit": "USD_millions", "is_business_metric": true, "context_type": "financial"}]`,
		`[{"id": 0, "metric_name": "Annual Savings", "unit": "usd_million", "is_business_metric": true, "context_type": "financial"}]`,
	)

	registry, err := NewGrouper(client, logging.Discard()).BuildRegistry(context.Background(), slides)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	metrics, ok := registry["annual_savings"]
	if !ok {
		t.Fatalf("expected annual_savings key, got %v", registry)
	}
	if len(metrics) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(metrics))
	}
	if metrics[0].Value != 2e6 || metrics[1].Value != 3.5e6 {
		t.Errorf("suffix expansion: got %v and %v", metrics[0].Value, metrics[1].Value)
	}
	if metrics[0].Slide != 1 || metrics[1].Slide != 5 {
		t.Errorf("slides: got %d and %d", metrics[0].Slide, metrics[1].Slide)
	}
}

func TestBuildRegistryFiltersNonBusinessMetrics(t *testing.T) {
	slides := []model.SlideText{
		{Number: 1, Body: "Founded in 1999, version 3 of the platform"},
	}
	client := testClient(
		`[{"id": 0, "metric_name": "founding_year", "unit": "year", "is_business_metric": false, "context_type": "identifier"},
		  {"id": 1, "metric_name": "version", "unit": "number", "is_business_metric": true, "context_type": "technical_specification"}]`,
	)

	registry, err := NewGrouper(client, logging.Discard()).BuildRegistry(context.Background(), slides)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if len(registry) != 0 {
		t.Errorf("non-business metrics must not enter the registry: %v", registry)
	}
}

func TestBuildRegistrySkipsUnparseableSlide(t *testing.T) {
	slides := []model.SlideText{
		{Number: 1, Body: "Revenue hit $4M in total"},
		{Number: 2, Body: "Revenue hit $5M in total"},
	}
	client := testClient(
		"the model rambled with no JSON at all",
		`[{"id": 0, "metric_name": "revenue", "unit": "USD_millions", "is_business_metric": true, "context_type": "financial"}]`,
	)

	registry, err := NewGrouper(client, logging.Discard()).BuildRegistry(context.Background(), slides)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if len(registry["revenue"]) != 1 {
		t.Errorf("expected only the parseable slide's metric, got %v", registry)
	}
	if len(registry["revenue"]) == 1 && registry["revenue"][0].Slide != 2 {
		t.Errorf("wrong slide survived: %v", registry["revenue"])
	}
}

func TestBuildRegistryIgnoresOutOfRangeIDs(t *testing.T) {
	slides := []model.SlideText{{Number: 1, Body: "Margin of 30% this year"}}
	client := testClient(
		`[{"id": 7, "metric_name": "margin", "unit": "percentage", "is_business_metric": true, "context_type": "financial"}]`,
	)

	registry, err := NewGrouper(client, logging.Discard()).BuildRegistry(context.Background(), slides)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if len(registry) != 0 {
		t.Errorf("out-of-range id must be dropped, got %v", registry)
	}
}
