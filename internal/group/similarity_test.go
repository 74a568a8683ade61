package group

import (
	"math"
	"testing"

	"github.com/slidesift/slidesift/internal/model"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"empty", nil, []float64{1}, 0},
		{"mismatched length", []float64{1, 2}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarPairsSkipsSameSlide(t *testing.T) {
	claims := []model.Claim{
		{Text: "a", Slide: 1},
		{Text: "b", Slide: 1},
		{Text: "c", Slide: 2},
	}
	// All embeddings identical, so every cross-slide pair clears any threshold.
	emb := [][]float64{{1, 0}, {1, 0}, {1, 0}}

	pairs := SimilarPairs(claims, emb, 0.75)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 cross-slide pairs, got %d: %v", len(pairs), pairs)
	}
	for _, p := range pairs {
		if claims[p.I].Slide == claims[p.J].Slide {
			t.Errorf("same-slide pair leaked through: %v", p)
		}
		if p.Similarity < 0.99 {
			t.Errorf("similarity not carried: %v", p)
		}
	}
}

func TestSimilarPairsThreshold(t *testing.T) {
	claims := []model.Claim{
		{Text: "a", Slide: 1},
		{Text: "b", Slide: 2},
	}
	emb := [][]float64{{1, 0}, {0.5, 0.9}} // similarity ≈ 0.49

	if pairs := SimilarPairs(claims, emb, 0.75); len(pairs) != 0 {
		t.Errorf("pair below threshold must be dropped, got %v", pairs)
	}
}

func TestSemanticKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Annual Revenue", "annual_revenue"},
		{"  time saved per slide ", "time_saved_per_slide"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SemanticKey(tt.in); got != tt.want {
			t.Errorf("SemanticKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct{ in, want string }{
		{"USD_millions", "usd_m"},
		{"usd_million", "usd_m"},
		{"Minutes", "min"},
		{"hours", "hr"},
		{"percentage", "percentage"},
	}
	for _, tt := range tests {
		if got := NormalizeUnit(tt.in); got != tt.want {
			t.Errorf("NormalizeUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
