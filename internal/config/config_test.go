package config

import (
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Oracle.Provider != "gemini" {
		t.Errorf("expected default provider gemini, got %s", cfg.Oracle.Provider)
	}
	if cfg.Numeric.TolerancePct != 1.0 {
		t.Errorf("expected 1%% numeric tolerance, got %v", cfg.Numeric.TolerancePct)
	}
	if cfg.Textual.SimilarityThreshold != 0.75 {
		t.Errorf("expected 0.75 similarity threshold, got %v", cfg.Textual.SimilarityThreshold)
	}
	if cfg.Percentage.BandLow != 80 || cfg.Percentage.BandHigh != 120 {
		t.Errorf("expected 80-120 plausible band, got %v-%v", cfg.Percentage.BandLow, cfg.Percentage.BandHigh)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown provider", func(c *Config) { c.Oracle.Provider = "bedrock" }, "oracle provider"},
		{"zero retries", func(c *Config) { c.Oracle.MaxRetries = 0 }, "max_retries"},
		{"negative tolerance", func(c *Config) { c.Numeric.TolerancePct = -1 }, "tolerance_pct"},
		{"inverted band", func(c *Config) { c.Percentage.BandLow = 130 }, "band_low"},
		{"similarity out of range", func(c *Config) { c.Textual.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"inverted word band", func(c *Config) { c.Textual.MinWords = 60 }, "min_words"},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, "output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
