package config

import (
	"fmt"
	"time"
)

// Config is the full analyzer configuration. Every field has an explicit
// default; Validate is called once at startup.
type Config struct {
	Oracle     OracleConfig     `yaml:"oracle" mapstructure:"oracle"`
	Numeric    NumericConfig    `yaml:"numeric" mapstructure:"numeric"`
	Percentage PercentageConfig `yaml:"percentage" mapstructure:"percentage"`
	Textual    TextualConfig    `yaml:"textual" mapstructure:"textual"`
	Timeline   TimelineConfig   `yaml:"timeline" mapstructure:"timeline"`
	Ingest     IngestConfig     `yaml:"ingest" mapstructure:"ingest"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// OracleConfig configures the text/embedding generation service.
type OracleConfig struct {
	Provider     string        `yaml:"provider" mapstructure:"provider"` // gemini, openai, ollama
	Model        string        `yaml:"model" mapstructure:"model"`
	EmbedModel   string        `yaml:"embed_model" mapstructure:"embed_model"`
	APIKey       string        `yaml:"-" mapstructure:"-"` // From env only, never serialized
	BaseURL      string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestDelay time.Duration `yaml:"request_delay" mapstructure:"request_delay"` // Pacing between sequential calls
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
}

// NumericConfig configures the numeric conflict evaluator.
type NumericConfig struct {
	TolerancePct float64 `yaml:"tolerance_pct" mapstructure:"tolerance_pct"` // Relative tolerance for "same value"
	Confidence   float64 `yaml:"confidence" mapstructure:"confidence"`       // Fixed finding confidence
}

// PercentageConfig configures the percentage sanity evaluator.
type PercentageConfig struct {
	SumTolerancePP float64 `yaml:"sum_tolerance_pp" mapstructure:"sum_tolerance_pp"` // Percentage points
	BandLow        float64 `yaml:"band_low" mapstructure:"band_low"`                 // Plausible should-sum-to-100 band
	BandHigh       float64 `yaml:"band_high" mapstructure:"band_high"`
}

// TextualConfig configures the contradiction evaluator.
type TextualConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	MinWords            int     `yaml:"min_words" mapstructure:"min_words"`
	MaxWords            int     `yaml:"max_words" mapstructure:"max_words"`
}

// TimelineConfig configures the timeline evaluator.
type TimelineConfig struct {
	MinYear          int     `yaml:"min_year" mapstructure:"min_year"`
	MaxYearsAhead    int     `yaml:"max_years_ahead" mapstructure:"max_years_ahead"`
	RelatedThreshold float64 `yaml:"related_threshold" mapstructure:"related_threshold"`
}

// IngestConfig configures deck ingestion.
type IngestConfig struct {
	OCREnabled bool `yaml:"ocr_enabled" mapstructure:"ocr_enabled"`
}

// OutputConfig configures rendering.
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // rich, simple, json
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider:     "gemini",
			Model:        "gemini-2.0-flash",
			EmbedModel:   "text-embedding-004",
			Timeout:      60 * time.Second,
			RequestDelay: 8 * time.Second,
			MaxRetries:   3,
		},
		Numeric: NumericConfig{
			TolerancePct: 1.0,
			Confidence:   0.9,
		},
		Percentage: PercentageConfig{
			SumTolerancePP: 2.0,
			BandLow:        80.0,
			BandHigh:       120.0,
		},
		Textual: TextualConfig{
			SimilarityThreshold: 0.75,
			ConfidenceThreshold: 0.7,
			MinWords:            4,
			MaxWords:            50,
		},
		Timeline: TimelineConfig{
			MinYear:          1980,
			MaxYearsAhead:    30,
			RelatedThreshold: 0.25,
		},
		Ingest: IngestConfig{
			OCREnabled: true,
		},
		Output: OutputConfig{
			Format: "rich",
		},
	}
}

// Validate checks invariants across the configuration.
func (c *Config) Validate() error {
	switch c.Oracle.Provider {
	case "gemini", "openai", "ollama":
	default:
		return fmt.Errorf("unknown oracle provider: %q (supported: gemini, openai, ollama)", c.Oracle.Provider)
	}
	if c.Oracle.MaxRetries < 1 {
		return fmt.Errorf("oracle.max_retries must be >= 1, got %d", c.Oracle.MaxRetries)
	}
	if c.Oracle.RequestDelay < 0 {
		return fmt.Errorf("oracle.request_delay must not be negative")
	}
	if c.Numeric.TolerancePct < 0 {
		return fmt.Errorf("numeric.tolerance_pct must not be negative")
	}
	if c.Percentage.BandLow >= c.Percentage.BandHigh {
		return fmt.Errorf("percentage.band_low (%v) must be below band_high (%v)",
			c.Percentage.BandLow, c.Percentage.BandHigh)
	}
	if c.Textual.SimilarityThreshold < 0 || c.Textual.SimilarityThreshold > 1 {
		return fmt.Errorf("textual.similarity_threshold must be in [0,1], got %v", c.Textual.SimilarityThreshold)
	}
	if c.Textual.ConfidenceThreshold < 0 || c.Textual.ConfidenceThreshold > 1 {
		return fmt.Errorf("textual.confidence_threshold must be in [0,1], got %v", c.Textual.ConfidenceThreshold)
	}
	if c.Textual.MinWords >= c.Textual.MaxWords {
		return fmt.Errorf("textual.min_words (%d) must be below max_words (%d)",
			c.Textual.MinWords, c.Textual.MaxWords)
	}
	if c.Timeline.MinYear < 1 {
		return fmt.Errorf("timeline.min_year must be positive, got %d", c.Timeline.MinYear)
	}
	switch c.Output.Format {
	case "rich", "simple", "json":
	default:
		return fmt.Errorf("unknown output format: %q (supported: rich, simple, json)", c.Output.Format)
	}
	return nil
}
