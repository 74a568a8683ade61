package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/logging"
	"github.com/slidesift/slidesift/internal/pipeline"
	"github.com/slidesift/slidesift/internal/report"
)

var (
	imageDir       string
	outputFormat   string
	outPath        string
	oracleProvider string
	oracleModel    string
	analyzeTimeout time.Duration
	noOCR          bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <deck.pptx>",
	Short: "Analyze a presentation deck for internal inconsistencies",
	Long: `Analyze reads a .pptx deck and checks it against itself:
- Conflicting values reported for the same metric on different slides
- Negative or impossible percentages, and shares that do not sum to 100
- Claims on different slides that contradict each other
- Timeline events that cannot hold together

Example:
  slidesift analyze deck.pptx
  slidesift analyze deck.pptx --images exported_slides/ --format json --out report.json
  slidesift analyze deck.pptx --provider openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&imageDir, "images", "", "directory of exported slide images for OCR (slide1.png, ...)")
	analyzeCmd.Flags().StringVar(&outputFormat, "format", "rich", "output format (rich, simple, json)")
	analyzeCmd.Flags().StringVar(&outPath, "out", "", "write report to file instead of stdout")
	analyzeCmd.Flags().StringVar(&oracleProvider, "provider", "", "oracle provider (gemini, openai, ollama)")
	analyzeCmd.Flags().StringVar(&oracleModel, "model", "", "oracle model name")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 15*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noOCR, "no-ocr", false, "skip OCR even when --images is set")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override file and environment settings
	if cmd.Flags().Changed("provider") {
		cfg.Oracle.Provider = oracleProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Oracle.Model = oracleModel
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if noOCR {
		cfg.Ingest.OCREnabled = false
	}
	cfg.Output.Verbose = verbose

	if err := resolveAPIKey(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.Output.Verbose)

	p, err := pipeline.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			log.Warn("closing oracle client", "error", closeErr)
		}
	}()

	result, err := p.Analyze(ctx, path, imageDir)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := report.NewFormatter(cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := writeReport(formatter, result, outPath); err != nil {
		return err
	}
	if outPath != "" && verbose {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outPath)
	}
	return nil
}

// writeReport renders the report to stdout, or to path when set. A failed
// close means a truncated report, so it is surfaced like a render error.
func writeReport(formatter report.Formatter, r *report.Report, path string) (err error) {
	if path == "" {
		if err := formatter.Format(os.Stdout, r); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	if fmtErr := formatter.Format(f, r); fmtErr != nil {
		return fmt.Errorf("render failed: %w", fmtErr)
	}
	return nil
}

// loadConfig builds the configuration from defaults, the config file,
// and SLIDESIFT_* environment variables.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	registerDefaults(cfg)
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}

// registerDefaults makes every configuration key known to viper.
// AutomaticEnv only resolves registered keys, so without this the
// SLIDESIFT_* environment layer would never reach Unmarshal.
func registerDefaults(cfg *config.Config) {
	viper.SetDefault("oracle.provider", cfg.Oracle.Provider)
	viper.SetDefault("oracle.model", cfg.Oracle.Model)
	viper.SetDefault("oracle.embed_model", cfg.Oracle.EmbedModel)
	viper.SetDefault("oracle.base_url", cfg.Oracle.BaseURL)
	viper.SetDefault("oracle.timeout", cfg.Oracle.Timeout)
	viper.SetDefault("oracle.request_delay", cfg.Oracle.RequestDelay)
	viper.SetDefault("oracle.max_retries", cfg.Oracle.MaxRetries)
	viper.SetDefault("numeric.tolerance_pct", cfg.Numeric.TolerancePct)
	viper.SetDefault("numeric.confidence", cfg.Numeric.Confidence)
	viper.SetDefault("percentage.sum_tolerance_pp", cfg.Percentage.SumTolerancePP)
	viper.SetDefault("percentage.band_low", cfg.Percentage.BandLow)
	viper.SetDefault("percentage.band_high", cfg.Percentage.BandHigh)
	viper.SetDefault("textual.similarity_threshold", cfg.Textual.SimilarityThreshold)
	viper.SetDefault("textual.confidence_threshold", cfg.Textual.ConfidenceThreshold)
	viper.SetDefault("textual.min_words", cfg.Textual.MinWords)
	viper.SetDefault("textual.max_words", cfg.Textual.MaxWords)
	viper.SetDefault("timeline.min_year", cfg.Timeline.MinYear)
	viper.SetDefault("timeline.max_years_ahead", cfg.Timeline.MaxYearsAhead)
	viper.SetDefault("timeline.related_threshold", cfg.Timeline.RelatedThreshold)
	viper.SetDefault("ingest.ocr_enabled", cfg.Ingest.OCREnabled)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
}

// resolveAPIKey pulls the provider credential from the environment.
// Keys never come from the config file.
func resolveAPIKey(cfg *config.Config) error {
	switch cfg.Oracle.Provider {
	case "gemini":
		cfg.Oracle.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.Oracle.APIKey == "" {
			cfg.Oracle.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
		if cfg.Oracle.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "openai":
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Oracle.BaseURL = baseURL
		}
	}
	return nil
}
