// Package pipeline orchestrates a full analysis run: ingest the deck, run
// the evaluators, and assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/slidesift/slidesift/internal/cache"
	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/detect"
	"github.com/slidesift/slidesift/internal/ingest"
	"github.com/slidesift/slidesift/internal/oracle"
	"github.com/slidesift/slidesift/internal/report"
)

// Pipeline runs the complete analysis for one deck.
type Pipeline struct {
	cfg    *config.Config
	client *oracle.Client
	hub    *detect.Hub
	log    *slog.Logger
}

// New creates a pipeline. The oracle provider is resolved from the
// configuration; Close must be called when done.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Pipeline, error) {
	provider, err := oracle.NewProvider(ctx, cfg.Oracle)
	if err != nil {
		return nil, fmt.Errorf("create oracle provider: %w", err)
	}
	client := oracle.NewClient(provider, cfg.Oracle.RequestDelay, cfg.Oracle.MaxRetries, log)

	// Run-scoped verdict cache; entries never need to outlive the process.
	store := cache.NewMemoryCache(time.Hour, 10*time.Minute)

	return &Pipeline{
		cfg:    cfg,
		client: client,
		hub:    detect.NewHub(cfg, client, store, log),
		log:    log,
	}, nil
}

// Analyze ingests the deck at path, optionally attaches OCR text from
// imageDir, runs the evaluators and returns the report.
func (p *Pipeline) Analyze(ctx context.Context, path, imageDir string) (*report.Report, error) {
	started := time.Now()

	deck, err := ingest.ReadDeck(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	p.log.Info("deck ingested", "source", path, "slides", len(deck.Slides))

	if imageDir != "" && p.cfg.Ingest.OCREnabled {
		if err := ingest.AttachImageText(ctx, p.client, imageDir, deck.Slides, p.log); err != nil {
			return nil, fmt.Errorf("ingest images: %w", err)
		}
	}

	findings := p.hub.Detect(ctx, deck.Slides)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.log.Info("analysis complete",
		"source", path,
		"findings", findings.Len(),
		"elapsed", time.Since(started).Round(time.Millisecond))
	return report.New(path, findings), nil
}

// Close releases the oracle client.
func (p *Pipeline) Close() error {
	return p.client.Close()
}
