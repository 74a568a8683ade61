// Package detect runs the conflict evaluators over a deck's slides and
// merges their findings.
package detect

import (
	"context"
	"log/slog"

	"github.com/slidesift/slidesift/internal/cache"
	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/model"
	"github.com/slidesift/slidesift/internal/oracle"
	"github.com/slidesift/slidesift/internal/worker"
)

// Evaluator inspects the slides for one category of inconsistency.
type Evaluator interface {
	Name() string
	Evaluate(ctx context.Context, slides []model.SlideText) ([]model.Finding, error)
}

// Hub fans the evaluators out over a worker pool and merges their findings
// into a deduplicated set. One evaluator failing never aborts the others:
// its error is logged and it contributes nothing.
type Hub struct {
	evaluators []Evaluator
	pool       *worker.Pool
	log        *slog.Logger
}

// NewHub wires the four standard evaluators.
func NewHub(cfg *config.Config, client *oracle.Client, store cache.Cache, log *slog.Logger) *Hub {
	evaluators := []Evaluator{
		NewNumericalEvaluator(cfg.Numeric, client, log),
		NewPercentageEvaluator(cfg.Percentage),
		NewTextualEvaluator(cfg.Textual, client, store, log),
		NewTimelineEvaluator(cfg.Timeline),
	}
	return &Hub{
		evaluators: evaluators,
		pool:       worker.NewPool(len(evaluators)),
		log:        log,
	}
}

// Detect runs every evaluator and returns the merged finding set.
func (h *Hub) Detect(ctx context.Context, slides []model.SlideText) *model.FindingSet {
	jobs := make([]worker.Job, len(h.evaluators))
	for i, ev := range h.evaluators {
		jobs[i] = &evaluatorJob{evaluator: ev, slides: slides}
	}

	findings := model.NewFindingSet()
	for _, result := range h.pool.Run(ctx, jobs) {
		if result.Err != nil {
			h.log.Warn("evaluator failed", "evaluator", result.Job, "error", result.Err)
			continue
		}
		h.log.Debug("evaluator finished", "evaluator", result.Job, "findings", len(result.Findings))
		findings.AddAll(result.Findings)
	}
	return findings
}

type evaluatorJob struct {
	evaluator Evaluator
	slides    []model.SlideText
}

func (j *evaluatorJob) Name() string { return j.evaluator.Name() }

func (j *evaluatorJob) Execute(ctx context.Context) ([]model.Finding, error) {
	return j.evaluator.Evaluate(ctx, j.slides)
}
