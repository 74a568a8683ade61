package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/slidesift/slidesift/internal/cache"
	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/extract"
	"github.com/slidesift/slidesift/internal/group"
	"github.com/slidesift/slidesift/internal/model"
	"github.com/slidesift/slidesift/internal/oracle"
)

// verdict is the oracle's judgment on one claim pair. It is what the pair
// cache stores.
type verdict struct {
	Contradiction bool    `json:"contradiction"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// TextualEvaluator finds contradictory business claims across slides. It
// embeds all claims in one batch, prefilters pairs by cosine similarity,
// and asks the oracle only about the similar ones.
type TextualEvaluator struct {
	cfg    config.TextualConfig
	client *oracle.Client
	store  cache.Cache
	claims *extract.ClaimExtractor
	log    *slog.Logger
}

// NewTextualEvaluator creates the contradiction evaluator.
func NewTextualEvaluator(cfg config.TextualConfig, client *oracle.Client, store cache.Cache, log *slog.Logger) *TextualEvaluator {
	return &TextualEvaluator{
		cfg:    cfg,
		client: client,
		store:  store,
		claims: extract.NewClaimExtractor(cfg.MinWords, cfg.MaxWords),
		log:    log,
	}
}

// Name identifies the evaluator.
func (e *TextualEvaluator) Name() string { return "textual" }

// Evaluate extracts claims, prefilters cross-slide pairs by embedding
// similarity, and reports pairs the oracle judges contradictory with enough
// confidence.
func (e *TextualEvaluator) Evaluate(ctx context.Context, slides []model.SlideText) ([]model.Finding, error) {
	var claims []model.Claim
	for _, slide := range slides {
		claims = append(claims, e.claims.Extract(slide)...)
	}
	if len(claims) < 2 {
		return nil, nil
	}

	texts := make([]string, len(claims))
	for i, c := range claims {
		texts[i] = c.Text
	}
	embeddings, err := e.client.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("textual: embed claims: %w", err)
	}
	if len(embeddings) != len(claims) {
		return nil, fmt.Errorf("textual: got %d embeddings for %d claims", len(embeddings), len(claims))
	}

	pairs := group.SimilarPairs(claims, embeddings, e.cfg.SimilarityThreshold)
	e.log.Debug("similarity prefilter", "claims", len(claims), "pairs", len(pairs))

	var findings []model.Finding
	for _, pair := range pairs {
		a, b := claims[pair.I], claims[pair.J]

		v, err := e.judge(ctx, a, b)
		if err != nil {
			if ctx.Err() != nil {
				return findings, ctx.Err()
			}
			e.log.Warn("contradiction analysis failed, skipping pair", "slides", []int{a.Slide, b.Slide}, "error", err)
			continue
		}

		if !v.Contradiction || v.Confidence < e.cfg.ConfidenceThreshold {
			continue
		}
		// High embedding similarity corroborates the verdict a little.
		adjusted := min(1.0, v.Confidence+(pair.Similarity-e.cfg.SimilarityThreshold)*0.1)

		findings = append(findings, model.Finding{
			Slides:      []int{a.Slide, b.Slide},
			Type:        model.IssueTextualContradiction,
			Description: "Contradictory business claims detected",
			Details: fmt.Sprintf("Slide %d: %q contradicts Slide %d: %q | Reasoning: %s",
				a.Slide, truncate(a.Text, 150), b.Slide, truncate(b.Text, 150), v.Reasoning),
			Confidence: adjusted,
		})
	}
	return findings, nil
}

// judge returns the oracle's verdict for a claim pair, consulting the
// order-independent pair cache first.
func (e *TextualEvaluator) judge(ctx context.Context, a, b model.Claim) (verdict, error) {
	key := cache.PairKey(a.Text, b.Text)
	if data, ok := e.store.Get(key); ok {
		var v verdict
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}

	response, err := e.client.Generate(ctx, contradictionPrompt(a, b))
	if err != nil {
		return verdict{}, err
	}
	var v verdict
	if err := oracle.Decode(response, &v); err != nil {
		return verdict{}, err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = e.store.Set(key, data, 0)
	}
	return v, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func contradictionPrompt(a, b model.Claim) string {
	return fmt.Sprintf(`Analyze these two business claims from a presentation and determine if they contradict each other.

Claim 1 (Slide %d): %q
Claim 2 (Slide %d): %q

Two claims contradict if they:
1. Make opposing assertions about the same business aspect, market, or capability
2. Present mutually exclusive facts, conditions, or outcomes
3. Contain logically incompatible statements about performance, position, or characteristics

They do NOT contradict if they:
1. Discuss different aspects, metrics, or time periods of the business
2. Present complementary information that can coexist
3. Address different markets, products, or business units
4. Show progression or change over time (past vs future states)

Consider context and nuance:
- "High competition" vs "market leadership" can coexist
- "Growing costs" vs "increasing revenue" are not contradictory
- "Few direct competitors" vs "competitive market" may contradict depending on context

Respond with JSON:
{
    "contradiction": true/false,
    "confidence": 0.0-1.0,
    "reasoning": "Explanation of why they do or don't contradict"
}

Be precise and focus on genuine logical contradictions, not just different perspectives on the same topic.`,
		a.Slide, a.Text, b.Slide, b.Text)
}
