package detect

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/group"
	"github.com/slidesift/slidesift/internal/model"
	"github.com/slidesift/slidesift/internal/oracle"
)

// NumericalEvaluator flags the same business metric reported with different
// values on different slides.
type NumericalEvaluator struct {
	cfg     config.NumericConfig
	grouper *group.Grouper
}

// NewNumericalEvaluator creates the numeric conflict evaluator.
func NewNumericalEvaluator(cfg config.NumericConfig, client *oracle.Client, log *slog.Logger) *NumericalEvaluator {
	return &NumericalEvaluator{cfg: cfg, grouper: group.NewGrouper(client, log)}
}

// Name identifies the evaluator.
func (e *NumericalEvaluator) Name() string { return "numerical" }

// Evaluate builds the semantic metric registry and reports metrics whose
// observations split into more than one tolerance cluster.
func (e *NumericalEvaluator) Evaluate(ctx context.Context, slides []model.SlideText) ([]model.Finding, error) {
	registry, err := e.grouper.BuildRegistry(ctx, slides)
	if err != nil {
		return nil, fmt.Errorf("numerical: %w", err)
	}
	return e.findConflicts(registry), nil
}

func (e *NumericalEvaluator) findConflicts(registry group.Registry) []model.Finding {
	var findings []model.Finding

	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		occurrences := registry[key]
		if len(occurrences) < 2 {
			continue
		}

		// Compare only observations sharing a unit.
		byUnit := map[string][]model.NumericMetric{}
		for _, m := range occurrences {
			unit := group.NormalizeUnit(m.Unit)
			byUnit[unit] = append(byUnit[unit], m)
		}

		units := make([]string, 0, len(byUnit))
		for unit := range byUnit {
			units = append(units, unit)
		}
		sort.Strings(units)

		for _, unit := range units {
			unitOccurrences := byUnit[unit]
			if len(unitOccurrences) < 2 {
				continue
			}
			clusters := e.clusterByTolerance(unitOccurrences)
			if len(clusters) > 1 {
				findings = append(findings, e.conflictFinding(key, unit, clusters))
			}
		}
	}
	return findings
}

// clusterByTolerance groups observations greedily: each value joins the
// first cluster whose representative (first member) it is within tolerance
// of, else it starts a new cluster.
func (e *NumericalEvaluator) clusterByTolerance(occurrences []model.NumericMetric) [][]model.NumericMetric {
	var clusters [][]model.NumericMetric
	for _, m := range occurrences {
		placed := false
		for i, cluster := range clusters {
			if e.withinTolerance(m.Value, cluster[0].Value) {
				clusters[i] = append(cluster, m)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []model.NumericMetric{m})
		}
	}
	return clusters
}

// withinTolerance compares two values by relative difference against the
// larger magnitude. Two zeros agree; zero never agrees with non-zero.
func (e *NumericalEvaluator) withinTolerance(a, b float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	if a == 0 || b == 0 {
		return false
	}
	diffPct := math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b)) * 100
	return diffPct <= e.cfg.TolerancePct
}

func (e *NumericalEvaluator) conflictFinding(key, unit string, clusters [][]model.NumericMetric) model.Finding {
	slideSet := map[int]bool{}
	summaries := make([]string, 0, len(clusters))

	for _, cluster := range clusters {
		slides := make([]string, 0, len(cluster))
		for _, m := range cluster {
			slideSet[m.Slide] = true
			slides = append(slides, fmt.Sprintf("%d", m.Slide))
		}
		summaries = append(summaries, fmt.Sprintf("%s (slide %s)",
			formatValue(cluster[0].Value, unit), strings.Join(slides, ", ")))
	}

	allSlides := make([]int, 0, len(slideSet))
	for s := range slideSet {
		allSlides = append(allSlides, s)
	}
	sort.Ints(allSlides)

	return model.Finding{
		Slides:      allSlides,
		Type:        model.IssueNumericalConflict,
		Description: fmt.Sprintf("Conflicting %s values detected", displayName(key)),
		Details:     "Found different values: " + strings.Join(summaries, " vs "),
		Confidence:  e.cfg.Confidence,
	}
}

// displayName turns a semantic key back into words with initial capitals.
func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// formatValue renders a value with its unit for finding details.
func formatValue(value float64, unit string) string {
	lower := strings.ToLower(unit)
	switch {
	case strings.Contains(lower, "usd") || strings.Contains(unit, "$"):
		return formatCurrency(value)
	case lower == "hr" || lower == "hour" || lower == "hours":
		if value == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%s hours", formatPlain(value))
	case lower == "min" || lower == "minute" || lower == "minutes":
		if value == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%s minutes", formatPlain(value))
	case lower == "percentage":
		return fmt.Sprintf("%g%%", value)
	case lower == "multiplier":
		return fmt.Sprintf("%gx", value)
	default:
		return formatPlain(value)
	}
}

// formatCurrency scales dollar amounts to the nearest K/M/B/T step.
func formatCurrency(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.1fT", value/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.1fB", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", value/1e3)
	default:
		return "$" + formatPlain(value)
	}
}

// formatPlain renders a value with thousands separators and no decimals.
func formatPlain(value float64) string {
	s := fmt.Sprintf("%.0f", value)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
