package detect

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/extract"
	"github.com/slidesift/slidesift/internal/model"
)

// Dampening factors applied to the combined event confidence per check
// type: cross-slide comparisons rely on fuzzy relatedness, so they score
// below the events they come from.
const (
	chronologicalDamp = 0.9
	completionDamp    = 0.8
	impossibleDamp    = 0.9
	deadlineDamp      = 0.85
)

// stopwords are ignored when measuring event relatedness.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "[date]": true,
}

// projectTerms boost relatedness: two events both talking about a launch or
// a platform are probably about the same effort.
var projectTerms = map[string]bool{
	"project": true, "launch": true, "product": true, "feature": true,
	"system": true, "platform": true, "service": true,
}

// TimelineEvaluator finds chronological inconsistencies between dated
// events. It is fully local.
type TimelineEvaluator struct {
	cfg       config.TimelineConfig
	extractor *extract.EventExtractor
}

// NewTimelineEvaluator creates the timeline evaluator.
func NewTimelineEvaluator(cfg config.TimelineConfig) *TimelineEvaluator {
	return &TimelineEvaluator{cfg: cfg, extractor: extract.NewEventExtractor(cfg)}
}

// Name identifies the evaluator.
func (e *TimelineEvaluator) Name() string { return "timeline" }

// Evaluate extracts dated events from every slide and runs the four
// chronology checks over them.
func (e *TimelineEvaluator) Evaluate(_ context.Context, slides []model.SlideText) ([]model.Finding, error) {
	var events []model.TimelineEvent
	for _, slide := range slides {
		events = append(events, e.extractor.Extract(slide)...)
	}
	if len(events) < 2 {
		return nil, nil
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	var findings []model.Finding
	findings = append(findings, e.checkChronologicalOrder(events)...)
	findings = append(findings, e.checkCompletionConflicts(events)...)
	findings = append(findings, e.checkImpossibleTimelines(events)...)
	findings = append(findings, e.checkDeadlineViolations(events)...)
	return findings, nil
}

// checkChronologicalOrder flags a future event dated before a related past
// event on another slide.
func (e *TimelineEvaluator) checkChronologicalOrder(events []model.TimelineEvent) []model.Finding {
	var findings []model.Finding
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if a.Slide == b.Slide {
				continue
			}
			if a.Type == model.EventFuture && b.Type == model.EventPast &&
				a.Date.Before(b.Date) && e.related(a, b) {
				findings = append(findings, model.Finding{
					Slides:      []int{a.Slide, b.Slide},
					Type:        model.IssueChronologicalMismatch,
					Description: "Future event scheduled before related past event",
					Details: fmt.Sprintf("Slide %d: Future event on %s vs Slide %d: Past event on %s",
						a.Slide, formatDate(a.Date), b.Slide, formatDate(b.Date)),
					Confidence: min(a.Confidence, b.Confidence) * chronologicalDamp,
				})
			}
		}
	}
	return findings
}

// checkCompletionConflicts flags future or ongoing events dated after a
// related completion or deadline date on another slide.
func (e *TimelineEvaluator) checkCompletionConflicts(events []model.TimelineEvent) []model.Finding {
	var findings []model.Finding
	for _, completion := range events {
		if completion.Type != model.EventCompletion && completion.Type != model.EventDeadline {
			continue
		}
		for _, other := range events {
			if other.Type == model.EventCompletion || other.Type == model.EventDeadline {
				continue
			}
			if completion.Slide == other.Slide {
				continue
			}
			if (other.Type == model.EventFuture || other.Type == model.EventOngoing) &&
				other.Date.After(completion.Date) && e.related(completion, other) {
				findings = append(findings, model.Finding{
					Slides:      []int{completion.Slide, other.Slide},
					Type:        model.IssueCompletionConflict,
					Description: "Event scheduled after completion/deadline date",
					Details: fmt.Sprintf("Completion/deadline by %s (slide %d) but related event on %s (slide %d)",
						formatDate(completion.Date), completion.Slide, formatDate(other.Date), other.Slide),
					Confidence: min(completion.Confidence, other.Confidence) * completionDamp,
				})
			}
		}
	}
	return findings
}

// checkImpossibleTimelines flags a future event dated before a past event
// on the same slide. Relatedness is not required: one slide is one context.
func (e *TimelineEvaluator) checkImpossibleTimelines(events []model.TimelineEvent) []model.Finding {
	bySlide := map[int][]model.TimelineEvent{}
	for _, ev := range events {
		bySlide[ev.Slide] = append(bySlide[ev.Slide], ev)
	}

	slideNums := make([]int, 0, len(bySlide))
	for n := range bySlide {
		slideNums = append(slideNums, n)
	}
	sort.Ints(slideNums)

	var findings []model.Finding
	for _, slideNum := range slideNums {
		slideEvents := bySlide[slideNum]
		if len(slideEvents) < 2 {
			continue
		}
		sort.Slice(slideEvents, func(i, j int) bool { return slideEvents[i].Date.Before(slideEvents[j].Date) })

		for i := 0; i < len(slideEvents)-1; i++ {
			a, b := slideEvents[i], slideEvents[i+1]
			if a.Type == model.EventFuture && b.Type == model.EventPast && a.Date.Before(b.Date) {
				findings = append(findings, model.Finding{
					Slides:      []int{slideNum},
					Type:        model.IssueImpossibleTimeline,
					Description: "Inconsistent timeline within slide",
					Details: fmt.Sprintf("Slide %d: Future event (%s) occurs before past event (%s)",
						slideNum, formatDate(a.Date), formatDate(b.Date)),
					Confidence: min(a.Confidence, b.Confidence) * impossibleDamp,
				})
			}
		}
	}
	return findings
}

// checkDeadlineViolations flags future events dated after a related
// deadline on another slide.
func (e *TimelineEvaluator) checkDeadlineViolations(events []model.TimelineEvent) []model.Finding {
	var findings []model.Finding
	for _, deadline := range events {
		if deadline.Type != model.EventDeadline {
			continue
		}
		for _, future := range events {
			if future.Type != model.EventFuture || deadline.Slide == future.Slide {
				continue
			}
			if future.Date.After(deadline.Date) && e.related(deadline, future) {
				findings = append(findings, model.Finding{
					Slides:      []int{deadline.Slide, future.Slide},
					Type:        model.IssueDeadlineViolation,
					Description: "Future event scheduled after deadline",
					Details: fmt.Sprintf("Deadline: %s (slide %d) but future event: %s (slide %d)",
						formatDate(deadline.Date), deadline.Slide, formatDate(future.Date), future.Slide),
					Confidence: min(deadline.Confidence, future.Confidence) * deadlineDamp,
				})
			}
		}
	}
	return findings
}

// related estimates whether two events describe the same effort: word
// overlap of their descriptions after stopword removal, with a bonus when
// both mention project vocabulary.
func (e *TimelineEvaluator) related(a, b model.TimelineEvent) bool {
	wordsA := contentWords(a.Description)
	wordsB := contentWords(b.Description)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	overlap := 0
	for w := range wordsA {
		if wordsB[w] {
			overlap++
		}
	}
	similarity := float64(overlap) / float64(min(len(wordsA), len(wordsB)))

	if hasProjectTerm(wordsA) && hasProjectTerm(wordsB) {
		similarity += 0.2
	}
	return similarity > e.cfg.RelatedThreshold
}

func contentWords(description string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(description)) {
		if !stopwords[w] {
			words[w] = true
		}
	}
	return words
}

func hasProjectTerm(words map[string]bool) bool {
	for w := range words {
		if projectTerms[w] {
			return true
		}
	}
	return false
}

func formatDate(d time.Time) string {
	return d.Format("2006-01-02")
}
