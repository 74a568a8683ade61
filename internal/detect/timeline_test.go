package detect

import (
	"context"
	"testing"
	"time"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/model"
)

func timelineEvaluator() *TimelineEvaluator {
	return NewTimelineEvaluator(config.TimelineConfig{
		MinYear:          1980,
		MaxYearsAhead:    30,
		RelatedThreshold: 0.25,
	})
}

func event(slide int, date time.Time, typ model.EventType, description string) model.TimelineEvent {
	return model.TimelineEvent{
		Date:        date,
		Type:        typ,
		Description: description,
		Context:     description,
		Confidence:  0.8,
		Slide:       slide,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestChronologicalMismatch(t *testing.T) {
	e := timelineEvaluator()
	events := []model.TimelineEvent{
		event(2, day(2024, 3, 1), model.EventFuture, "platform launch scheduled [DATE]"),
		event(5, day(2024, 6, 1), model.EventPast, "platform launch completed [DATE]"),
	}

	findings := e.checkChronologicalOrder(events)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	f := findings[0]
	if f.Type != model.IssueChronologicalMismatch {
		t.Errorf("type: got %v", f.Type)
	}
	if want := 0.8 * 0.9; f.Confidence != want {
		t.Errorf("confidence: got %v, want %v", f.Confidence, want)
	}
}

func TestChronologicalMismatchRequiresRelatedness(t *testing.T) {
	e := timelineEvaluator()
	events := []model.TimelineEvent{
		event(2, day(2024, 3, 1), model.EventFuture, "office move scheduled [DATE]"),
		event(5, day(2024, 6, 1), model.EventPast, "hiring round finished [DATE]"),
	}
	if findings := e.checkChronologicalOrder(events); len(findings) != 0 {
		t.Errorf("unrelated events must not pair, got %v", findings)
	}
}

func TestCompletionConflict(t *testing.T) {
	e := timelineEvaluator()
	events := []model.TimelineEvent{
		event(1, day(2024, 12, 31), model.EventDeadline, "project delivery deadline [DATE]"),
		event(4, day(2025, 3, 1), model.EventOngoing, "project delivery work running through [DATE]"),
	}

	findings := e.checkCompletionConflicts(events)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	if findings[0].Type != model.IssueCompletionConflict {
		t.Errorf("type: got %v", findings[0].Type)
	}
	if want := 0.8 * 0.8; findings[0].Confidence != want {
		t.Errorf("confidence: got %v, want %v", findings[0].Confidence, want)
	}
}

func TestImpossibleTimelineSameSlideOnly(t *testing.T) {
	e := timelineEvaluator()
	sameSlide := []model.TimelineEvent{
		event(3, day(2024, 1, 1), model.EventFuture, "expansion planned [DATE]"),
		event(3, day(2024, 9, 1), model.EventPast, "expansion completed [DATE]"),
	}

	findings := e.checkImpossibleTimelines(sameSlide)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	f := findings[0]
	if f.Type != model.IssueImpossibleTimeline {
		t.Errorf("type: got %v", f.Type)
	}
	if len(f.Slides) != 1 || f.Slides[0] != 3 {
		t.Errorf("slides: got %v", f.Slides)
	}

	crossSlide := []model.TimelineEvent{
		event(3, day(2024, 1, 1), model.EventFuture, "expansion planned [DATE]"),
		event(4, day(2024, 9, 1), model.EventPast, "expansion completed [DATE]"),
	}
	if findings := e.checkImpossibleTimelines(crossSlide); len(findings) != 0 {
		t.Errorf("impossible-timeline check is same-slide only, got %v", findings)
	}
}

func TestDeadlineViolation(t *testing.T) {
	e := timelineEvaluator()
	events := []model.TimelineEvent{
		event(2, day(2024, 6, 30), model.EventDeadline, "feature freeze deadline [DATE]"),
		event(7, day(2024, 8, 15), model.EventFuture, "feature freeze rollout planned [DATE]"),
	}

	findings := e.checkDeadlineViolations(events)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	if want := 0.8 * 0.85; findings[0].Confidence != want {
		t.Errorf("confidence: got %v, want %v", findings[0].Confidence, want)
	}
}

func TestRelatedness(t *testing.T) {
	e := timelineEvaluator()
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"shared words", "platform launch scheduled", "platform launch completed", true},
		{"disjoint", "office relocation", "hiring spree", false},
		// Overlap exactly at threshold: only the project-term bonus tips it.
		{"project vocabulary bonus", "launch alpha beta gamma", "product alpha delta epsilon", true},
		{"same overlap without project terms", "alpha beta gamma item", "alpha delta epsilon thing", false},
		{"stopwords only", "the and of", "by on at", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := event(1, day(2024, 1, 1), model.EventPast, tt.a)
			b := event(2, day(2024, 2, 1), model.EventPast, tt.b)
			if got := e.related(a, b); got != tt.want {
				t.Errorf("related(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTimelineEvaluateEndToEnd(t *testing.T) {
	e := timelineEvaluator()
	slides := []model.SlideText{
		{Number: 1, Body: "The platform launch deadline is 06/30/2024 per the plan"},
		{Number: 3, Body: "We plan to complete the platform launch work on 09/15/2024"},
	}

	findings, err := e.Evaluate(context.Background(), slides)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(findings) == 0 {
		t.Fatal("expected at least one timeline finding")
	}
	for _, f := range findings {
		if f.Confidence < 0.1 || f.Confidence > 1.0 {
			t.Errorf("confidence out of range: %v", f)
		}
	}
}
