package model

import "time"

// NumericMetric is one numeric mention classified as a business metric.
// Value is the number after suffix expansion (K/M/B/T) and separator removal.
type NumericMetric struct {
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`     // e.g. "USD_millions", "minutes", "percentage"
	RawText  string  `json:"raw_text"` // The matched text, e.g. "$2M"
	Sentence string  `json:"sentence"` // Enclosing sentence (or context window)
	Slide    int     `json:"slide"`
}

// Percentage is one percentage mention. Value is not clamped; validity of
// negative or over-100 values is judged by the percentage evaluator.
type Percentage struct {
	Value        float64 `json:"value"`
	CategoryHint string  `json:"category_hint,omitempty"`
	Slide        int     `json:"slide"`
}

// Claim is a cleaned assertion sentence extracted from a slide.
type Claim struct {
	Text  string `json:"text"`
	Slide int    `json:"slide"`
}

// EventType classifies the temporal nature of a timeline event.
type EventType string

const (
	EventPast       EventType = "past"
	EventFuture     EventType = "future"
	EventOngoing    EventType = "ongoing"
	EventCompletion EventType = "completion"
	EventDeadline   EventType = "deadline"
)

// TimelineEvent is a dated event mention with a heuristic extraction
// confidence in [0.1, 1.0].
type TimelineEvent struct {
	Date        time.Time `json:"date"` // Date precision; time of day is not meaningful
	Type        EventType `json:"type"`
	Description string    `json:"description"` // Event text with the date elided
	Context     string    `json:"context"`     // Full source sentence
	Confidence  float64   `json:"confidence"`
	Slide       int       `json:"slide"`
}
