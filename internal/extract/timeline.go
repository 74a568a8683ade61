package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/slidesift/slidesift/internal/config"
	"github.com/slidesift/slidesift/internal/model"
)

const monthNames = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

// datePatterns cover the temporal expressions decks actually use: numeric
// dates, month names, fiscal quarters, and bare years with enough context
// to be a date rather than a quantity.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
	regexp.MustCompile(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`),
	regexp.MustCompile(`(?i)\b((?:` + monthNames + `)[a-z]*\.?\s+\d{1,2},?\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:` + monthNames + `)[a-z]*\.?\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b(Q[1-4]\s+\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{4})\s+(?:quarter|year|fiscal|budget|by\s+end)\b`),
}

var quarterRe = regexp.MustCompile(`(?i)^Q([1-4])\s+(\d{4})$`)

var (
	pastIndicators = []string{
		"completed", "achieved", "launched", "established", "founded",
		"acquired", "merged", "closed", "sold", "delivered", "finished",
		"ended", "concluded", "was", "were", "had", "did", "have completed",
		"successfully", "implemented", "deployed", "released",
	}
	futureIndicators = []string{
		"will", "plan", "planning", "expect", "expecting", "forecast",
		"projected", "scheduled", "upcoming", "future", "next",
		"target", "goal", "aim", "intend", "going to", "shall",
		"anticipated", "proposed", "intended",
	}
	completionIndicators = []string{
		"by", "before", "until", "deadline", "due", "complete by",
		"finish by", "deliver by", "launch by", "ready by",
		"completion date", "target date", "expected completion",
	}
	deadlineIndicators = []string{
		"deadline", "due date", "must be completed", "final date",
		"cutoff", "expiry", "expires", "ends by",
	}
)

var (
	futureTenseRe    = regexp.MustCompile(`\b(will|shall|going to|plan to)\b`)
	pastTenseRe      = regexp.MustCompile(`\b(was|were|had|did|completed|finished)\b`)
	numericDateRe    = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}`)
	quarterPrefixRe  = regexp.MustCompile(`(?i)^Q[1-4]\s+\d{4}`)
	yearPrefixRe     = regexp.MustCompile(`^\d{4}`)
	bareYearRe       = regexp.MustCompile(`^\d{4}$`)
	businessContexts = []string{"project", "launch", "deadline", "completion", "target", "goal"}
)

// EventExtractor finds dated events in slide text.
type EventExtractor struct {
	cfg config.TimelineConfig
	now func() time.Time
}

// NewEventExtractor creates a timeline event extractor.
func NewEventExtractor(cfg config.TimelineConfig) *EventExtractor {
	return &EventExtractor{cfg: cfg, now: time.Now}
}

// Extract returns every dated event mentioned on the slide, typed and
// scored. Dates outside the plausible calendar window are dropped.
func (e *EventExtractor) Extract(slide model.SlideText) []model.TimelineEvent {
	var events []model.TimelineEvent
	for _, sentence := range Sentences(slide.AllText()) {
		if len(strings.Fields(sentence)) < 3 {
			continue
		}
		events = append(events, e.eventsInSentence(slide.Number, sentence)...)
	}
	return events
}

func (e *EventExtractor) eventsInSentence(slideNum int, sentence string) []model.TimelineEvent {
	var events []model.TimelineEvent
	seen := map[time.Time]bool{}

	for _, pattern := range datePatterns {
		for _, idx := range pattern.FindAllStringSubmatchIndex(sentence, -1) {
			dateStr := sentence[idx[2]:idx[3]]
			date, ok := e.parseDate(dateStr)
			if !ok || seen[date] {
				continue
			}
			seen[date] = true

			events = append(events, model.TimelineEvent{
				Date:        date,
				Type:        eventType(sentence),
				Description: eventDescription(sentence, dateStr, idx[2], idx[3]),
				Context:     sentence,
				Confidence:  eventConfidence(sentence, dateStr),
				Slide:       slideNum,
			})
		}
	}
	return events
}

// parseDate resolves a matched date string to a calendar date. Quarters map
// to day 15 of the quarter's middle month.
func (e *EventExtractor) parseDate(dateStr string) (time.Time, bool) {
	if m := quarterRe.FindStringSubmatch(dateStr); m != nil {
		quarter, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		month := time.Month((quarter-1)*3 + 2)
		d := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
		return d, e.reasonableDate(d)
	}

	parsed, err := dateparse.ParseAny(dateStr)
	if err != nil {
		return time.Time{}, false
	}
	d := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return d, e.reasonableDate(d)
}

func (e *EventExtractor) reasonableDate(d time.Time) bool {
	return d.Year() >= e.cfg.MinYear && d.Year() <= e.now().Year()+e.cfg.MaxYearsAhead
}

// eventType classifies a sentence by keyword precedence (deadline wins over
// completion, completion over past, past over future) with a tense-regex
// fallback.
func eventType(sentence string) model.EventType {
	lower := strings.ToLower(sentence)

	if containsAny(lower, deadlineIndicators) {
		return model.EventDeadline
	}
	if containsAny(lower, completionIndicators) {
		return model.EventCompletion
	}
	if containsAny(lower, pastIndicators) {
		return model.EventPast
	}
	if containsAny(lower, futureIndicators) {
		return model.EventFuture
	}

	switch {
	case futureTenseRe.MatchString(lower):
		return model.EventFuture
	case pastTenseRe.MatchString(lower):
		return model.EventPast
	default:
		return model.EventOngoing
	}
}

// eventDescription takes the text around the date, elides the date itself,
// and truncates for readability.
func eventDescription(sentence, dateStr string, start, end int) string {
	lo := max(0, start-80)
	hi := min(len(sentence), end+80)

	desc := strings.TrimSpace(whitespaceRe.ReplaceAllString(sentence[lo:hi], " "))
	desc = strings.ReplaceAll(desc, dateStr, "[DATE]")
	if len(desc) > 120 {
		desc = desc[:117] + "..."
	}
	return desc
}

// eventConfidence scores extraction reliability from 0.4 base: temporal
// indicators and precise date formats raise it, short sentences and bare
// years lower it. Clamped to [0.1, 1.0].
func eventConfidence(sentence, dateStr string) float64 {
	confidence := 0.4
	lower := strings.ToLower(sentence)

	if containsAny(lower, pastIndicators) || containsAny(lower, futureIndicators) ||
		containsAny(lower, completionIndicators) {
		confidence += 0.3
	}

	switch {
	case numericDateRe.MatchString(dateStr):
		confidence += 0.2
	case quarterPrefixRe.MatchString(dateStr):
		confidence += 0.15
	case yearPrefixRe.MatchString(dateStr):
		confidence += 0.1
	}

	if containsAny(lower, businessContexts) {
		confidence += 0.2
	}
	if len(strings.Fields(sentence)) < 5 {
		confidence -= 0.2
	}
	if bareYearRe.MatchString(dateStr) {
		confidence -= 0.1
	}

	return min(1.0, max(0.1, confidence))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
