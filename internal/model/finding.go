package model

import (
	"fmt"
	"sort"
	"strings"
)

// IssueType categorizes a detected inconsistency.
type IssueType string

const (
	IssueNumericalConflict     IssueType = "numerical_conflict"
	IssueInvalidPercentage     IssueType = "invalid_percentage"
	IssuePercentageError       IssueType = "potential_percentage_error"
	IssuePercentageSum         IssueType = "percentage_sum_error"
	IssueTextualContradiction  IssueType = "textual_contradiction"
	IssueChronologicalMismatch IssueType = "chronological_mismatch"
	IssueCompletionConflict    IssueType = "completion_conflict"
	IssueImpossibleTimeline    IssueType = "impossible_timeline"
	IssueDeadlineViolation     IssueType = "deadline_violation"
)

// Finding is one reported inconsistency. Findings are created by an
// evaluator and never mutated afterward.
type Finding struct {
	Slides      []int     `json:"slides"`
	Type        IssueType `json:"issue_type"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	Confidence  float64   `json:"confidence"`
}

// Key is the deduplication identity: sorted slide set, type, description and
// details. Confidence is deliberately excluded so duplicates with different
// scores still collapse.
func (f Finding) Key() string {
	slides := append([]int(nil), f.Slides...)
	sort.Ints(slides)
	var b strings.Builder
	for _, s := range slides {
		fmt.Fprintf(&b, "%d,", s)
	}
	b.WriteString("|")
	b.WriteString(string(f.Type))
	b.WriteString("|")
	b.WriteString(f.Description)
	b.WriteString("|")
	b.WriteString(f.Details)
	return b.String()
}

// Equal reports whether two findings collapse under deduplication.
func (f Finding) Equal(other Finding) bool {
	return f.Key() == other.Key()
}

// FindingSet pools evaluator outputs and collapses duplicates by Key.
// When duplicates differ only in confidence, the first-inserted finding
// survives; evaluator completion order is unspecified, so which confidence
// wins is accepted nondeterminism.
type FindingSet struct {
	byKey map[string]Finding
	order []string
}

// NewFindingSet creates an empty finding set.
func NewFindingSet() *FindingSet {
	return &FindingSet{byKey: make(map[string]Finding)}
}

// Add inserts a finding, ignoring duplicates. Returns true if the finding
// was new.
func (s *FindingSet) Add(f Finding) bool {
	key := f.Key()
	if _, exists := s.byKey[key]; exists {
		return false
	}
	s.byKey[key] = f
	s.order = append(s.order, key)
	return true
}

// AddAll inserts every finding in the slice.
func (s *FindingSet) AddAll(findings []Finding) {
	for _, f := range findings {
		s.Add(f)
	}
}

// Len returns the number of distinct findings.
func (s *FindingSet) Len() int {
	return len(s.byKey)
}

// Findings returns the distinct findings in insertion order.
func (s *FindingSet) Findings() []Finding {
	out := make([]Finding, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}
