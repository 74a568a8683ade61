// Package report models an analysis run's output and renders it.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/slidesift/slidesift/internal/model"
)

// Report is the full result of one analysis run.
type Report struct {
	RunID       string          `json:"run_id"`
	Source      string          `json:"source"`
	GeneratedAt time.Time       `json:"generated_at"`
	TotalIssues int             `json:"total_issues"`
	Findings    []model.Finding `json:"issues"`
}

// New assembles a report from a deduplicated finding set.
func New(source string, findings *model.FindingSet) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		TotalIssues: findings.Len(),
		Findings:    findings.Findings(),
	}
}
