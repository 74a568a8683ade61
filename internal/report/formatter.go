package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// NewFormatter selects a formatter by name: "rich", "simple" or "json".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "rich":
		return &RichFormatter{}, nil
	case "simple":
		return &SimpleFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q (supported: rich, simple, json)", format)
	}
}

// RichFormatter renders a colored console report.
type RichFormatter struct{}

// Format writes the findings as a colored listing, or a green
// all-consistent banner when there are none.
func (f *RichFormatter) Format(w io.Writer, r *Report) error {
	title := color.New(color.FgMagenta, color.Bold)
	heading := color.New(color.FgCyan, color.Bold)
	slideStyle := color.New(color.FgGreen)
	typeStyle := color.New(color.FgYellow)

	if len(r.Findings) == 0 {
		ok := color.New(color.FgGreen, color.Bold)
		if _, err := ok.Fprintln(w, "\nNo inconsistencies detected!"); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "The presentation appears to be internally consistent.\n"+
			"All numerical data, claims, and timelines align properly.")
		return err
	}

	if _, err := title.Fprintf(w, "\nSlide Inconsistency Report: %s\n\n", r.Source); err != nil {
		return err
	}

	for i, finding := range r.Findings {
		if _, err := heading.Fprintf(w, "%d. %s\n", i+1, finding.Description); err != nil {
			return err
		}
		typeStyle.Fprintf(w, "   Type: %s\n", displayType(string(finding.Type)))
		slideStyle.Fprintf(w, "   Slides: %s\n", joinSlides(finding.Slides))

		conf := color.New(confidenceColor(finding.Confidence))
		conf.Fprintf(w, "   Confidence: %.1f%%\n", finding.Confidence*100)

		if _, err := fmt.Fprintf(w, "   Details: %s\n\n", finding.Details); err != nil {
			return err
		}
	}

	_, err := color.New(color.FgGreen, color.Bold).Fprintf(w, "Total issues found: %d\n", r.TotalIssues)
	return err
}

func confidenceColor(confidence float64) color.Attribute {
	switch {
	case confidence >= 0.8:
		return color.FgRed
	case confidence >= 0.6:
		return color.FgYellow
	default:
		return color.FgWhite
	}
}

// SimpleFormatter renders a plain-text report.
type SimpleFormatter struct{}

// Format writes the findings as numbered plain text.
func (f *SimpleFormatter) Format(w io.Writer, r *Report) error {
	if len(r.Findings) == 0 {
		_, err := fmt.Fprintln(w, "No inconsistencies detected")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Slide Inconsistency Report: %s\n", r.Source)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for i, finding := range r.Findings {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, finding.Description)
		fmt.Fprintf(&b, "   Type: %s\n", finding.Type)
		fmt.Fprintf(&b, "   Slides: %s\n", joinSlides(finding.Slides))
		fmt.Fprintf(&b, "   Confidence: %.1f%%\n", finding.Confidence*100)
		fmt.Fprintf(&b, "   Details: %s\n", finding.Details)
	}
	fmt.Fprintf(&b, "\nTotal issues found: %d\n", r.TotalIssues)

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONFormatter renders the report as indented JSON.
type JSONFormatter struct{}

// Format writes the report as JSON.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func joinSlides(slides []int) string {
	parts := make([]string, len(slides))
	for i, s := range slides {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ", ")
}

func displayType(issueType string) string {
	words := strings.Split(issueType, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
