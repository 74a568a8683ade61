package model

import "strings"

// SlideText is the extracted text content of a single slide.
// It is created once during ingestion and never mutated afterward.
type SlideText struct {
	Number    int      `json:"number"`               // 1-based slide number
	Title     string   `json:"title,omitempty"`      // Title placeholder text (or first content block)
	Body      string   `json:"body,omitempty"`       // Remaining text boxes, newline-joined
	Tables    []string `json:"tables,omitempty"`     // Each table rendered as pipe-joined rows
	Notes     string   `json:"notes,omitempty"`      // Speaker notes
	ImageText string   `json:"image_text,omitempty"` // OCR text from the slide image, if any
}

// AllText concatenates the slide's content in a stable order:
// title, body, tables, notes, image text.
func (s SlideText) AllText() string {
	var parts []string
	if s.Title != "" {
		parts = append(parts, s.Title)
	}
	if s.Body != "" {
		parts = append(parts, s.Body)
	}
	parts = append(parts, s.Tables...)
	if s.Notes != "" {
		parts = append(parts, s.Notes)
	}
	if s.ImageText != "" {
		parts = append(parts, s.ImageText)
	}
	return strings.Join(parts, "\n")
}
