// Package oracle wraps the external text-generation and embedding service
// the analyzer uses as a black-box classifier.
package oracle

import "context"

// Provider defines the interface for oracle backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Generate sends a free-form prompt and returns the raw response text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Embed returns one fixed-length vector per input text, order-preserving.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// Close releases any underlying connections.
	Close() error
}

// VisionProvider is implemented by providers that can read slide images.
type VisionProvider interface {
	// ExtractImageText performs OCR over a slide image.
	ExtractImageText(ctx context.Context, imagePath string) (string, error)
}
