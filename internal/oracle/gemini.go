package oracle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/slidesift/slidesift/internal/config"
)

const ocrPrompt = `Extract all visible text from this slide image. Include:
- All text content, headings, bullet points
- Numbers, percentages, financial figures
- Chart labels and data points
- Any other readable text

Return clean, structured text preserving hierarchy.`

// GeminiProvider implements Provider (and VisionProvider) on the Gemini API.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	embedModel string
}

// NewGeminiProvider creates a Gemini-backed oracle provider.
func NewGeminiProvider(ctx context.Context, cfg config.OracleConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required (set GEMINI_API_KEY)")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:     client,
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
	}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string { return "gemini" }

// Generate sends a prompt and returns the concatenated response text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m := p.client.GenerativeModel(p.model)
	m.SetTemperature(0.2)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}

// Embed returns one vector per input text via a single batch request.
func (p *GeminiProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	em := p.client.EmbeddingModel(p.embedModel)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini embed: got %d vectors for %d texts", len(res.Embeddings), len(texts))
	}

	vectors := make([][]float64, len(res.Embeddings))
	for i, e := range res.Embeddings {
		vec := make([]float64, len(e.Values))
		for j, v := range e.Values {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// ExtractImageText performs OCR over a slide image with vision input.
func (p *GeminiProvider) ExtractImageText(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	if format == "jpg" {
		format = "jpeg"
	}

	m := p.client.GenerativeModel(p.model)
	resp, err := m.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(ocrPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini vision: %w", err)
	}
	return collectText(resp), nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error { return p.client.Close() }

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
