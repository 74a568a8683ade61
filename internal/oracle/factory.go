package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/slidesift/slidesift/internal/config"
)

// NewProvider creates an oracle provider from configuration.
func NewProvider(ctx context.Context, cfg config.OracleConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return NewGeminiProvider(ctx, cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: gemini, openai, ollama)", cfg.Provider)
	}
}
