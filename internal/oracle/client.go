package oracle

import (
	"context"
	"log/slog"
	"time"
)

// Client combines a provider with pacing and retry. All oracle traffic in
// the analyzer goes through a single Client so the request-rate ceiling is
// honored across evaluators.
type Client struct {
	provider Provider
	pacer    *Pacer
	policy   Policy
	log      *slog.Logger
}

// NewClient wraps a provider with a pacer and retry policy.
func NewClient(provider Provider, requestDelay time.Duration, maxRetries int, log *slog.Logger) *Client {
	return &Client{
		provider: provider,
		pacer:    NewPacer(requestDelay),
		policy:   DefaultPolicy(maxRetries),
		log:      log,
	}
}

// Name returns the underlying provider name.
func (c *Client) Name() string { return c.provider.Name() }

// Generate issues a paced, retried text-generation call.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var response string
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		out, err := c.provider.Generate(ctx, prompt)
		if err != nil {
			c.log.Warn("oracle generate failed", "provider", c.provider.Name(), "class", Classify(err).String(), "error", err)
			return err
		}
		response = out
		return nil
	})
	return response, err
}

// Embed issues a paced, retried embedding call.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	var vectors [][]float64
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		out, err := c.provider.Embed(ctx, texts)
		if err != nil {
			c.log.Warn("oracle embed failed", "provider", c.provider.Name(), "class", Classify(err).String(), "error", err)
			return err
		}
		vectors = out
		return nil
	})
	return vectors, err
}

// ExtractImageText performs OCR when the provider supports vision input.
// Returns ("", false, nil) when it does not.
func (c *Client) ExtractImageText(ctx context.Context, imagePath string) (string, bool, error) {
	vp, ok := c.provider.(VisionProvider)
	if !ok {
		return "", false, nil
	}
	var text string
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		out, err := vp.ExtractImageText(ctx, imagePath)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	return text, true, err
}

// Close releases the underlying provider.
func (c *Client) Close() error { return c.provider.Close() }
