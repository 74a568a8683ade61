package detect

import (
	"context"
	"errors"

	"github.com/slidesift/slidesift/internal/logging"
	"github.com/slidesift/slidesift/internal/oracle"
)

// scriptedProvider serves Generate responses in call order and constant
// embeddings per text, keyed by exact claim text.
type scriptedProvider struct {
	generate   []string
	embeddings map[string][]float64
	calls      int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(_ context.Context, _ string) (string, error) {
	if p.calls >= len(p.generate) {
		return "", errors.New("unexpected generate call")
	}
	resp := p.generate[p.calls]
	p.calls++
	return resp, nil
}

func (p *scriptedProvider) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		vec, ok := p.embeddings[t]
		if !ok {
			vec = []float64{0, 1} // Default: orthogonal to everything scripted
		}
		out[i] = vec
	}
	return out, nil
}

func (p *scriptedProvider) Close() error { return nil }

func scriptedClient(p *scriptedProvider) *oracle.Client {
	return oracle.NewClient(p, 0, 1, logging.Discard())
}
