package domain

import "context"

// Message is a single role/content pair sent to the model provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateOptions carries the per-request generation controls.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces a model reply for an ordered message list.
type Generator interface {
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)
}

// Embedder converts text into vectors for similarity comparison.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}
