package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zinister/mentor/internal/config"
	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/repository"
)

// mockEmbedder implements domain.Embedder with a deterministic word-presence
// vector so similarity ranking is predictable in tests.
type mockEmbedder struct {
	embedFn func(text string) ([]float64, error)
	calls   int
}

var embedderWords = []string{"alpha", "beta", "gamma"}

func wordVector(text string) []float64 {
	v := make([]float64, len(embedderWords))
	for i, w := range embedderWords {
		if strings.Contains(text, w) {
			v[i] = 1
		}
	}
	return v
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return wordVector(text), nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// mockGenerator implements domain.Generator and records what it was sent.
type mockGenerator struct {
	generateFn   func() (string, error)
	lastMessages []domain.Message
	lastOpts     domain.GenerateOptions
}

func (m *mockGenerator) Generate(ctx context.Context, messages []domain.Message, opts domain.GenerateOptions) (string, error) {
	m.lastMessages = messages
	m.lastOpts = opts
	if m.generateFn != nil {
		return m.generateFn()
	}
	return "mock answer", nil
}

var errProviderDown = errors.New("provider unavailable")

func newTestChunkRepo(t *testing.T) *repository.ChunkRepository {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "mentor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewChunkRepository(db)
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: config.StorageConfig{
			SeedDir:   filepath.Join(t.TempDir(), "knowledge"),
			UploadDir: filepath.Join(t.TempDir(), "uploads"),
		},
		RAG: config.RAGConfig{
			Enabled:   true,
			ChunkSize: 900,
			TopK:      4,
		},
		Chat: config.ChatConfig{
			SystemPrompt: "You are a test mentor.",
		},
	}
}
