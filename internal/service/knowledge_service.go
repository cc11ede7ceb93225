package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/repository"
	"go.uber.org/zap"
)

// RecallSeparator joins retrieved chunks into one context blob.
const RecallSeparator = "\n---\n"

// KnowledgeService is the knowledge store: chunk texts plus their embeddings,
// persisted in sqlite, queried by cosine similarity.
type KnowledgeService struct {
	chunkRepo *repository.ChunkRepository
	embedder  domain.Embedder
	logger    *zap.Logger
}

// NewKnowledgeService creates a new knowledge service. The embedder may be
// nil when no provider credential is configured; upserts then fail per-call
// and queries degrade to empty results.
func NewKnowledgeService(
	chunkRepo *repository.ChunkRepository,
	embedder domain.Embedder,
	logger *zap.Logger,
) *KnowledgeService {
	return &KnowledgeService{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		logger:    logger,
	}
}

// Upsert embeds the chunk texts and writes the entries. Embedding failures
// propagate: indexing is an explicit operation and the caller surfaces them.
func (s *KnowledgeService) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if s.embedder == nil {
		return domain.ErrNoCredential
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}

	stored := make([]domain.StoredChunk, len(chunks))
	for i, c := range chunks {
		stored[i] = domain.StoredChunk{ID: c.ID, Content: c.Content, Embedding: vectors[i]}
	}
	return s.chunkRepo.Upsert(ctx, stored)
}

// Query returns up to k chunk texts ranked by descending similarity to the
// query text. Ties keep insertion order. An embedder failure degrades to an
// empty result: retrieval is optional, the conversation is not.
func (s *KnowledgeService) Query(ctx context.Context, text string, k int) ([]string, error) {
	if k <= 0 || s.embedder == nil {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("query embedding failed, skipping retrieval", zap.Error(err))
		return nil, nil
	}

	entries, err := s.chunkRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge store: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	type scored struct {
		content string
		score   float64
	}
	results := make([]scored, len(entries))
	for i, e := range entries {
		results[i] = scored{content: e.Content, score: cosineSimilarity(queryVec, e.Embedding)}
	}

	// Stable keeps insertion order between equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	texts := make([]string, k)
	for i := 0; i < k; i++ {
		texts[i] = results[i].content
	}
	return texts, nil
}

// Recall fetches the top-k matches and joins them into one context blob.
// It never fails: any underlying error degrades to "no extra context".
func (s *KnowledgeService) Recall(ctx context.Context, query string, k int) string {
	texts, err := s.Query(ctx, query, k)
	if err != nil {
		s.logger.Warn("recall failed, continuing without context", zap.Error(err))
		return ""
	}
	if len(texts) == 0 {
		return ""
	}
	return strings.Join(texts, RecallSeparator)
}

// DeleteAll drops every knowledge store entry.
func (s *KnowledgeService) DeleteAll(ctx context.Context) error {
	return s.chunkRepo.DeleteAll(ctx)
}

// Count returns the number of stored chunks.
func (s *KnowledgeService) Count(ctx context.Context) (int, error) {
	return s.chunkRepo.Count(ctx)
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
