package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinister/mentor/internal/domain"
	"go.uber.org/zap"
)

func newTestKnowledge(t *testing.T, embedder domain.Embedder) *KnowledgeService {
	t.Helper()
	return NewKnowledgeService(newTestChunkRepo(t), embedder, zap.NewNop())
}

func TestUpsertEmbedsChunks(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{
		{ID: "seed/a_0", Content: "about alpha"},
		{ID: "seed/a_1", Content: "about beta"},
	}))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpsertWithoutEmbedder(t *testing.T) {
	svc := newTestKnowledge(t, nil)
	err := svc.Upsert(context.Background(), []domain.Chunk{{ID: "x", Content: "y"}})
	assert.ErrorIs(t, err, domain.ErrNoCredential)
}

func TestUpsertEmbedderFailurePropagates(t *testing.T) {
	embedder := &mockEmbedder{embedFn: func(string) ([]float64, error) { return nil, errProviderDown }}
	svc := newTestKnowledge(t, embedder)

	err := svc.Upsert(context.Background(), []domain.Chunk{{ID: "x", Content: "y"}})
	assert.ErrorIs(t, err, errProviderDown)
}

func TestQueryRanksBySimilarity(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{
		{ID: "seed/a_0", Content: "notes on beta topics"},
		{ID: "seed/a_1", Content: "all about alpha things"},
		{ID: "seed/a_2", Content: "gamma rays"},
	}))

	texts, err := svc.Query(ctx, "tell me about alpha", 2)
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "all about alpha things", texts[0])
}

func TestQueryReturnsAtMostK(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{
		{ID: "s_0", Content: "alpha one"},
		{ID: "s_1", Content: "alpha two"},
		{ID: "s_2", Content: "alpha three"},
	}))

	texts, err := svc.Query(ctx, "alpha", 2)
	require.NoError(t, err)
	assert.Len(t, texts, 2)

	texts, err = svc.Query(ctx, "alpha", 10)
	require.NoError(t, err)
	assert.Len(t, texts, 3)
}

func TestQueryTiesKeepInsertionOrder(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	ctx := context.Background()

	// Identical scores for every entry: ranking falls back to insertion order.
	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{
		{ID: "s_0", Content: "alpha first"},
		{ID: "s_1", Content: "alpha second"},
		{ID: "s_2", Content: "alpha third"},
	}))

	texts, err := svc.Query(ctx, "alpha", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha first", "alpha second", "alpha third"}, texts)
}

func TestQueryEmbedderFailureFailsSoft(t *testing.T) {
	fail := false
	embedder := &mockEmbedder{embedFn: func(text string) ([]float64, error) {
		if fail {
			return nil, errProviderDown
		}
		return wordVector(text), nil
	}}
	svc := newTestKnowledge(t, embedder)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{{ID: "s_0", Content: "alpha"}}))

	fail = true
	texts, err := svc.Query(ctx, "alpha", 4)
	assert.NoError(t, err)
	assert.Empty(t, texts)
}

func TestQueryWithoutEmbedder(t *testing.T) {
	svc := newTestKnowledge(t, nil)
	texts, err := svc.Query(context.Background(), "anything", 4)
	assert.NoError(t, err)
	assert.Empty(t, texts)
}

func TestRecallJoinsResults(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{
		{ID: "s_0", Content: "alpha one"},
		{ID: "s_1", Content: "alpha two"},
	}))

	blob := svc.Recall(ctx, "alpha", 2)
	assert.Equal(t, "alpha one"+RecallSeparator+"alpha two", blob)
}

func TestRecallEmptyStore(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	assert.Empty(t, svc.Recall(context.Background(), "anything", 4))
}

func TestRecallNeverFails(t *testing.T) {
	embedder := &mockEmbedder{embedFn: func(string) ([]float64, error) { return nil, errProviderDown }}
	svc := newTestKnowledge(t, embedder)
	assert.Empty(t, svc.Recall(context.Background(), "anything", 4))
}

func TestDeleteAll(t *testing.T) {
	svc := newTestKnowledge(t, &mockEmbedder{})
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, []domain.Chunk{{ID: "s_0", Content: "alpha"}}))
	require.NoError(t, svc.DeleteAll(ctx))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 0}, []float64{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.Zero(t, cosineSimilarity(nil, []float64{1}))
}

func TestUpsertNoChunksSkipsEmbedder(t *testing.T) {
	// No credential configured, but nothing to embed either: not an error.
	svc := newTestKnowledge(t, nil)
	assert.NoError(t, svc.Upsert(context.Background(), nil))
}
