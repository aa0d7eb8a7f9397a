package retrieval

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizkb/internal/domain"
	"bizkb/internal/store"
)

// fakeEmbedder maps exact texts to preset vectors.
type fakeEmbedder struct {
	dim     int
	vectors map[string][]float64
	fail    error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, task domain.TaskType) ([]float64, error) {
	vs, err := f.EmbedBatch(ctx, []string{text}, task)
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string, _ domain.TaskType) ([][]float64, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = make([]float64, f.dim)
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int    { return f.dim }
func (f *fakeEmbedder) ModelName() string { return "fake-embedder" }

// fakeGenerator records calls and returns a canned completion.
type fakeGenerator struct {
	text    string
	fail    error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ domain.GenerateOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.fail != nil {
		return "", f.fail
	}
	return f.text, nil
}

func (f *fakeGenerator) ModelName() string { return "fake-generator" }

const remotePolicy = "Employees may work remotely up to 3 days per week."

func newTestPipeline(t *testing.T, emb *fakeEmbedder, gen *fakeGenerator, docs []domain.DocumentInput) (*Pipeline, *store.Store) {
	t.Helper()
	st := store.New(emb, nil)
	if len(docs) > 0 {
		require.NoError(t, st.Insert(context.Background(), docs))
	}
	return New(emb, st, gen, domain.GenerateOptions{MaxTokens: 256}, nil), st
}

func TestSearch_RanksMostSimilarFirst(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, vectors: map[string][]float64{
		remotePolicy: {1, 0},
		"Expense reports are due within 30 days.": {0, 1},
		"How many remote days are allowed?":       {0.9, 0.1},
	}}
	p, _ := newTestPipeline(t, emb, &fakeGenerator{}, []domain.DocumentInput{
		{ID: "HR-001", Title: "Remote Work", Content: remotePolicy, Category: "HR"},
		{ID: "FIN-001", Title: "Expenses", Content: "Expense reports are due within 30 days.", Category: "Finance"},
	})

	hits, err := p.Search(context.Background(), "How many remote days are allowed?", 2, "")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "HR-001", hits[0].Document.ID)
}

func TestSearch_CategoryFilter(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, vectors: map[string][]float64{
		"a": {1, 0}, "b": {1, 0}, "query": {1, 0},
	}}
	p, _ := newTestPipeline(t, emb, &fakeGenerator{}, []domain.DocumentInput{
		{ID: "A", Content: "a", Category: "HR"},
		{ID: "B", Content: "b", Category: "Finance"},
	})

	hits, err := p.Search(context.Background(), "query", 5, "finance")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "B", hits[0].Document.ID)

	hits, err = p.Search(context.Background(), "query", 5, "legal")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_EmptyStoreShortCircuits(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, vectors: map[string][]float64{"q": {1, 0}}}
	p, _ := newTestPipeline(t, emb, &fakeGenerator{}, nil)

	hits, err := p.Search(context.Background(), "q", 3, "")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_EmbeddingFailurePropagates(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, fail: fmt.Errorf("%w: boom", domain.ErrEmbeddingProvider)}
	st := store.New(&fakeEmbedder{dim: 2, vectors: map[string][]float64{}}, nil)
	p := New(emb, st, &fakeGenerator{}, domain.GenerateOptions{}, nil)

	_, err := p.Search(context.Background(), "q", 3, "")
	assert.ErrorIs(t, err, domain.ErrEmbeddingProvider)
}

func TestSearch_WrongQueryDimension(t *testing.T) {
	// The embedder claims dimension 4 but returns 2-element vectors.
	emb := &fakeEmbedder{dim: 4, vectors: map[string][]float64{"q": {1, 0}}}
	p, _ := newTestPipeline(t, emb, &fakeGenerator{}, nil)

	_, err := p.Search(context.Background(), "q", 3, "")
	assert.ErrorIs(t, err, domain.ErrEmbeddingProvider)
}

func TestAnswer_GroundedWithMinConfidence(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, vectors: map[string][]float64{
		remotePolicy: {1, 0},
		"Core hours are 10 AM to 4 PM.": {0.5, 0.5},
		"question":                      {1, 0},
	}}
	gen := &fakeGenerator{text: "Up to 3 days per week (POLICY-001)."}
	p, _ := newTestPipeline(t, emb, gen, []domain.DocumentInput{
		{ID: "POLICY-001", Content: remotePolicy, Category: "HR"},
		{ID: "POLICY-002", Content: "Core hours are 10 AM to 4 PM.", Category: "HR"},
	})

	ans, err := p.Answer(context.Background(), "question", 2)
	require.NoError(t, err)
	assert.Equal(t, "Up to 3 days per week (POLICY-001).", ans.Text)
	require.Equal(t, []string{"POLICY-001", "POLICY-002"}, ans.Sources)

	// Confidence is the floor, not the average or the maximum: cosine of
	// (1,0) with (1,0) is 1, with (0.5,0.5) is ~0.7071.
	assert.InDelta(t, 0.7071, ans.Confidence, 1e-3)
	assert.Equal(t, 1, gen.calls)
}

func TestAnswer_EmptyStoreSkipsGeneration(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, vectors: map[string][]float64{"anything": {1, 0}}}
	gen := &fakeGenerator{text: "should never be produced"}
	p, _ := newTestPipeline(t, emb, gen, nil)

	ans, err := p.Answer(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Equal(t, InsufficientAnswer, ans.Text)
	assert.Empty(t, ans.Sources)
	assert.Zero(t, ans.Confidence)
	assert.False(t, ans.Grounded())
	assert.Zero(t, gen.calls, "no generation call may be issued for an ungrounded query")
}

func TestAnswer_GenerationFailurePropagates(t *testing.T) {
	emb := &fakeEmbedder{dim: 2, vectors: map[string][]float64{
		"doc": {1, 0}, "q": {1, 0},
	}}
	gen := &fakeGenerator{fail: fmt.Errorf("%w: upstream 500", domain.ErrGenerationProvider)}
	p, _ := newTestPipeline(t, emb, gen, []domain.DocumentInput{{ID: "D1", Content: "doc"}})

	_, err := p.Answer(context.Background(), "q", 1)
	assert.ErrorIs(t, err, domain.ErrGenerationProvider)
}

func TestBuildAnswerPrompt(t *testing.T) {
	hits := []domain.RankedHit{
		{Document: domain.Document{ID: "HR-001", Content: "first content"}, Similarity: 0.9},
		{Document: domain.Document{ID: "FIN-001", Content: "second content"}, Similarity: 0.5},
	}
	prompt := buildAnswerPrompt("What is the policy?", hits)

	assert.Contains(t, prompt, "User Question: What is the policy?")
	assert.Contains(t, prompt, "Document 1 (ID: HR-001):\nfirst content")
	assert.Contains(t, prompt, "Document 2 (ID: FIN-001):\nsecond content")
	assert.Contains(t, prompt, "based only on the context")
	assert.Contains(t, prompt, "document IDs")

	// The most relevant document appears first in the prompt.
	assert.Less(t, strings.Index(prompt, "HR-001"), strings.Index(prompt, "FIN-001"))
}
