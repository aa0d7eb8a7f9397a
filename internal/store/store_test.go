package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizkb/internal/domain"
)

// fakeEmbedder returns constant-dimension vectors and can be told to fail.
type fakeEmbedder struct {
	dim        int
	failBatch  error
	badVectors bool
	calls      int
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
	if f.failBatch != nil {
		return nil, f.failBatch
	}
	dim := f.dim
	if f.badVectors {
		dim++
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		v := make([]float64, dim)
		v[0] = float64(len(texts[i]))
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int    { return f.dim }
func (f *fakeEmbedder) ModelName() string { return "fake-embedder" }

func inputs(n int) []domain.DocumentInput {
	out := make([]domain.DocumentInput, n)
	for i := range out {
		out[i] = domain.DocumentInput{
			ID:       fmt.Sprintf("DOC-%03d", i+1),
			Title:    fmt.Sprintf("Document %d", i+1),
			Content:  fmt.Sprintf("content of document %d", i+1),
			Category: "General",
		}
	}
	return out
}

func TestStore_InsertAttachesEmbeddingAndTimestamp(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	s := New(emb, nil)

	require.NoError(t, s.Insert(context.Background(), inputs(3)))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, emb.calls, "batch insert should issue a single embedding request")

	docs, err := s.All("")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, d := range docs {
		assert.Len(t, d.Embedding, 4)
		assert.False(t, d.DateAdded.IsZero())
	}
}

func TestStore_InsertEmptyBatch(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	s := New(emb, nil)
	require.NoError(t, s.Insert(context.Background(), nil))
	assert.Zero(t, emb.calls)
	assert.Zero(t, s.Len())
}

func TestStore_InsertValidatesInput(t *testing.T) {
	s := New(&fakeEmbedder{dim: 4}, nil)

	err := s.Insert(context.Background(), []domain.DocumentInput{{Title: "no id", Content: "text"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.Insert(context.Background(), []domain.DocumentInput{{ID: "X", Content: "   "}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_InsertAtomicOnEmbeddingFailure(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	s := New(emb, nil)
	require.NoError(t, s.Insert(context.Background(), inputs(2)))

	emb.failBatch = fmt.Errorf("%w: quota exceeded", domain.ErrEmbeddingProvider)
	err := s.Insert(context.Background(), inputs(5))
	require.ErrorIs(t, err, domain.ErrEmbeddingProvider)

	// Nothing from the failed batch was committed.
	assert.Equal(t, 2, s.Len())
	docs, err := s.All("")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_InsertRejectsWrongDimension(t *testing.T) {
	emb := &fakeEmbedder{dim: 4, badVectors: true}
	s := New(emb, nil)
	err := s.Insert(context.Background(), inputs(1))
	require.ErrorIs(t, err, domain.ErrEmbeddingProvider)
	assert.Zero(t, s.Len())
}

func TestStore_CategoryFilter(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	s := New(emb, nil)
	docs := []domain.DocumentInput{
		{ID: "A", Content: "a", Category: "HR"},
		{ID: "B", Content: "b", Category: "Finance"},
		{ID: "C", Content: "c", Category: "HR"},
	}
	require.NoError(t, s.Insert(context.Background(), docs))

	// Case-insensitive substring match, insertion order preserved.
	got, err := s.All("hr")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ID)
	assert.Equal(t, "C", got[1].ID)

	got, err = s.All("fin")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].ID)

	got, err = s.All("legal")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_AllEmptyStore(t *testing.T) {
	s := New(&fakeEmbedder{dim: 4}, nil)
	got, err := s.All("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_AllDetectsIntegrityViolation(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	s := New(emb, nil)
	require.NoError(t, s.Insert(context.Background(), inputs(1)))

	// A dimension change after insertion makes stored vectors stale. Reads
	// must report this instead of silently skipping documents.
	emb.dim = 8
	_, err := s.All("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataIntegrity))
}
