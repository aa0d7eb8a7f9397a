// Package store provides the in-memory knowledge-base document store.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"bizkb/internal/domain"
)

// Ensure Store implements the interface.
var _ domain.DocumentStore = (*Store)(nil)

// Store is an append-only in-memory document store. Embeddings are attached
// at insertion time using the injected embedder; documents are never mutated
// afterwards. Safe for concurrent use: readers interleave freely and a batch
// insert becomes visible to readers atomically or not at all.
type Store struct {
	embedder domain.Embedder
	log      *zap.Logger

	mu   sync.RWMutex
	docs []domain.Document
}

// New creates an empty store bound to an embedding provider.
func New(embedder domain.Embedder, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{embedder: embedder, log: log}
}

// Insert embeds and appends a batch of documents. All contents are embedded
// in a single provider request. The batch is all-or-nothing: on any failure
// the store is left exactly as it was.
func (s *Store) Insert(ctx context.Context, docs []domain.DocumentInput) error {
	if len(docs) == 0 {
		return nil
	}
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("%w: document without id", domain.ErrInvalidInput)
		}
		if strings.TrimSpace(d.Content) == "" {
			return fmt.Errorf("%w: document %s has empty content", domain.ErrInvalidInput, d.ID)
		}
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts, domain.TaskDocument)
	if err != nil {
		return err
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("%w: got %d embeddings for %d documents",
			domain.ErrEmbeddingProvider, len(vectors), len(docs))
	}
	dim := s.embedder.Dimension()
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: document %s embedding has dimension %d, want %d",
				domain.ErrEmbeddingProvider, docs[i].ID, len(v), dim)
		}
	}

	now := time.Now()
	batch := make([]domain.Document, len(docs))
	for i, d := range docs {
		batch[i] = domain.Document{
			ID:        d.ID,
			Title:     d.Title,
			Content:   d.Content,
			Category:  d.Category,
			Embedding: vectors[i],
			DateAdded: now,
		}
	}

	s.mu.Lock()
	s.docs = append(s.docs, batch...)
	total := len(s.docs)
	s.mu.Unlock()

	s.log.Debug("documents inserted",
		zap.Int("batch", len(batch)),
		zap.Int("total", total))
	return nil
}

// All returns a snapshot of stored documents in insertion order, optionally
// filtered by a case-insensitive category substring. An empty store or a
// filter matching nothing yields an empty slice, not an error.
func (s *Store) All(categoryFilter string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dim := s.embedder.Dimension()
	filter := strings.ToLower(categoryFilter)
	out := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if len(doc.Embedding) == 0 || len(doc.Embedding) != dim {
			return nil, fmt.Errorf("%w: document %s has embedding dimension %d, want %d",
				domain.ErrDataIntegrity, doc.ID, len(doc.Embedding), dim)
		}
		if filter != "" && !strings.Contains(strings.ToLower(doc.Category), filter) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
