// Package retrieval implements the embed -> rank -> ground -> generate
// pipeline over the knowledge base.
package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bizkb/internal/domain"
	"bizkb/internal/rank"
)

// InsufficientAnswer is returned when no documents could ground the question.
// This is a normal outcome, not an error.
const InsufficientAnswer = "I don't have enough information to answer this question."

// Pipeline orchestrates a single query: embed the question, rank the corpus,
// assemble a grounding context and ask the generator for an answer backed by
// citations. Pipelines are stateless between calls; conversation memory is
// the caller's concern.
type Pipeline struct {
	embedder  domain.Embedder
	store     domain.DocumentStore
	ranker    *rank.Ranker
	generator domain.Generator
	genOpts   domain.GenerateOptions
	log       *zap.Logger
}

// New wires a pipeline from its collaborators.
func New(embedder domain.Embedder, store domain.DocumentStore, generator domain.Generator, genOpts domain.GenerateOptions, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		embedder:  embedder,
		store:     store,
		ranker:    rank.New(),
		generator: generator,
		genOpts:   genOpts,
		log:       log,
	}
}

// Search embeds the query and returns the topK most similar documents,
// optionally restricted to a category. An empty store (or a filter matching
// nothing) returns an empty result without ranking.
func (p *Pipeline) Search(ctx context.Context, query string, topK int, categoryFilter string) ([]domain.RankedHit, error) {
	vec, err := p.embedder.Embed(ctx, query, domain.TaskQuery)
	if err != nil {
		return nil, err
	}
	if len(vec) != p.embedder.Dimension() {
		return nil, fmt.Errorf("%w: query embedding has dimension %d, want %d",
			domain.ErrEmbeddingProvider, len(vec), p.embedder.Dimension())
	}

	candidates, err := p.store.All(categoryFilter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		p.log.Debug("search found no candidates",
			zap.String("category", categoryFilter))
		return nil, nil
	}

	hits := p.ranker.Rank(vec, candidates, topK)
	p.log.Debug("search ranked candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("hits", len(hits)))
	return hits, nil
}

// Answer retrieves up to maxContext documents for the query and generates a
// grounded answer citing them. When retrieval comes back empty the generator
// is not called at all and an ungrounded sentinel answer is returned.
func (p *Pipeline) Answer(ctx context.Context, query string, maxContext int) (domain.Answer, error) {
	hits, err := p.Search(ctx, query, maxContext, "")
	if err != nil {
		return domain.Answer{}, err
	}
	if len(hits) == 0 {
		return domain.Answer{Text: InsufficientAnswer, Sources: []string{}, Confidence: 0}, nil
	}

	prompt := buildAnswerPrompt(query, hits)
	text, err := p.generator.Generate(ctx, prompt, p.genOpts)
	if err != nil {
		return domain.Answer{}, err
	}

	sources := make([]string, len(hits))
	confidence := hits[0].Similarity
	for i, h := range hits {
		sources[i] = h.Document.ID
		if h.Similarity < confidence {
			confidence = h.Similarity
		}
	}
	p.log.Debug("answer generated",
		zap.Strings("sources", sources),
		zap.Float64("confidence", confidence))
	return domain.Answer{Text: text, Sources: sources, Confidence: confidence}, nil
}
