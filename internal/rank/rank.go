// Package rank scores documents against a query vector.
package rank

import (
	"math"
	"sort"

	"bizkb/internal/domain"
)

// Ranker performs an exhaustive cosine-similarity scan over a candidate set.
// The corpus is small enough that no index structure is needed.
type Ranker struct{}

func New() *Ranker { return &Ranker{} }

// Rank returns up to topK candidates ordered by descending similarity.
// Ties keep the candidates' original order. An empty candidate set yields an
// empty result; topK larger than the candidate count returns all candidates.
func (r *Ranker) Rank(queryVector []float64, candidates []domain.Document, topK int) []domain.RankedHit {
	if len(candidates) == 0 || topK <= 0 {
		return nil
	}
	hits := make([]domain.RankedHit, len(candidates))
	for i, doc := range candidates {
		hits[i] = domain.RankedHit{
			Document:   doc,
			Similarity: Cosine(queryVector, doc.Embedding),
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Similarity > hits[j].Similarity })
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits
}

// Cosine computes the cosine similarity of two vectors. Either vector being
// all zeros yields 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
