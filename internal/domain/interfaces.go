package domain

import "context"

// TaskType tells the embedding provider what the text will be used for.
// Retrieval models produce different vectors for corpus documents and for
// queries.
type TaskType string

const (
	TaskDocument TaskType = "document"
	TaskQuery    TaskType = "query"
)

// Embedder converts text into fixed-dimension numeric vectors.
type Embedder interface {
	// Embed returns a vector for a single text.
	Embed(ctx context.Context, text string, task TaskType) ([]float64, error)

	// EmbedBatch returns one vector per input text in input order.
	// Implementations should issue a single provider request where the
	// underlying API supports it.
	EmbedBatch(ctx context.Context, texts []string, task TaskType) ([][]float64, error)

	// Dimension returns the vector size produced by this embedder.
	Dimension() int
}

// GenerateOptions configures a single generation call.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	ModelName() string
}

// DocumentStore holds the knowledge-base documents. Implementations are safe
// for concurrent readers; inserts become visible atomically.
type DocumentStore interface {
	// Insert embeds and appends a batch of documents. The batch is
	// all-or-nothing: if any embedding fails, nothing is committed.
	Insert(ctx context.Context, docs []DocumentInput) error

	// All returns a snapshot of stored documents in insertion order.
	// A non-empty categoryFilter keeps only documents whose category
	// contains the filter, case-insensitively.
	All(categoryFilter string) ([]Document, error)

	// Len reports the number of stored documents.
	Len() int
}
