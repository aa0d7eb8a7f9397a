package domain

import "errors"

// Error kinds surfaced by the retrieval core. Provider failures propagate
// unchanged to the immediate caller; there is no masking of a failed provider
// call as an empty answer.
var (
	// ErrEmbeddingProvider indicates the embedding call failed or returned
	// a vector of unexpected dimension.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrGenerationProvider indicates the text-generation call failed.
	ErrGenerationProvider = errors.New("generation provider failure")

	// ErrDataIntegrity indicates the store holds a document with a missing
	// or mismatched-dimension embedding. This is a bug in Insert, not a
	// transient condition.
	ErrDataIntegrity = errors.New("document store integrity violation")

	// ErrInvalidInput indicates malformed caller input.
	ErrInvalidInput = errors.New("invalid input")
)
