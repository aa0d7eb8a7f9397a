package domain

import "time"

// DocumentInput is the caller-supplied part of a document. The store attaches
// the embedding and timestamp at insertion.
type DocumentInput struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Category string `yaml:"category"`
}

// Document is a stored knowledge-base entry. Documents are immutable once
// inserted; Embedding is always present and matches the configured dimension.
type Document struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Embedding []float64
	DateAdded time.Time
}

// RankedHit pairs a document with its similarity to a query. Hits are
// recomputed on every search and never persisted.
type RankedHit struct {
	Document   Document
	Similarity float64
}

// Answer is the result of a grounded generation. Confidence is the minimum
// similarity among the documents cited in Sources; an answer produced without
// any supporting documents has empty Sources and Confidence 0.
type Answer struct {
	Text       string
	Sources    []string
	Confidence float64
}

// Grounded reports whether the answer was backed by retrieved documents.
func (a Answer) Grounded() bool { return len(a.Sources) > 0 }
