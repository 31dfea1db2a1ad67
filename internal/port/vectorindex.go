package port

import "docqa/internal/domain"

// VectorIndex is a read-only similarity index over embedded chunks.
// Implementations must be safe for concurrent searches.
type VectorIndex interface {
	// Search returns up to k entries ranked by non-increasing similarity
	// to the query vector. Ties keep insertion order. k must be >= 1; if
	// the index holds fewer than k entries, all of them are returned.
	Search(query []float32, k int) ([]domain.ScoredChunk, error)

	// Len returns the number of indexed entries.
	Len() int
}
