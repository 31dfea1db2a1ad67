package memstore

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"docqa/internal/domain"
)

// MemoryIndex is a non-persisted vector index with the same search
// semantics as the bbolt-backed one. Used by tests and throwaway runs.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	entries   []domain.IndexEntry
}

func NewMemoryIndex(dimension int) *MemoryIndex {
	return &MemoryIndex{dimension: dimension}
}

// Add appends entries in order. Append-only; there is no update or delete.
func (m *MemoryIndex) Add(entries ...domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range entries {
		if len(entry.Vector) != m.dimension {
			return fmt.Errorf("vector dimension %d, expected %d", len(entry.Vector), m.dimension)
		}
		m.entries = append(m.entries, entry)
	}
	return nil
}

func (m *MemoryIndex) Search(query []float32, k int) ([]domain.ScoredChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(query) != m.dimension {
		return nil, fmt.Errorf("query dimension %d, index dimension %d", len(query), m.dimension)
	}

	scored := make([]domain.ScoredChunk, len(m.entries))
	for i, entry := range m.entries {
		scored[i] = domain.ScoredChunk{
			Chunk: entry.Chunk,
			Score: cosineSimilarity(query, entry.Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
