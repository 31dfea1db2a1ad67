package retriever

import (
	"fmt"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// SemanticRetriever embeds the query and searches the vector index.
type SemanticRetriever struct {
	index    port.VectorIndex
	embedder port.Embedder
}

func NewSemanticRetriever(index port.VectorIndex, embedder port.Embedder) *SemanticRetriever {
	return &SemanticRetriever{
		index:    index,
		embedder: embedder,
	}
}

func (r *SemanticRetriever) Search(query string, k int) ([]domain.ScoredChunk, error) {
	vector, err := r.embedder.EmbedOne(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.index.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return results, nil
}
