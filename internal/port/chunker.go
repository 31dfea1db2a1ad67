package port

import "docqa/internal/domain"

type Chunker interface {
	// Chunk splits a document into retrieval chunks. The second return
	// counts chunks dropped for exceeding the configured size limit.
	Chunk(doc domain.Document) ([]domain.Chunk, int, error)
}
