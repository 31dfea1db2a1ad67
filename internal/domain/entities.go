package domain

// Document is the raw extracted text of a single source file.
// Produced by the extraction layer, consumed only by the chunker.
type Document struct {
	Source string
	Text   string
}

// Chunk is a bounded segment of a document's text, the unit of retrieval.
// Content is non-empty after trimming; Source carries provenance.
type Chunk struct {
	Content string
	Source  string
}

// IndexEntry pairs a chunk with its embedding vector. Entries are
// append-only at build time and never mutated after that.
type IndexEntry struct {
	Vector []float32
	Chunk  Chunk
}

// ScoredChunk is a retrieval result with its similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
