package port

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts. Returns one vector
	// per input text, in input order. Any provider failure fails the
	// whole batch; no partial results.
	Embed(texts []string) ([][]float32, error)

	// EmbedOne embeds a single text, typically a query at search time.
	EmbedOne(text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
