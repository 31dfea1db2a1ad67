package domain

import "errors"

var (
	// ErrEmptyCorpus is returned when an index build produced no chunks.
	ErrEmptyCorpus = errors.New("empty corpus: no chunks to index")

	// ErrIndexNotFound is returned when no persisted index exists at the
	// requested path.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexCorrupt is returned when a persisted index is unreadable or
	// does not match the configured embedding model.
	ErrIndexCorrupt = errors.New("index corrupt")
)

// RetrievalError wraps a failure to embed a query or search the index.
// The query produced no answer; the caller decides whether to retry.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return "retrieval failed: " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// GenerationError wraps a failure of the answer generator. No partial
// answer is ever returned alongside it.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
