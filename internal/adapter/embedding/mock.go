package embedding

import (
	"strings"
	"unicode"
)

// MockEmbedder produces deterministic vectors from word statistics. Texts
// sharing vocabulary land near each other, which is enough for tests and
// offline runs without an embedding service.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = e.embedText(text)
	}
	return embeddings, nil
}

func (e *MockEmbedder) EmbedOne(text string) ([]float32, error) {
	return e.embedText(text), nil
}

// embedText hashes each word into a dimension bucket, so overlapping
// vocabulary produces overlapping vectors.
func (e *MockEmbedder) embedText(text string) []float32 {
	vec := make([]float32, e.dimension)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, word := range words {
		var h uint32 = 2166136261
		for _, r := range word {
			h ^= uint32(r)
			h *= 16777619
		}
		vec[int(h)%e.dimension] += 1.0
	}
	return vec
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
