package port

// LLM represents a language model for text generation.
type LLM interface {
	// Generate returns a single-shot, non-streaming completion for the
	// prompt. Either the full completion or an error, never both.
	Generate(prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
