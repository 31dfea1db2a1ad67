package usecase

import (
	"fmt"

	"docqa/internal/domain"
	"docqa/internal/port"
	"docqa/internal/prompt"
)

// AnswerUseCase is the question-answering pipeline: retrieve relevant
// chunks, assemble the prompt, generate the answer. Construct once and
// share; it holds only read-only state and is safe for concurrent calls.
type AnswerUseCase struct {
	retriever port.Retriever
	assembler *prompt.Assembler
	generator port.LLM
	topK      int
}

func NewAnswerUseCase(
	retriever port.Retriever,
	assembler *prompt.Assembler,
	generator port.LLM,
	topK int,
) *AnswerUseCase {
	if topK < 1 {
		topK = 5
	}
	return &AnswerUseCase{
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		topK:      topK,
	}
}

// Answer runs the pipeline for one query. It returns either the full
// completion or an error, never a partial answer, and performs no retries;
// retry policy belongs to the caller.
func (u *AnswerUseCase) Answer(query string) (string, error) {
	results, err := u.retriever.Search(query, u.topK)
	if err != nil {
		return "", &domain.RetrievalError{Err: err}
	}

	chunks := make([]domain.Chunk, len(results))
	for i, result := range results {
		chunks[i] = result.Chunk
	}

	assembled, err := u.assembler.Assemble(chunks, query)
	if err != nil {
		return "", fmt.Errorf("failed to assemble prompt: %w", err)
	}

	answer, err := u.generator.Generate(assembled)
	if err != nil {
		return "", &domain.GenerationError{Err: err}
	}

	return answer, nil
}
