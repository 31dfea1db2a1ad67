package cli

import (
	"fmt"
	"time"

	"docqa/config"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/llm"
	"docqa/internal/port"
)

// newEmbedder creates the configured embedding provider.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	ec := cfg.Embedding
	timeout := time.Duration(ec.TimeoutSecs) * time.Second

	switch ec.Provider {
	case "openai":
		if ec.BaseURL != "" {
			e, err := embedding.NewOpenAICompatibleEmbedder(ec.APIKeyEnv, ec.Model, ec.BaseURL, timeout)
			if err != nil {
				return nil, err
			}
			e.SetDimension(ec.Dimension)
			e.SetBatchSize(ec.BatchSize)
			return e, nil
		}
		e, err := embedding.NewOpenAIEmbedder(ec.APIKeyEnv, ec.Model, timeout)
		if err != nil {
			return nil, err
		}
		e.SetBatchSize(ec.BatchSize)
		return e, nil
	case "jina":
		e, err := embedding.NewJinaEmbedder(ec.APIKeyEnv, ec.Model, timeout)
		if err != nil {
			return nil, err
		}
		e.SetBatchSize(ec.BatchSize)
		return e, nil
	case "ollama":
		e, err := embedding.NewOllamaEmbedder(ec.Model, ec.BaseURL, timeout)
		if err != nil {
			return nil, err
		}
		e.SetDimension(ec.Dimension)
		e.SetBatchSize(ec.BatchSize)
		return e, nil
	case "mock":
		dimension := ec.Dimension
		if dimension <= 0 {
			dimension = 64
		}
		return embedding.NewMockEmbedder(dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", ec.Provider)
	}
}

// newGenerator creates the configured answer generator.
func newGenerator(cfg *config.Config) (port.LLM, error) {
	gc := cfg.Generation
	timeout := time.Duration(gc.TimeoutSecs) * time.Second

	switch gc.Provider {
	case "openai":
		if gc.BaseURL != "" {
			return llm.NewOpenAICompatibleClient(gc.APIKeyEnv, gc.Model, gc.BaseURL, gc.Temperature, timeout)
		}
		return llm.NewOpenAIClient(gc.APIKeyEnv, gc.Model, gc.Temperature, timeout)
	case "ollama":
		return llm.NewOllamaClient(gc.Model, gc.BaseURL, gc.Temperature, timeout)
	case "mock":
		return llm.NewMockLLM("(mock answer)"), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", gc.Provider)
	}
}
