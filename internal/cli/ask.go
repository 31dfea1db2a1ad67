package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docqa/config"
	"docqa/internal/adapter/index"
	"docqa/internal/adapter/retriever"
	"docqa/internal/domain"
	"docqa/internal/port"
	"docqa/internal/prompt"
	"docqa/internal/usecase"
)

var (
	askQuery string
	askTopK  int
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question from the indexed documents",
	Long: `Retrieve the most relevant passages for the question and generate a
structured answer grounded in them.

Examples:
  docqa ask -q "My phone was stolen, what do I do?"
  docqa ask -q "How do I file a noise complaint?" --top-k 3`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to retrieve (default from config)")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	pipeline, err := newAnswerPipeline(cfg, topK)
	if err != nil {
		return err
	}

	answer, err := pipeline.Answer(askQuery)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

// newAnswerPipeline loads the persisted index and wires the QA pipeline.
// The result is immutable; callers construct it once and share it.
func newAnswerPipeline(cfg *config.Config, topK int) (*usecase.AnswerUseCase, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	ix, err := loadIndex(cfg, embedder)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	assembler, err := prompt.NewAssembler()
	if err != nil {
		return nil, err
	}

	return usecase.NewAnswerUseCase(
		retriever.NewSemanticRetriever(ix, embedder),
		assembler,
		generator,
		topK,
	), nil
}

func loadIndex(cfg *config.Config, embedder port.Embedder) (*index.Index, error) {
	indexPath := config.ResolvePath(GetRootDir(), cfg.Index.Path)

	ix, err := index.Load(indexPath, embedder.ModelName(), embedder.Dimension())
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return nil, fmt.Errorf("no index at %s. Run 'docqa build' first", indexPath)
		}
		return nil, err
	}
	return ix, nil
}
