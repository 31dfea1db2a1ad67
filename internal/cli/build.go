package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docqa/config"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/fs"
	"docqa/internal/usecase"
)

var buildCmd = &cobra.Command{
	Use:   "build [docs-dir]",
	Short: "Build the vector index from a directory of documents",
	Long: `Chunk, embed and index the documents in the given directory.
The index is written to the configured index path, replacing any
previous index there.

Examples:
  docqa build                  # Use the configured docs directory
  docqa build ./data/raw_docs  # Index a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	docsDir := config.ResolvePath(GetRootDir(), cfg.Build.DocsDir)
	if len(args) > 0 {
		var err error
		docsDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(docsDir)
	if err != nil {
		return fmt.Errorf("docs directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", docsDir)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	buildUC := usecase.NewBuildUseCase(
		fs.NewWalker(cfg.Build.Includes, cfg.Build.Excludes),
		fs.NewPlainTextExtractor(),
		chunker.NewRecursiveChunker(cfg.Build.ChunkSize, cfg.Build.ChunkOverlap, cfg.Build.MaxChars),
		embedder,
		cfg.Embedding.BatchSize,
	)

	fmt.Printf("Scanning %s...\n", docsDir)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	ix, report, err := buildUC.Build(docsDir, progress)
	if err != nil {
		printReport(report)
		return fmt.Errorf("build failed: %w", err)
	}

	indexPath := config.ResolvePath(GetRootDir(), cfg.Index.Path)
	if err := ix.Save(indexPath); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}

	fmt.Printf("\nBuild complete:\n")
	fmt.Printf("  Files indexed:  %d\n", report.FilesProcessed)
	fmt.Printf("  Files skipped:  %d\n", report.FilesSkipped)
	fmt.Printf("  Chunks indexed: %d\n", report.ChunksCreated)
	fmt.Printf("  Chunks dropped: %d (overlong)\n", report.ChunksDropped)
	fmt.Printf("  Embedding model: %s (%d dimensions)\n", embedder.ModelName(), embedder.Dimension())

	printReport(report)

	fmt.Printf("\nIndex stored at: %s\n", indexPath)
	return nil
}

func printReport(report *usecase.BuildReport) {
	if report == nil {
		return
	}
	if len(report.SkippedFiles) > 0 {
		fmt.Printf("\nSkipped files:\n")
		for _, f := range report.SkippedFiles {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(report.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
}
