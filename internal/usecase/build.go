package usecase

import (
	"fmt"
	"path/filepath"
	"strings"

	"docqa/internal/adapter/index"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// ProgressFunc reports embedding progress as chunks are processed.
type ProgressFunc func(done, total int)

// BuildReport makes every skipped file and dropped chunk a countable
// outcome of a build instead of a console-only notice.
type BuildReport struct {
	FilesProcessed int
	FilesSkipped   int
	ChunksCreated  int
	ChunksDropped  int
	SkippedFiles   []string
	Errors         []string
}

// BuildUseCase turns a directory of source documents into a vector index.
type BuildUseCase struct {
	walker    port.CorpusWalker
	extractor port.Extractor
	chunker   port.Chunker
	embedder  port.Embedder
	batchSize int
}

func NewBuildUseCase(
	walker port.CorpusWalker,
	extractor port.Extractor,
	chunker port.Chunker,
	embedder port.Embedder,
	batchSize int,
) *BuildUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BuildUseCase{
		walker:    walker,
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		batchSize: batchSize,
	}
}

// Build walks the corpus, extracts and chunks each file, embeds all chunks
// and constructs the index. Per-file failures are recorded in the report
// and do not abort the batch; an embedding failure does, since a partially
// embedded index would be silently incomplete. The report is returned even
// alongside an error.
func (u *BuildUseCase) Build(root string, progress ProgressFunc) (*index.Index, *BuildReport, error) {
	report := &BuildReport{}

	paths, err := u.walker.Walk(root)
	if err != nil {
		return nil, report, fmt.Errorf("failed to walk corpus: %w", err)
	}

	var chunks []domain.Chunk
	for _, path := range paths {
		text, err := u.extractor.Extract(path)
		if err != nil {
			report.FilesSkipped++
			report.SkippedFiles = append(report.SkippedFiles, path)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			report.FilesSkipped++
			report.SkippedFiles = append(report.SkippedFiles, path)
			continue
		}

		doc := domain.Document{
			Source: filepath.Base(path),
			Text:   text,
		}

		fileChunks, dropped, err := u.chunker.Chunk(doc)
		if err != nil {
			report.FilesSkipped++
			report.SkippedFiles = append(report.SkippedFiles, path)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		report.ChunksDropped += dropped
		chunks = append(chunks, fileChunks...)
		report.FilesProcessed++
	}

	if len(chunks) == 0 {
		return nil, report, domain.ErrEmptyCorpus
	}

	entries, err := u.embedChunks(chunks, progress)
	if err != nil {
		return nil, report, err
	}

	report.ChunksCreated = len(entries)

	ix, err := index.Build(entries, u.embedder.ModelName(), u.embedder.Dimension())
	if err != nil {
		return nil, report, err
	}

	return ix, report, nil
}

func (u *BuildUseCase) embedChunks(chunks []domain.Chunk, progress ProgressFunc) ([]domain.IndexEntry, error) {
	entries := make([]domain.IndexEntry, 0, len(chunks))

	for start := 0; start < len(chunks); start += u.batchSize {
		end := start + u.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := u.embedder.Embed(texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
		}

		for i, chunk := range batch {
			entries = append(entries, domain.IndexEntry{
				Vector: vectors[i],
				Chunk:  chunk,
			})
		}

		if progress != nil {
			progress(end, len(chunks))
		}
	}

	return entries, nil
}
