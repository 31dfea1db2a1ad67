package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/fs"
	"docqa/internal/domain"
)

type stubWalker struct {
	paths []string
}

func (s *stubWalker) Walk(root string) ([]string, error) {
	return s.paths, nil
}

// stubExtractor maps path to text; missing entries fail extraction.
type stubExtractor struct {
	texts map[string]string
}

func (s *stubExtractor) Extract(path string) (string, error) {
	text, ok := s.texts[path]
	if !ok {
		return "", errors.New("extraction failed")
	}
	return text, nil
}

func TestBuildIsolatesFileFailures(t *testing.T) {
	walker := &stubWalker{paths: []string{"good.txt", "broken.pdf", "empty.txt"}}
	extractor := &stubExtractor{texts: map[string]string{
		"good.txt":  "Report theft to the nearest police station within 24 hours.",
		"empty.txt": "   ",
	}}

	uc := NewBuildUseCase(
		walker,
		extractor,
		chunker.NewRecursiveChunker(500, 50, 7500),
		embedding.NewMockEmbedder(32),
		10,
	)

	ix, report, err := uc.Build("unused", nil)
	if err != nil {
		t.Fatal(err)
	}

	if report.FilesProcessed != 1 {
		t.Errorf("expected 1 processed file, got %d", report.FilesProcessed)
	}
	if report.FilesSkipped != 2 {
		t.Errorf("expected 2 skipped files, got %d", report.FilesSkipped)
	}
	if len(report.SkippedFiles) != 2 {
		t.Errorf("expected 2 entries in skipped list, got %v", report.SkippedFiles)
	}
	if report.ChunksCreated != 1 {
		t.Errorf("expected 1 chunk created, got %d", report.ChunksCreated)
	}
	if ix.Len() != 1 {
		t.Errorf("expected index of 1 entry, got %d", ix.Len())
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	walker := &stubWalker{paths: []string{"a.pdf", "b.pdf"}}
	extractor := &stubExtractor{}

	uc := NewBuildUseCase(
		walker,
		extractor,
		chunker.NewRecursiveChunker(500, 50, 7500),
		embedding.NewMockEmbedder(32),
		10,
	)

	_, report, err := uc.Build("unused", nil)
	if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if report.FilesSkipped != 2 {
		t.Errorf("expected a report even on failure, got %+v", report)
	}
}

type countingEmbedder struct {
	*embedding.MockEmbedder
	batches int
}

func (c *countingEmbedder) Embed(texts []string) ([][]float32, error) {
	c.batches++
	return c.MockEmbedder.Embed(texts)
}

func TestBuildBatchesEmbeddings(t *testing.T) {
	var paths []string
	texts := map[string]string{}
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		paths = append(paths, name)
		texts[name] = "Passage about " + name + " procedures."
	}

	embedder := &countingEmbedder{MockEmbedder: embedding.NewMockEmbedder(16)}
	uc := NewBuildUseCase(
		&stubWalker{paths: paths},
		&stubExtractor{texts: texts},
		chunker.NewRecursiveChunker(500, 50, 7500),
		embedder,
		2,
	)

	var progressCalls int
	var lastDone, lastTotal int
	_, report, err := uc.Build("unused", func(done, total int) {
		progressCalls++
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatal(err)
	}

	if embedder.batches != 3 {
		t.Errorf("expected 3 embedding batches of size 2, got %d", embedder.batches)
	}
	if progressCalls != 3 {
		t.Errorf("expected 3 progress callbacks, got %d", progressCalls)
	}
	if lastDone != lastTotal || lastTotal != report.ChunksCreated {
		t.Errorf("final progress %d/%d does not match %d chunks", lastDone, lastTotal, report.ChunksCreated)
	}
}

func TestBuildFromFilesystem(t *testing.T) {
	dir := t.TempDir()
	content := "Report theft to the nearest police station within 24 hours."
	if err := os.WriteFile(filepath.Join(dir, "theft.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	uc := NewBuildUseCase(
		fs.NewWalker([]string{"**/*.txt"}, nil),
		fs.NewPlainTextExtractor(),
		chunker.NewRecursiveChunker(500, 50, 7500),
		embedding.NewMockEmbedder(32),
		100,
	)

	ix, report, err := uc.Build(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.FilesProcessed != 1 || report.ChunksCreated != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	// Provenance survives into the index.
	embedder := embedding.NewMockEmbedder(32)
	vec, _ := embedder.EmbedOne("theft at police station")
	results, err := ix.Search(vec, 1)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Chunk.Source != "theft.txt" {
		t.Errorf("expected source 'theft.txt', got %q", results[0].Chunk.Source)
	}
	if results[0].Chunk.Content != content {
		t.Errorf("expected content preserved verbatim, got %q", results[0].Chunk.Content)
	}
}
