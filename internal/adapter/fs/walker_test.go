package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkerIncludesAndExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "notes", "b.md"), "bravo")
	writeFile(t, filepath.Join(dir, "skip.pdf"), "binary-ish")
	writeFile(t, filepath.Join(dir, ".hidden", "c.txt"), "charlie")

	walker := NewWalker([]string{"**/*.txt", "**/*.md"}, []string{"**/.*/**"})
	files, err := walker.Walk(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if strings.HasSuffix(f, ".pdf") {
			t.Errorf("pdf should not be included: %s", f)
		}
		if strings.Contains(f, ".hidden") {
			t.Errorf("hidden dir should be excluded: %s", f)
		}
	}
}

func TestWalkerSortedOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "z.txt"), "z")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "m.txt"), "m")

	walker := NewWalker([]string{"**/*.txt"}, nil)
	files, err := walker.Walk(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Fatalf("walk output not sorted: %v", files)
		}
	}
}

func TestPlainTextExtractor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	writeFile(t, path, "Report theft to the nearest police station.")

	extractor := NewPlainTextExtractor()
	text, err := extractor.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Report theft to the nearest police station." {
		t.Errorf("unexpected text: %q", text)
	}

	if _, err := extractor.Extract(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	binPath := filepath.Join(dir, "bin.txt")
	if err := os.WriteFile(binPath, []byte{0xff, 0xfe, 0x00, 0x80}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := extractor.Extract(binPath); err == nil {
		t.Error("expected error for non-UTF-8 content")
	}
}
