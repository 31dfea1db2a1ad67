package fs

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// PlainTextExtractor reads files that are already plain text (.txt, .md).
// Richer formats belong to an external extraction service; anything this
// extractor cannot make sense of is reported per file, never fatally.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}

	return string(data), nil
}
