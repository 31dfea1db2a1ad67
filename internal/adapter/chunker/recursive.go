package chunker

import (
	"strings"
	"unicode/utf8"

	"docqa/internal/domain"
)

// defaultSeparators orders split boundaries from coarse to fine:
// paragraph breaks, line breaks, sentence ends, words, then raw runes.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveChunker splits text on the coarsest boundary that keeps chunks
// near chunkSize runes, carrying chunkOverlap runes between consecutive
// chunks. Splitting is a pure function of (text, chunkSize, chunkOverlap).
type RecursiveChunker struct {
	chunkSize    int
	chunkOverlap int
	maxChars     int
	separators   []string
}

func NewRecursiveChunker(chunkSize, chunkOverlap, maxChars int) *RecursiveChunker {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	return &RecursiveChunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		maxChars:     maxChars,
		separators:   defaultSeparators,
	}
}

// Chunk splits the document text and post-filters the results: chunks are
// trimmed, empty chunks are discarded, and chunks longer than maxChars are
// dropped whole rather than truncated. The dropped count is returned so
// the build can report skips instead of failing the batch.
func (c *RecursiveChunker) Chunk(doc domain.Document) ([]domain.Chunk, int, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, 0, nil
	}

	var chunks []domain.Chunk
	dropped := 0
	for _, piece := range c.split(doc.Text, c.separators) {
		trimmed := strings.TrimSpace(piece)
		if trimmed == "" {
			continue
		}
		if c.maxChars > 0 && utf8.RuneCountInString(trimmed) > c.maxChars {
			dropped++
			continue
		}
		chunks = append(chunks, domain.Chunk{
			Content: trimmed,
			Source:  doc.Source,
		})
	}

	return chunks, dropped, nil
}

// split recursively divides text on the first separator it contains, then
// merges the pieces back into chunks of at most chunkSize runes. Pieces
// still too large descend to the next, finer separator.
func (c *RecursiveChunker) split(text string, separators []string) []string {
	sep := ""
	rest := []string{}
	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return c.hardSplit(text)
	}

	parts := splitAfter(text, sep)

	var final []string
	var pending []string
	for _, part := range parts {
		if runeLen(part) <= c.chunkSize {
			pending = append(pending, part)
			continue
		}
		if len(pending) > 0 {
			final = append(final, c.merge(pending)...)
			pending = nil
		}
		final = append(final, c.split(part, rest)...)
	}
	if len(pending) > 0 {
		final = append(final, c.merge(pending)...)
	}

	return final
}

// merge greedily packs pieces into chunks of at most chunkSize runes. When
// a chunk is emitted, trailing pieces totalling at most chunkOverlap runes
// carry over into the next chunk to preserve context across the boundary.
func (c *RecursiveChunker) merge(pieces []string) []string {
	var out []string
	var window []string
	total := 0

	for _, piece := range pieces {
		n := runeLen(piece)
		if total+n > c.chunkSize && len(window) > 0 {
			out = append(out, strings.Join(window, ""))
			for len(window) > 0 && (total > c.chunkOverlap || total+n > c.chunkSize) {
				total -= runeLen(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += n
	}

	if len(window) > 0 {
		out = append(out, strings.Join(window, ""))
	}

	return out
}

// hardSplit cuts text into fixed rune windows when no separator is left.
func (c *RecursiveChunker) hardSplit(text string) []string {
	runes := []rune(text)
	step := c.chunkSize - c.chunkOverlap
	if step < 1 {
		step = 1
	}

	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return out
}

// splitAfter splits on sep keeping the separator attached to the preceding
// piece, so joining pieces reconstructs the original text.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
