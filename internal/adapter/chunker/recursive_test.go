package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"docqa/internal/domain"
)

func TestRecursiveChunkerBasic(t *testing.T) {
	chunker := NewRecursiveChunker(100, 20, 7500)

	doc := domain.Document{
		Source: "faq.txt",
		Text: `Filing a complaint starts at the nearest police station.

Bring an identity document and any evidence you have. The duty officer records the complaint in the station diary.

You are entitled to a free copy of the first information report.`,
	}

	chunks, dropped, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped chunks, got %d", dropped)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}

	for _, chunk := range chunks {
		if chunk.Source != "faq.txt" {
			t.Errorf("expected source 'faq.txt', got '%s'", chunk.Source)
		}
		if strings.TrimSpace(chunk.Content) == "" {
			t.Error("chunk is empty after trimming")
		}
		if n := utf8.RuneCountInString(chunk.Content); n > 100 {
			t.Errorf("chunk exceeds chunk size: %d runes", n)
		}
	}
}

func TestRecursiveChunkerDeterministic(t *testing.T) {
	chunker := NewRecursiveChunker(80, 15, 7500)

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("Sentence about procedure number ")
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString(". ")
	}
	doc := domain.Document{Source: "doc.txt", Text: sb.String()}

	first, _, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestRecursiveChunkerOverlap(t *testing.T) {
	chunker := NewRecursiveChunker(40, 15, 7500)

	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliett", "kilo", "lima",
		"mike", "november", "oscar", "papa", "quebec", "romeo",
	}
	doc := domain.Document{Source: "w.txt", Text: strings.Join(words, " ")}

	chunks, _, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		firstWord := strings.Fields(chunks[i].Content)[0]
		if !strings.Contains(chunks[i-1].Content, firstWord) {
			t.Errorf("chunk %d does not overlap chunk %d: %q not in %q",
				i, i-1, firstWord, chunks[i-1].Content)
		}
	}

	// No source text lost between chunks.
	for _, w := range words {
		found := false
		for _, chunk := range chunks {
			if strings.Contains(chunk.Content, w) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("word %q missing from all chunks", w)
		}
	}
}

func TestRecursiveChunkerDropsOverlong(t *testing.T) {
	// A single unbreakable token longer than maxChars must be dropped,
	// not truncated.
	chunker := NewRecursiveChunker(50, 10, 30)

	doc := domain.Document{
		Source: "blob.txt",
		Text:   "short one\n\n" + strings.Repeat("z", 200),
	}

	chunks, dropped, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if dropped == 0 {
		t.Error("expected dropped chunks for overlong content")
	}
	for _, chunk := range chunks {
		if utf8.RuneCountInString(chunk.Content) > 30 {
			t.Errorf("kept chunk of %d runes exceeds max", utf8.RuneCountInString(chunk.Content))
		}
	}
}

func TestRecursiveChunkerEmptyInput(t *testing.T) {
	chunker := NewRecursiveChunker(100, 10, 7500)

	for _, text := range []string{"", "   ", "\n\n\t\n"} {
		chunks, dropped, err := chunker.Chunk(domain.Document{Source: "e.txt", Text: text})
		if err != nil {
			t.Fatal(err)
		}
		if len(chunks) != 0 || dropped != 0 {
			t.Errorf("expected no chunks for %q, got %d (%d dropped)", text, len(chunks), dropped)
		}
	}
}

func TestRecursiveChunkerSmallInputSingleChunk(t *testing.T) {
	chunker := NewRecursiveChunker(500, 50, 7500)

	text := "Report theft to the nearest police station within 24 hours."
	chunks, _, err := chunker.Chunk(domain.Document{Source: "theft.txt", Text: text})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}
	if chunks[0].Content != text {
		t.Errorf("expected chunk to be the full text, got %q", chunks[0].Content)
	}
}

func TestRecursiveChunkerPrefersParagraphBoundaries(t *testing.T) {
	chunker := NewRecursiveChunker(60, 0, 7500)

	para1 := "First paragraph stays together here."
	para2 := "Second paragraph also stays together."
	doc := domain.Document{Source: "p.txt", Text: para1 + "\n\n" + para2}

	chunks, _, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks split on paragraph break, got %d", len(chunks))
	}
	if chunks[0].Content != para1 {
		t.Errorf("first chunk = %q, want %q", chunks[0].Content, para1)
	}
	if chunks[1].Content != para2 {
		t.Errorf("second chunk = %q, want %q", chunks[1].Content, para2)
	}
}
