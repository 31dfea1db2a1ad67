package port

type CorpusWalker interface {
	Walk(root string) ([]string, error)
}

// Extractor turns a source file into best-effort plain text. A failed
// extraction returns an error or an empty string; it never aborts the
// batch it is part of.
type Extractor interface {
	Extract(path string) (string, error)
}
