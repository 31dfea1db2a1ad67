// Package index implements the persisted vector index. An Index is built
// once from embedded chunks, saved as a bbolt file, and loaded back as an
// immutable in-memory snapshot; rebuilds replace the file, never mutate it.
package index

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"docqa/internal/domain"
)

const dbFile = "index.db"

var (
	bucketManifest = []byte("manifest")
	bucketVectors  = []byte("vectors")
	bucketChunks   = []byte("chunks")
	keyManifest    = []byte("manifest")
)

// Manifest records the identity of the embedding space an index was built
// in. Load refuses an index whose manifest does not match the configured
// embedder, so a swapped model can never silently return garbage.
type Manifest struct {
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
	Count     int    `json:"count"`
}

// Index is an immutable snapshot of embedded chunks in insertion order.
// All reads are safe for concurrent use.
type Index struct {
	manifest Manifest
	entries  []domain.IndexEntry
}

// Build constructs an index from scratch. Entries keep their given order,
// which also serves as the tie-break order in Search.
func Build(entries []domain.IndexEntry, model string, dimension int) (*Index, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	for i, entry := range entries {
		if len(entry.Vector) != dimension {
			return nil, fmt.Errorf("entry %d: vector dimension %d, expected %d", i, len(entry.Vector), dimension)
		}
	}

	snapshot := make([]domain.IndexEntry, len(entries))
	copy(snapshot, entries)

	return &Index{
		manifest: Manifest{
			Model:     model,
			Dimension: dimension,
			Count:     len(snapshot),
		},
		entries: snapshot,
	}, nil
}

// Manifest returns the embedding-space identity of the index.
func (ix *Index) Manifest() Manifest {
	return ix.manifest
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search ranks all entries by cosine similarity to the query vector and
// returns the top k. Results are ordered by non-increasing score; equal
// scores keep insertion order. If fewer than k entries exist, all are
// returned.
func (ix *Index) Search(query []float32, k int) ([]domain.ScoredChunk, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(query) != ix.manifest.Dimension {
		return nil, fmt.Errorf("query dimension %d, index dimension %d", len(query), ix.manifest.Dimension)
	}

	scored := make([]domain.ScoredChunk, len(ix.entries))
	for i, entry := range ix.entries {
		scored[i] = domain.ScoredChunk{
			Chunk: entry.Chunk,
			Score: cosineSimilarity(query, entry.Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Save persists the index into dir as a bbolt file, overwriting any index
// already there. The file is written under a temporary name and renamed
// into place, so readers either see the old index or the new one.
func (ix *Index) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmpPath := filepath.Join(dir, dbFile+".tmp")
	os.Remove(tmpPath)

	db, err := bbolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		manifestBucket, err := tx.CreateBucketIfNotExists(bucketManifest)
		if err != nil {
			return err
		}
		vectors, err := tx.CreateBucketIfNotExists(bucketVectors)
		if err != nil {
			return err
		}
		chunks, err := tx.CreateBucketIfNotExists(bucketChunks)
		if err != nil {
			return err
		}

		manifestData, err := json.Marshal(ix.manifest)
		if err != nil {
			return err
		}
		if err := manifestBucket.Put(keyManifest, manifestData); err != nil {
			return err
		}

		for i, entry := range ix.entries {
			key := seqKey(i)
			if err := vectors.Put(key, encodeVector(entry.Vector)); err != nil {
				return err
			}
			chunkData, err := json.Marshal(storedChunk{
				Content: entry.Chunk.Content,
				Source:  entry.Chunk.Source,
			})
			if err != nil {
				return err
			}
			if err := chunks.Put(key, chunkData); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}

	if err := db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close index file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, dbFile)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index: %w", err)
	}

	return nil
}

// Load reconstructs an index previously written by Save. It returns
// ErrIndexNotFound when dir holds no index, and ErrIndexCorrupt when the
// file is unreadable or was built for a different embedding model or
// dimension than requested.
func Load(dir, model string, dimension int) (*Index, error) {
	dbPath := filepath.Join(dir, dbFile)
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat index: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", domain.ErrIndexCorrupt, dbPath, err)
	}
	defer db.Close()

	var manifest Manifest
	var entries []domain.IndexEntry

	err = db.View(func(tx *bbolt.Tx) error {
		manifestBucket := tx.Bucket(bucketManifest)
		vectors := tx.Bucket(bucketVectors)
		chunks := tx.Bucket(bucketChunks)
		if manifestBucket == nil || vectors == nil || chunks == nil {
			return fmt.Errorf("%w: missing buckets in %s", domain.ErrIndexCorrupt, dbPath)
		}

		manifestData := manifestBucket.Get(keyManifest)
		if manifestData == nil {
			return fmt.Errorf("%w: missing manifest in %s", domain.ErrIndexCorrupt, dbPath)
		}
		if err := json.Unmarshal(manifestData, &manifest); err != nil {
			return fmt.Errorf("%w: unreadable manifest: %v", domain.ErrIndexCorrupt, err)
		}

		if manifest.Model != model {
			return fmt.Errorf("%w: index built with embedding model %q, configured model is %q",
				domain.ErrIndexCorrupt, manifest.Model, model)
		}
		if manifest.Dimension != dimension {
			return fmt.Errorf("%w: index dimension %d, configured embedder dimension %d",
				domain.ErrIndexCorrupt, manifest.Dimension, dimension)
		}

		entries = make([]domain.IndexEntry, 0, manifest.Count)
		cursor := vectors.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			vector, err := decodeVector(value)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrIndexCorrupt, err)
			}
			if len(vector) != manifest.Dimension {
				return fmt.Errorf("%w: stored vector dimension %d, manifest says %d",
					domain.ErrIndexCorrupt, len(vector), manifest.Dimension)
			}

			chunkData := chunks.Get(key)
			if chunkData == nil {
				return fmt.Errorf("%w: vector without chunk metadata", domain.ErrIndexCorrupt)
			}
			var stored storedChunk
			if err := json.Unmarshal(chunkData, &stored); err != nil {
				return fmt.Errorf("%w: unreadable chunk metadata: %v", domain.ErrIndexCorrupt, err)
			}

			entries = append(entries, domain.IndexEntry{
				Vector: vector,
				Chunk:  domain.Chunk{Content: stored.Content, Source: stored.Source},
			})
		}

		if len(entries) != manifest.Count {
			return fmt.Errorf("%w: manifest says %d entries, found %d",
				domain.ErrIndexCorrupt, manifest.Count, len(entries))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: index holds no entries", domain.ErrIndexCorrupt)
	}

	return &Index{manifest: manifest, entries: entries}, nil
}

type storedChunk struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// seqKey encodes the insertion sequence as a big-endian key, so bolt's
// lexicographic cursor order is insertion order.
func seqKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}

func encodeVector(vector []float32) []byte {
	data := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return data
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("vector blob of %d bytes is not float32-aligned", len(data))
	}
	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return vector, nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
