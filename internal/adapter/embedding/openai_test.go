package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *OpenAIEmbedder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("TEST_API_KEY", "test-key")
	embedder, err := NewOpenAICompatibleEmbedder("TEST_API_KEY", "text-embedding-3-small", server.URL, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return embedder
}

func TestOpenAIEmbedderEmbed(t *testing.T) {
	embedder := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Model != "text-embedding-3-small" {
			t.Errorf("unexpected model: %s", req.Model)
		}

		resp := embeddingResponse{}
		for i := range req.Input {
			resp.Data = append(resp.Data, embeddingData{
				Embedding: []float32{float32(i), 1, 2},
				Index:     i,
			})
		}
		json.NewEncoder(w).Encode(resp)
	})

	vecs, err := embedder.Embed([]string{"first", "second"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if vecs[1][0] != 1 {
		t.Errorf("vectors out of input order: %v", vecs)
	}
}

func TestOpenAIEmbedderWholeBatchFails(t *testing.T) {
	embedder := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	vecs, err := embedder.Embed([]string{"a", "b", "c"})
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if vecs != nil {
		t.Errorf("expected no partial results, got %d vectors", len(vecs))
	}
}

func TestOpenAIEmbedderMissingKey(t *testing.T) {
	t.Setenv("EMPTY_KEY_VAR", "")
	if _, err := NewOpenAICompatibleEmbedder("EMPTY_KEY_VAR", "m", "http://x", 0); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestMockEmbedderDeterministic(t *testing.T) {
	embedder := NewMockEmbedder(32)

	a, err := embedder.EmbedOne("report theft at the police station")
	if err != nil {
		t.Fatal(err)
	}
	b, err := embedder.EmbedOne("report theft at the police station")
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 32 {
		t.Fatalf("expected dimension 32, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("mock embeddings are not deterministic")
		}
	}
}
