package embedding

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// mockVectorizer returns a deterministic vector derived from the text.
type mockVectorizer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockVectorizer) Embed(ctx context.Context, model, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return []float32{float32(len(text))}, nil
}

func TestEmbed(t *testing.T) {
	e := New(&mockVectorizer{}, "nomic-embed-text")
	vec, err := e.Embed(context.Background(), "black wallet")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 1 || vec[0] != 12 {
		t.Errorf("vec = %v, want [12]", vec)
	}
}

func TestEmbedBatch_PreservesOrder(t *testing.T) {
	mock := &mockVectorizer{}
	e := New(mock, "nomic-embed-text")

	texts := []string{"a", "bb", "ccc", "dddd"}
	vecs, err := e.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(vecs) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vecs), len(texts))
	}
	for i, text := range texts {
		if vecs[i][0] != float32(len(text)) {
			t.Errorf("vecs[%d] = %v, want [%d]", i, vecs[i], len(text))
		}
	}
	if mock.calls != len(texts) {
		t.Errorf("calls = %d, want %d", mock.calls, len(texts))
	}
}

func TestEmbedBatch_Empty(t *testing.T) {
	e := New(&mockVectorizer{}, "nomic-embed-text")
	vecs, err := e.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if vecs != nil {
		t.Errorf("vecs = %v, want nil", vecs)
	}
}

func TestEmbedBatch_OverLimit(t *testing.T) {
	e := New(&mockVectorizer{}, "nomic-embed-text")
	texts := make([]string, MaxBatchSize+1)
	for i := range texts {
		texts[i] = "x"
	}
	if _, err := e.EmbedBatch(context.Background(), texts); err == nil {
		t.Error("EmbedBatch() error = nil, want non-nil over limit")
	}
}

func TestEmbedBatch_PropagatesError(t *testing.T) {
	e := New(&mockVectorizer{err: fmt.Errorf("model offline")}, "nomic-embed-text")
	if _, err := e.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("EmbedBatch() error = nil, want non-nil when embed fails")
	}
}
