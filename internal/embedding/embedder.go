// Package embedding generates text embedding vectors for item
// descriptions so downstream systems can run semantic similarity over
// stored records.
package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaxBatchSize caps the number of texts accepted per batch request.
const MaxBatchSize = 100

// batchConcurrency bounds parallel embed calls so a batch doesn't
// overwhelm the local model server.
const batchConcurrency = 4

// Vectorizer is the embedding transport, satisfied by the Ollama client.
type Vectorizer interface {
	Embed(ctx context.Context, model string, text string) ([]float32, error)
}

// Embedder generates embeddings with a fixed model.
type Embedder struct {
	client Vectorizer
	model  string
}

// New creates an Embedder using the given client and model name.
func New(client Vectorizer, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// Embed returns the embedding vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.client.Embed(ctx, e.model, text)
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	return vec, nil
}

// EmbedBatch returns embedding vectors for multiple texts concurrently,
// preserving input order. Returns nil (not an error) for empty input;
// batches over MaxBatchSize are rejected.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d texts exceeds limit of %d", len(texts), MaxBatchSize)
	}

	results := make([][]float32, len(texts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, text := range texts {
		g.Go(func() error {
			vec, err := e.client.Embed(gCtx, e.model, text)
			if err != nil {
				return fmt.Errorf("embedding text %d: %w", i, err)
			}
			results[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
