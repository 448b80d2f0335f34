package ollama

import (
	"context"
	"fmt"
	"io"
	"time"
)

// EnsureReady checks that Ollama is running and the given models are
// available, pulling missing ones with progress written to w. Empty model
// names are skipped (the embedding model is optional). After the pulls it
// warms up the first model so the first extraction request doesn't pay the
// cold-load penalty. Returns a non-nil error only if Ollama is unreachable
// or a pull fails.
func EnsureReady(ctx context.Context, c *Client, models []string, w io.Writer) error {
	if !c.IsRunning(ctx) {
		return fmt.Errorf("Ollama is not running. Start it with: ollama serve")
	}

	for _, model := range models {
		if model == "" {
			continue
		}
		if c.HasModel(ctx, model) {
			fmt.Fprintf(w, "model %s: ready\n", model)
			continue
		}

		fmt.Fprintf(w, "model %s: pulling...\n", model)
		err := c.PullModel(ctx, model, func(p PullProgress) {
			if p.Total > 0 {
				pct := float64(p.Completed) / float64(p.Total) * 100
				fmt.Fprintf(w, "  %s %.0f%%\n", p.Status, pct)
			} else {
				fmt.Fprintf(w, "  %s\n", p.Status)
			}
		})
		if err != nil {
			return fmt.Errorf("pulling model %s: %w", model, err)
		}
		fmt.Fprintf(w, "model %s: ready\n", model)
	}

	if len(models) == 0 || models[0] == "" {
		return nil
	}

	// Warm up the extraction model with a trivial chat request so it stays
	// loaded in memory for low-latency enhancement calls.
	warm := models[0]
	fmt.Fprintf(w, "model %s: warming up...\n", warm)
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := c.Chat(warmCtx, warm, []Message{{Role: "user", Content: "ping"}}, nil); err != nil {
		fmt.Fprintf(w, "model %s: warm-up failed (non-fatal): %v\n", warm, err)
	} else {
		fmt.Fprintf(w, "model %s: warm\n", warm)
	}

	return nil
}
