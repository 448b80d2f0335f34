// Package ollama is a minimal HTTP client for a local Ollama instance,
// covering the surface the intake service needs: model discovery and
// pulls, structured chat for generative enhancement, and embeddings.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message is one turn of an /api/chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Schema is the JSON schema passed as the chat format so the model emits
// structured output instead of prose.
type Schema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// SchemaProperty describes a single field within a Schema.
type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Client talks to a local Ollama instance over HTTP. Chat, embed, and
// pull requests carry no client-side deadline; model loads and downloads
// can legitimately take minutes, so callers bound them with contexts.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given Ollama base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// post sends body as JSON to path and returns the response with its body
// open; the caller closes it. Any non-200 status is an error.
func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp, nil
}

// postJSON posts body to path and decodes the JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	name := strings.TrimPrefix(path, "/api/")
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", name, err)
	}
	return nil
}

// models lists the names of the locally available models via /api/tags.
func (c *Client) models(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing models: unexpected status %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding tags response: %w", err)
	}

	names := make([]string, len(tags.Models))
	for i, m := range tags.Models {
		names[i] = m.Name
	}
	return names, nil
}

// IsRunning reports whether the Ollama server answers within two seconds.
func (c *Client) IsRunning(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := c.models(ctx)
	return err == nil
}

// HasModel reports whether the named model is present locally.
func (c *Client) HasModel(ctx context.Context, name string) bool {
	available, err := c.models(ctx)
	if err != nil {
		return false
	}
	for _, m := range available {
		// Ollama may report "phi3.5:latest" — match without tag suffix.
		if m == name || strings.HasPrefix(m, name+":") {
			return true
		}
	}
	return false
}

// PullProgress is one line of the streamed /api/pull response.
type PullProgress struct {
	Status    string `json:"status"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// PullModel downloads a model, reading the streamed progress to
// completion. The optional onProgress callback receives each progress
// line; pass nil to ignore.
func (c *Client) PullModel(ctx context.Context, name string, onProgress func(PullProgress)) error {
	pull := struct {
		Name   string `json:"name"`
		Stream bool   `json:"stream"`
	}{Name: name, Stream: true}

	resp, err := c.post(ctx, "/api/pull", pull)
	if err != nil {
		return fmt.Errorf("pulling %s: %w", name, err)
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	for {
		var p PullProgress
		if err := dec.Decode(&p); err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("pulling %s: reading progress: %w", name, err)
		}
		if onProgress != nil {
			onProgress(p)
		}
	}
}

// Chat sends messages to the model and returns the assistant's reply.
// When format is non-nil it is forwarded so the model produces output
// conforming to the schema.
func (c *Client) Chat(ctx context.Context, model string, messages []Message, format *Schema) (string, error) {
	chat := struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
		Stream   bool      `json:"stream"`
		Format   *Schema   `json:"format,omitempty"`
	}{Model: model, Messages: messages, Format: format}

	var reply struct {
		Message Message `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/chat", chat, &reply); err != nil {
		return "", err
	}
	return reply.Message.Content, nil
}

// Embed returns the embedding vector for text using the given model.
func (c *Client) Embed(ctx context.Context, model, text string) ([]float32, error) {
	embed := struct {
		Model string `json:"model"`
		Input string `json:"input"`
	}{Model: model, Input: text}

	var result struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := c.postJSON(ctx, "/api/embed", embed, &result); err != nil {
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("embed: model %s returned no vectors", model)
	}
	return result.Embeddings[0], nil
}
