// Package api is the HTTP and MCP transport for the extraction service:
// thin request plumbing over the extractor, embedder, and extraction
// history store.
package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lostlink/intake/internal/docparse"
	"github.com/lostlink/intake/internal/extract"
	"github.com/lostlink/intake/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB
const maxFileBodySize = 10 << 20   // 10MB

// TextEmbedder abstracts the embedding service for the API layer.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Deps holds everything the HTTP handlers need. Embedder and Store are
// optional; their endpoints report unavailability when nil.
type Deps struct {
	Extractor   *extract.Extractor
	Embedder    TextEmbedder
	Store       *storage.Store
	Token       string
	SaveHistory bool
}

// NewHandler returns the extraction service's HTTP handler.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Post("/extract/text", handleExtractText(deps))
		r.Post("/extract/image", handleExtractImage(deps))
		r.Post("/extract/combined", handleExtractCombined(deps))
		r.Post("/extract/file", handleExtractFile(deps))

		r.Post("/embed", handleEmbed(deps))
		r.Post("/embed/batch", handleEmbedBatch(deps))

		r.Get("/extractions", handleListExtractions(deps))
		r.Get("/extractions/{id}", handleGetExtraction(deps))
		r.Delete("/extractions/{id}", handleDeleteExtraction(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type ExtractTextRequest struct {
	Text     string `json:"text"`
	PostType string `json:"post_type"`
	Format   string `json:"format"` // "text" (default) or "html"
}

type ExtractImageRequest struct {
	DetectedObjects []extract.DetectedObject `json:"detected_objects"`
	OCRText         string                   `json:"ocr_text"`
}

type ExtractCombinedRequest struct {
	Text            string                   `json:"text"`
	PostType        string                   `json:"post_type"`
	Format          string                   `json:"format"`
	DetectedObjects []extract.DetectedObject `json:"detected_objects"`
	OCRText         string                   `json:"ocr_text"`
}

type ExtractFileRequest struct {
	Content  string `json:"content"` // base64-encoded PDF
	PostType string `json:"post_type"`
}

// ExtractResponse wraps a finished record with the history ID it was
// stored under (empty when history is disabled).
type ExtractResponse struct {
	ID     string                   `json:"id,omitempty"`
	Record extract.StructuredRecord `json:"record"`
}

func handleExtractText(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ExtractTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		text, err := resolveText(req.Text, req.Format)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		rec, err := deps.Extractor.ExtractFromText(r.Context(), text, req.PostType)
		if errors.Is(err, extract.ErrTextTooShort) {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"text must be at least %d characters", extract.MinTextLength)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "extraction failed: %v", err)
			return
		}

		writeRecord(w, deps, "text", rec)
	}
}

func handleExtractImage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ExtractImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if len(req.DetectedObjects) == 0 && req.OCRText == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"at least one of detected_objects or ocr_text is required")
			return
		}

		p := deps.Extractor.ExtractFromImage(req.DetectedObjects, req.OCRText)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p)
	}
}

func handleExtractCombined(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ExtractCombinedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		text, err := resolveText(req.Text, req.Format)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		textRec, err := deps.Extractor.ExtractFromText(r.Context(), text, req.PostType)
		if errors.Is(err, extract.ErrTextTooShort) {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"text must be at least %d characters", extract.MinTextLength)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "extraction failed: %v", err)
			return
		}

		imageRec := deps.Extractor.ExtractFromImage(req.DetectedObjects, req.OCRText)
		rec := deps.Extractor.MergeExtractions(textRec, imageRec)

		writeRecord(w, deps, "combined", rec)
	}
}

func handleExtractFile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFileBodySize)
		defer r.Body.Close()

		var req ExtractFileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Content == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "content is required")
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid base64 content")
			return
		}

		text, err := docparse.PDFText(data)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "could not read document: %v", err)
			return
		}

		rec, err := deps.Extractor.ExtractFromText(r.Context(), text, req.PostType)
		if errors.Is(err, extract.ErrTextTooShort) {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"document text must be at least %d characters", extract.MinTextLength)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "extraction failed: %v", err)
			return
		}

		writeRecord(w, deps, "file", rec)
	}
}

// resolveText applies the requested input format. HTML submissions are
// stripped to plain text before extraction so markup never leaks into
// titles or attributes.
func resolveText(text, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return text, nil
	case "html":
		return StripHTML(text), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// writeRecord persists the record when history is enabled and sends the
// response. Persistence failures are logged into the response only via a
// missing id; the extraction itself already succeeded.
func writeRecord(w http.ResponseWriter, deps Deps, source string, rec extract.StructuredRecord) {
	resp := ExtractResponse{Record: rec}

	if deps.SaveHistory && deps.Store != nil {
		recordJSON, err := json.Marshal(rec)
		if err == nil {
			id := uuid.New().String()
			e := storage.Extraction{
				ID:           id,
				CreatedAt:    time.Now().UTC(),
				Source:       source,
				PostType:     rec.PostType,
				Category:     rec.Category,
				Title:        rec.Title,
				RecordJSON:   string(recordJSON),
				OriginalText: rec.OriginalText,
			}
			if err := deps.Store.SaveExtraction(e); err == nil {
				resp.ID = id
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type EmbedRequest struct {
	Text string `json:"text"`
}

type EmbedBatchRequest struct {
	Texts []string `json:"texts"`
}

func handleEmbed(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Embedder == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "embedding service not configured")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req EmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "text is required")
			return
		}

		vec, err := deps.Embedder.Embed(r.Context(), req.Text)
		if err != nil {
			httpError(w, http.StatusBadGateway, "api_error", "embedding failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": vec,
			"dimension": len(vec),
		})
	}
}

func handleEmbedBatch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Embedder == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "embedding service not configured")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFileBodySize)
		defer r.Body.Close()

		var req EmbedBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if len(req.Texts) == 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "texts is required")
			return
		}

		vecs, err := deps.Embedder.EmbedBatch(r.Context(), req.Texts)
		if err != nil {
			httpError(w, http.StatusBadGateway, "api_error", "embedding failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"embeddings": vecs})
	}
}

func handleListExtractions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "extraction history not configured")
			return
		}

		limit := parseIntParam(r, "limit", 20, 100)
		offset := parseIntParam(r, "offset", 0, 0)

		extractions, err := deps.Store.ListExtractions(limit, offset)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list extractions: %v", err)
			return
		}
		if extractions == nil {
			extractions = []storage.Extraction{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(extractions)
	}
}

func handleGetExtraction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "extraction history not configured")
			return
		}
		id := chi.URLParam(r, "id")

		e, err := deps.Store.GetExtraction(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "extraction not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get extraction: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(e)
	}
}

func handleDeleteExtraction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "extraction history not configured")
			return
		}
		id := chi.URLParam(r, "id")

		err := deps.Store.DeleteExtraction(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "extraction not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete extraction: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
