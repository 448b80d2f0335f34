// Package enhance is the optional generative enhancement layer: it prompts
// a local text-generation model with a raw item description and parses a
// partial record out of the response. Every failure path degrades to an
// empty contribution; the rule-based extractor must stand on its own.
package enhance

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/lostlink/intake/internal/extract"
	"github.com/lostlink/intake/internal/ollama"
	"github.com/lostlink/intake/internal/taxonomy"
)

const enhanceTimeout = 10 * time.Second

// Chatter is the interface for chat completion against the generative
// model.
type Chatter interface {
	Chat(ctx context.Context, model string, messages []ollama.Message, jsonSchema *ollama.Schema) (string, error)
}

// Enhancer prompts a generative model to supplement rule-based extraction.
type Enhancer struct {
	client Chatter
	model  string
}

// New creates an Enhancer using the given chat client and model name.
func New(client Chatter, model string) *Enhancer {
	return &Enhancer{client: client, model: model}
}

// Enhance returns a partial record parsed from the model's response. On
// any failure (model unreachable, timeout, unparsable response) it returns
// an empty record; enhancement never surfaces an error to the caller and
// is never retried.
func (e *Enhancer) Enhance(ctx context.Context, text, postType string) extract.PartialRecord {
	if strings.TrimSpace(text) == "" {
		return extract.PartialRecord{}
	}

	ctx, cancel := context.WithTimeout(ctx, enhanceTimeout)
	defer cancel()

	raw, err := e.client.Chat(ctx, e.model, BuildPrompt(text, postType), extractionSchema())
	if err != nil {
		slog.Warn("generative enhancement chat failed", "error", err)
		return extract.PartialRecord{}
	}

	return ParseResponse(raw)
}

// llmRecord mirrors the JSON shape requested from the model.
type llmRecord struct {
	Title      string            `json:"title"`
	Category   string            `json:"category"`
	Attributes map[string]string `json:"attributes"`
	Location   *struct {
		Description string `json:"description"`
		City        string `json:"city"`
	} `json:"location"`
	Date string `json:"date"`
}

// jsonObjectPattern locates a single non-nested JSON object substring in
// free-form model output.
var jsonObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)

// keyValuePatterns back the line-oriented fallback when no JSON parses.
var keyValuePatterns = map[string]*regexp.Regexp{
	"title":    regexp.MustCompile(`(?i)title[:\s]+(.+)`),
	"category": regexp.MustCompile(`(?i)category[:\s]+(.+)`),
	"color":    regexp.MustCompile(`(?i)color[:\s]+(.+)`),
	"brand":    regexp.MustCompile(`(?i)brand[:\s]+(.+)`),
}

// ParseResponse turns a raw model response into a partial record. It tries
// the whole response as JSON, then a single JSON object substring, then
// line-oriented key:value extraction. Unparsable responses yield an empty
// record.
func ParseResponse(raw string) extract.PartialRecord {
	var rec llmRecord
	if err := json.Unmarshal([]byte(raw), &rec); err == nil {
		return toPartial(rec)
	}

	if m := jsonObjectPattern.FindString(raw); m != "" {
		if err := json.Unmarshal([]byte(m), &rec); err == nil {
			return toPartial(rec)
		}
	}

	return parseKeyValues(raw)
}

// toPartial converts a parsed model record, dropping categories outside
// the taxonomy so the closed-set invariant holds downstream.
func toPartial(rec llmRecord) extract.PartialRecord {
	p := extract.PartialRecord{
		Title: strings.TrimSpace(rec.Title),
		Date:  strings.TrimSpace(rec.Date),
	}

	category := strings.ToLower(strings.TrimSpace(rec.Category))
	if category != "" && category != taxonomy.Other && taxonomy.IsValid(category) {
		p.Category = category
	}

	attrs := map[string]string{}
	for k, v := range rec.Attributes {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			attrs[k] = v
		}
	}
	if len(attrs) > 0 {
		p.Attributes = attrs
	}

	if rec.Location != nil && strings.TrimSpace(rec.Location.Description) != "" {
		p.Location = &extract.Location{
			Description: strings.TrimSpace(rec.Location.Description),
			City:        strings.TrimSpace(rec.Location.City),
		}
	}

	return p
}

// parseKeyValues extracts title, category, color, and brand from
// line-oriented "key: value" model output. Color and brand fold into the
// attributes sub-mapping.
func parseKeyValues(raw string) extract.PartialRecord {
	var p extract.PartialRecord

	values := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		for key, re := range keyValuePatterns {
			if _, seen := values[key]; seen {
				continue
			}
			if m := re.FindStringSubmatch(line); m != nil {
				values[key] = strings.TrimSpace(m[1])
			}
		}
	}

	p.Title = values["title"]
	category := strings.ToLower(values["category"])
	if category != "" && category != taxonomy.Other && taxonomy.IsValid(category) {
		p.Category = category
	}

	attrs := map[string]string{}
	if values["color"] != "" {
		attrs["color"] = values["color"]
	}
	if values["brand"] != "" {
		attrs["brand"] = values["brand"]
	}
	if len(attrs) > 0 {
		p.Attributes = attrs
	}

	return p
}
