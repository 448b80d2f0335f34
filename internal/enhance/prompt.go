package enhance

import (
	"fmt"
	"strings"

	"github.com/lostlink/intake/internal/ollama"
	"github.com/lostlink/intake/internal/taxonomy"
)

// maxPromptText caps the description excerpt embedded in the prompt.
const maxPromptText = 1000

const systemPrompt = `You are an extraction engine for a lost and found service. Analyze the item description and output ONLY a single valid JSON object that conforms to the provided schema. Do not include any other text, prose, or markdown.

Rules:
- title: a short descriptive title for the item.
- category: exactly one of [%s, other].
- attributes: include color, brand, model, size, material only when mentioned.
- location: include description and city only when mentioned.
- date: the date the item was lost or found, only when mentioned.
- Omit fields that are not present in the description. Never invent details.`

// BuildPrompt constructs the chat messages for item extraction. The
// description excerpt is capped so long submissions cannot blow out the
// model context.
func BuildPrompt(text, postType string) []ollama.Message {
	if postType == "" {
		postType = "lost or found"
	}

	// The cap is in runes so a multi-byte character on the boundary is
	// dropped whole rather than split.
	excerpt := text
	if len(excerpt) > maxPromptText {
		if runes := []rune(excerpt); len(runes) > maxPromptText {
			excerpt = string(runes[:maxPromptText])
		}
	}

	system := fmt.Sprintf(systemPrompt, strings.Join(taxonomy.Names(), ", "))
	user := fmt.Sprintf("Extract item details from this %s item description.\n\nText: %q", strings.ToLower(postType), excerpt)

	return []ollama.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// extractionSchema returns the JSON schema requested from the model.
func extractionSchema() *ollama.Schema {
	return &ollama.Schema{
		Type: "object",
		Properties: map[string]ollama.SchemaProperty{
			"title":      {Type: "string", Description: "Short descriptive title for the item"},
			"category":   {Type: "string", Description: "Item category from the fixed taxonomy"},
			"attributes": {Type: "object", Description: "color, brand, model, size, material when mentioned"},
			"location":   {Type: "object", Description: "description and city when mentioned"},
			"date":       {Type: "string", Description: "Date the item was lost or found"},
		},
		Required: []string{"title", "category"},
	}
}
