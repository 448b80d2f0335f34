package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lostlink/intake/internal/extract"
	"github.com/lostlink/intake/internal/taxonomy"
)

// MCPDeps holds dependencies for the MCP server. Only the extractor is
// required; the tools are all stateless.
type MCPDeps struct {
	Extractor *extract.Extractor
}

// NewMCPServer creates an MCP server exposing the extraction engine as
// tools, so agent clients can structure item reports without going
// through the REST API.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"intake",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("intake — structures free-text lost and found item reports into normalized records."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("extract_item",
			mcp.WithDescription("Extract a structured record (title, category, attributes, location, date, contact info) from a free-text lost or found item description."),
			mcp.WithString("text", mcp.Description("The item description"), mcp.Required()),
			mcp.WithString("post_type", mcp.Description("LOST or FOUND; inferred from the text when omitted")),
		),
		mcpExtractItem(deps),
	)

	s.AddTool(
		mcp.NewTool("classify_category",
			mcp.WithDescription("Classify an item description into one of the fixed item categories."),
			mcp.WithString("text", mcp.Description("The item description"), mcp.Required()),
		),
		mcpClassifyCategory(),
	)

	s.AddTool(
		mcp.NewTool("extract_identifiers",
			mcp.WithDescription("Pull serial numbers, model numbers, phone numbers, and emails out of raw text (e.g. OCR output)."),
			mcp.WithString("text", mcp.Description("Raw text to scan"), mcp.Required()),
		),
		mcpExtractIdentifiers(),
	)

	s.AddResource(
		mcp.NewResource(
			"intake://categories",
			"Item Categories",
			mcp.WithResourceDescription("The fixed item category taxonomy as a JSON array"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceCategories(),
	)

	return s
}

func mcpExtractItem(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcpError("text is required"), nil
		}
		postType := req.GetString("post_type", "")

		rec, err := deps.Extractor.ExtractFromText(ctx, text, postType)
		if err != nil {
			return mcpError(fmt.Sprintf("extraction failed: %v", err)), nil
		}

		b, err := json.Marshal(rec)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal record: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpClassifyCategory() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcpError("text is required"), nil
		}
		return mcpText(taxonomy.Classify(text)), nil
	}
}

func mcpExtractIdentifiers() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcpError("text is required"), nil
		}

		ids := extract.ExtractIdentifiers(text)
		b, err := json.Marshal(ids)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal identifiers: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceCategories() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(taxonomy.Names())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal categories: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
