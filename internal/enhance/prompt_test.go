package enhance

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildPrompt(t *testing.T) {
	messages := BuildPrompt("lost my black wallet downtown", "LOST")

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != "system" || messages[1].Role != "user" {
		t.Errorf("roles = %q, %q", messages[0].Role, messages[1].Role)
	}
	if !strings.Contains(messages[0].Content, "electronics") {
		t.Error("system prompt should list taxonomy categories")
	}
	if !strings.Contains(messages[1].Content, "lost item description") {
		t.Errorf("user prompt = %q, want post type embedded", messages[1].Content)
	}
	if !strings.Contains(messages[1].Content, "lost my black wallet downtown") {
		t.Error("user prompt should embed the description")
	}
}

func TestBuildPrompt_DefaultPostType(t *testing.T) {
	messages := BuildPrompt("some item description text", "")
	if !strings.Contains(messages[1].Content, "lost or found item description") {
		t.Errorf("user prompt = %q, want neutral post type", messages[1].Content)
	}
}

func TestBuildPrompt_ExcerptCap(t *testing.T) {
	long := strings.Repeat("x", 5000)
	messages := BuildPrompt(long, "LOST")
	if len(messages[1].Content) > 1200 {
		t.Errorf("user prompt length = %d, want excerpt capped near 1000", len(messages[1].Content))
	}
}

func TestBuildPrompt_ExcerptCapMultibyte(t *testing.T) {
	long := strings.Repeat("é", 3000)
	messages := BuildPrompt(long, "LOST")

	if !utf8.ValidString(messages[1].Content) {
		t.Error("user prompt contains invalid UTF-8")
	}
	if n := strings.Count(messages[1].Content, "é"); n != maxPromptText {
		t.Errorf("excerpt carries %d characters, want %d", n, maxPromptText)
	}
}
