package extract

import (
	"strings"
	"testing"
)

func TestExtractRules_LostPhone(t *testing.T) {
	text := "Lost my black iPhone near Central Park yesterday, reward $50, call 555-123-4567"
	p := ExtractRules(text)

	if p.Category != "electronics" {
		t.Errorf("Category = %q, want electronics", p.Category)
	}
	if p.Attributes["color"] != "black" {
		t.Errorf("color = %q, want black", p.Attributes["color"])
	}
	if p.Attributes["brand"] != "Iphone" {
		t.Errorf("brand = %q, want Iphone", p.Attributes["brand"])
	}
	if !strings.Contains(p.Title, "Black Iphone") {
		t.Errorf("Title = %q, want it to contain Black Iphone", p.Title)
	}
	if p.Date != "yesterday" {
		t.Errorf("Date = %q, want yesterday", p.Date)
	}
	if p.Reward != "$50" {
		t.Errorf("Reward = %q, want $50", p.Reward)
	}
	if p.ContactInfo == nil || p.ContactInfo.Phone != "5551234567" {
		t.Errorf("ContactInfo = %+v, want phone 5551234567", p.ContactInfo)
	}
	if p.Location == nil || !strings.Contains(p.Location.Description, "Central Park") {
		t.Errorf("Location = %+v, want description containing Central Park", p.Location)
	}
}

func TestExtractRules_FoundKeys(t *testing.T) {
	p := ExtractRules("Found a set of keys")

	if p.Category != "keys" {
		t.Errorf("Category = %q, want keys", p.Category)
	}
	if !strings.Contains(p.Title, "Keys") {
		t.Errorf("Title = %q, want it to contain Keys", p.Title)
	}
}

func TestExtractRules_FirstColorInListWins(t *testing.T) {
	// "red" precedes "blue" in the color list even though "blue" appears
	// first in the text.
	p := ExtractRules("Dropped a blue and red scarf somewhere")
	if p.Attributes["color"] != "red" {
		t.Errorf("color = %q, want red (list order, not text order)", p.Attributes["color"])
	}
}

func TestExtractRules_BrandTitleCased(t *testing.T) {
	p := ExtractRules("Lost my louis vuitton handbag at the airport")
	if p.Attributes["brand"] != "Louis Vuitton" {
		t.Errorf("brand = %q, want Louis Vuitton", p.Attributes["brand"])
	}

	p = ExtractRules("Missing ray-ban sunglasses from the beach")
	if p.Attributes["brand"] != "Ray-Ban" {
		t.Errorf("brand = %q, want Ray-Ban", p.Attributes["brand"])
	}
}

func TestExtractRules_PhoneAndEmailTogether(t *testing.T) {
	p := ExtractRules("Lost wallet downtown. Call 555-123-4567 or email me at jane.doe@example.com")

	if p.ContactInfo == nil {
		t.Fatal("ContactInfo = nil, want both phone and email")
	}
	if p.ContactInfo.Phone != "5551234567" {
		t.Errorf("Phone = %q, want 5551234567", p.ContactInfo.Phone)
	}
	if p.ContactInfo.Email != "jane.doe@example.com" {
		t.Errorf("Email = %q, want jane.doe@example.com", p.ContactInfo.Email)
	}
}

func TestExtractRules_ShortPhoneRejected(t *testing.T) {
	p := ExtractRules("Lost bag, call 555-1234 for details about it")
	if p.ContactInfo != nil && p.ContactInfo.Phone != "" {
		t.Errorf("Phone = %q, want empty for fewer than 10 digits", p.ContactInfo.Phone)
	}
}

func TestExtractRules_DatePatternOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Lost my keys on 12/05/2024 at the station", "12/05/2024"},
		{"Lost my keys 3 March 2024 downtown", "3 March 2024"},
		{"Lost my keys last week near the gym", "last week"},
		{"Lost my keys this morning near the gym", "this morning"},
	}
	for _, tt := range tests {
		p := ExtractRules(tt.text)
		if p.Date != tt.want {
			t.Errorf("ExtractRules(%q).Date = %q, want %q", tt.text, p.Date, tt.want)
		}
	}
}

func TestExtractRules_StreetLocation(t *testing.T) {
	p := ExtractRules("Lost a glove somewhere on Baker Street last night")
	if p.Location == nil || !strings.Contains(p.Location.Description, "Baker Street") {
		t.Errorf("Location = %+v, want Baker Street", p.Location)
	}
}

func TestExtractRules_RewardVariants(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Lost my cat, reward $100 if returned", "$100"},
		{"Lost my cat, cash reward of 250 available", "$250"},
		{"Lost my cat, offering $75 for its return", "$75"},
		{"Lost my cat, no strings attached here", ""},
	}
	for _, tt := range tests {
		p := ExtractRules(tt.text)
		if p.Reward != tt.want {
			t.Errorf("ExtractRules(%q).Reward = %q, want %q", tt.text, p.Reward, tt.want)
		}
	}
}

func TestBuildTitle_SentenceFallback(t *testing.T) {
	// No color, brand, or item-type keyword: falls back to the first
	// reasonably-sized sentence that is not contact boilerplate.
	p := ExtractRules("Misplaced a small leather pouch. Please call 555-123-4567 if seen")
	if p.Title != "Misplaced a small leather pouch" {
		t.Errorf("Title = %q, want sentence fallback", p.Title)
	}
}

func TestBuildTitle_ExcerptFallback(t *testing.T) {
	long := strings.Repeat("x", 120)
	p := ExtractRules(long)
	if len(p.Title) != 80 {
		t.Errorf("len(Title) = %d, want 80-char excerpt", len(p.Title))
	}
}

func TestExtractRules_EmptyText(t *testing.T) {
	p := ExtractRules("")
	if p.Category != "other" {
		t.Errorf("Category = %q, want other", p.Category)
	}
	if len(p.Attributes) != 0 {
		t.Errorf("Attributes = %v, want empty", p.Attributes)
	}
	if p.Location != nil || p.ContactInfo != nil {
		t.Error("Location/ContactInfo should be nil for empty text")
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct{ in, want string }{
		{"black", "Black"},
		{"louis vuitton", "Louis Vuitton"},
		{"ray-ban", "Ray-Ban"},
		{"id card", "Id Card"},
		{"iPHONE", "Iphone"},
	}
	for _, tt := range tests {
		if got := titleWords(tt.in); got != tt.want {
			t.Errorf("titleWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
