package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubEnhancer returns a fixed partial record for every call.
type stubEnhancer struct {
	record PartialRecord
	calls  int
}

func (s *stubEnhancer) Enhance(ctx context.Context, text, postType string) PartialRecord {
	s.calls++
	return s.record
}

func TestExtractFromText_LostPhoneScenario(t *testing.T) {
	e := New(nil)
	rec, err := e.ExtractFromText(context.Background(),
		"Lost my black iPhone near Central Park yesterday, reward $50, call 555-123-4567", "")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}

	if rec.PostType != PostTypeLost {
		t.Errorf("PostType = %q, want LOST", rec.PostType)
	}
	if rec.Category != "electronics" {
		t.Errorf("Category = %q, want electronics", rec.Category)
	}
	if !strings.Contains(rec.Title, "Black Iphone") {
		t.Errorf("Title = %q, want it to contain Black Iphone", rec.Title)
	}
	if rec.Date != "yesterday" {
		t.Errorf("Date = %q, want yesterday", rec.Date)
	}
	if rec.Reward != "$50" {
		t.Errorf("Reward = %q, want $50", rec.Reward)
	}
	if rec.ContactInfo == nil || rec.ContactInfo.Phone == "" {
		t.Error("ContactInfo.Phone missing")
	}
	if rec.Location == nil || !strings.Contains(rec.Location.Description, "Central Park") {
		t.Errorf("Location = %+v, want Central Park", rec.Location)
	}
	if rec.ConfidenceScores.Overall <= 0.6 {
		t.Errorf("Overall = %v, want > 0.6", rec.ConfidenceScores.Overall)
	}
}

func TestExtractFromText_FoundClassification(t *testing.T) {
	e := New(nil)
	rec, err := e.ExtractFromText(context.Background(), "Found a set of keys", "")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if rec.PostType != PostTypeFound {
		t.Errorf("PostType = %q, want FOUND", rec.PostType)
	}
	if rec.Category != "keys" {
		t.Errorf("Category = %q, want keys", rec.Category)
	}
	if !strings.Contains(rec.Title, "Keys") {
		t.Errorf("Title = %q, want it to contain Keys", rec.Title)
	}
}

func TestClassifyPostType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I found a phone and someone lost it, found it twice actually", PostTypeFound},
		{"lost my dog, it went missing near the park", PostTypeLost},
		{"a red umbrella is sitting here", PostTypeLost}, // no keywords, default
		{"lost and found", PostTypeLost},                 // tie goes to LOST
	}
	for _, tt := range tests {
		if got := classifyPostType(tt.text); got != tt.want {
			t.Errorf("classifyPostType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractFromText_SuppliedPostTypeUppercased(t *testing.T) {
	e := New(nil)
	rec, err := e.ExtractFromText(context.Background(), "Found a set of keys", "lost")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if rec.PostType != "LOST" {
		t.Errorf("PostType = %q, want supplied value uppercased", rec.PostType)
	}
}

func TestExtractFromText_TooShort(t *testing.T) {
	e := New(nil)
	for _, text := range []string{"", "   ", "short", "  a b c  "} {
		if _, err := e.ExtractFromText(context.Background(), text, ""); !errors.Is(err, ErrTextTooShort) {
			t.Errorf("ExtractFromText(%q) err = %v, want ErrTextTooShort", text, err)
		}
	}
}

func TestExtractFromText_EnhancerFillsGaps(t *testing.T) {
	enh := &stubEnhancer{record: PartialRecord{
		Title:      "Generated Title",
		Attributes: map[string]string{"material": "leather", "color": "crimson"},
		Location:   &Location{Description: "somewhere nice", City: "Springfield"},
	}}
	e := New(enh)

	rec, err := e.ExtractFromText(context.Background(),
		"Lost my black wallet somewhere downtown today sadly", "")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if enh.calls != 1 {
		t.Errorf("enhancer calls = %d, want 1", enh.calls)
	}
	// Rule-based title wins; enhancer contribution only fills gaps.
	if rec.Title != "Black Wallet" {
		t.Errorf("Title = %q, want rule-based Black Wallet", rec.Title)
	}
	// Attribute collision: enhancer overlay wins per key.
	if rec.Attributes["color"] != "crimson" {
		t.Errorf("color = %q, want crimson", rec.Attributes["color"])
	}
	if rec.Attributes["material"] != "leather" {
		t.Errorf("material = %q, want leather", rec.Attributes["material"])
	}
	if rec.Location == nil || rec.Location.City != "Springfield" {
		t.Errorf("Location = %+v, want enhancer location", rec.Location)
	}
}

func TestExtractFromText_EnhancerEmptyResultHarmless(t *testing.T) {
	// An enhancer that fails internally contributes an empty record; the
	// rule-based result must come through untouched.
	e := New(&stubEnhancer{})
	rec, err := e.ExtractFromText(context.Background(), "Lost my black iPhone yesterday", "")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if rec.Category != "electronics" || rec.Title == "" {
		t.Errorf("rule-based fields missing: category=%q title=%q", rec.Category, rec.Title)
	}
}

func TestExtractFromImage(t *testing.T) {
	e := New(nil)
	objects := []DetectedObject{
		{Label: "backpack", Confidence: 0.95, Category: "bags"},
		{Label: "bottle", Confidence: 0.7, Category: "other"},
		{Label: "book", Confidence: 0.5, Category: "books"},
		{Label: "chair", Confidence: 0.2, Category: "other"},
	}
	p := e.ExtractFromImage(objects, "S/N: XY123Z call 555-123-4567")

	if p.Title != "Backpack" {
		t.Errorf("Title = %q, want Backpack", p.Title)
	}
	if p.Category != "bags" {
		t.Errorf("Category = %q, want bags", p.Category)
	}
	if p.Description != "Image shows: backpack, bottle, book" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Attributes["serial_number"] != "XY123Z" {
		t.Errorf("serial_number = %q, want XY123Z", p.Attributes["serial_number"])
	}
	if p.Attributes["phone_number"] == "" {
		t.Error("phone_number missing from OCR identifiers")
	}
	if p.ExtractedText == "" {
		t.Error("ExtractedText not carried through")
	}
}

func TestExtractFromImage_NoObjects(t *testing.T) {
	e := New(nil)
	p := e.ExtractFromImage(nil, "")
	if p.Title != "" || p.Category != "" {
		t.Errorf("got %+v, want empty title and category", p)
	}
}

func TestMergeExtractions(t *testing.T) {
	e := New(nil)
	textRec, err := e.ExtractFromText(context.Background(),
		"Lost my black iPhone near Central Park yesterday", "")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}

	imageRec := e.ExtractFromImage(
		[]DetectedObject{{Label: "cell phone", Confidence: 0.9, Category: "electronics"}},
		"IMEI: 123456789012345",
	)

	merged := e.MergeExtractions(textRec, imageRec)
	if merged.Title != textRec.Title {
		t.Errorf("Title = %q, want text record's %q", merged.Title, textRec.Title)
	}
	if merged.Attributes["serial_number"] != "123456789012345" {
		t.Errorf("serial_number = %q, want OCR identifier merged in", merged.Attributes["serial_number"])
	}
	if merged.Attributes["color"] != "black" {
		t.Errorf("color = %q, want text attribute preserved", merged.Attributes["color"])
	}
	if len(merged.DetectedObjects) != 1 {
		t.Errorf("DetectedObjects = %+v, want image side's", merged.DetectedObjects)
	}
	if merged.PostType != textRec.PostType {
		t.Errorf("PostType = %q, want %q", merged.PostType, textRec.PostType)
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Lost   my   phone  ", "Lost my phone"},
		{"Lost phone #help #urgent", "Lost phone"},
		{"RT: @finder lost a bag near here", "lost a bag near here"},
		{"check https://example.com/post for photos", "check for photos"},
		{"plain text stays as is", "plain text stays as is"},
	}
	for _, tt := range tests {
		if got := CleanDescription(tt.in); got != tt.want {
			t.Errorf("CleanDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanDescription_Idempotent(t *testing.T) {
	inputs := []string{
		"Lost my black iPhone near Central Park yesterday",
		"RT: @user lost #wallet at https://example.com",
		"#only #hashtags",
		"   spaced    out   ",
	}
	for _, in := range inputs {
		once := CleanDescription(in)
		if twice := CleanDescription(once); twice != once {
			t.Errorf("CleanDescription not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestCleanDescription_EmptyResultFallsBackToRaw(t *testing.T) {
	in := "#tag1 #tag2"
	if got := CleanDescription(in); got != in {
		t.Errorf("CleanDescription(%q) = %q, want raw fallback", in, got)
	}
}

func TestCleanDescription_Truncates(t *testing.T) {
	long := strings.Repeat("a", 1500)
	if got := CleanDescription(long); len(got) != 1000 {
		t.Errorf("len = %d, want 1000", len(got))
	}
}

func TestBuildTags(t *testing.T) {
	tags := buildTags("electronics", map[string]string{"color": "black", "brand": "Iphone"}, "Black Iphone Phone")

	want := []string{"black", "electronics", "iphone", "phone"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q (sorted)", i, tags[i], want[i])
		}
	}
}

func TestBuildTags_OtherCategoryExcluded(t *testing.T) {
	tags := buildTags("other", nil, "Mystery Object")
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}
}

func TestConfidenceMonotonicity(t *testing.T) {
	attrs := map[string]string{"color": "black"}
	without := scoreConfidence("Black Phone", "electronics", attrs, nil, "yesterday")
	with := scoreConfidence("Black Phone", "electronics", attrs, &Location{Description: "Main Street"}, "yesterday")

	if with.Overall < without.Overall {
		t.Errorf("adding location lowered overall: %v -> %v", without.Overall, with.Overall)
	}
}

func TestScoreConfidence(t *testing.T) {
	full := scoreConfidence("Black Iphone Phone", "electronics",
		map[string]string{"color": "black"}, &Location{Description: "Central Park"}, "yesterday")
	if full.Overall != 1.0 {
		t.Errorf("Overall = %v, want 1.0 for all fields filled", full.Overall)
	}
	if full.Category != 0.8 {
		t.Errorf("Category = %v, want 0.8", full.Category)
	}
	if full.Title != 0.9 {
		t.Errorf("Title = %v, want 0.9", full.Title)
	}

	empty := scoreConfidence("", "other", nil, nil, "")
	if empty.Overall != 0 {
		t.Errorf("Overall = %v, want 0", empty.Overall)
	}
	if empty.Category != 0.3 {
		t.Errorf("Category = %v, want 0.3", empty.Category)
	}
	if empty.Title != 0.5 {
		t.Errorf("Title = %v, want 0.5", empty.Title)
	}
}
