package extract

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/lostlink/intake/internal/taxonomy"
)

// MinTextLength is the minimum stripped text length accepted for full
// extraction. Shorter input is rejected before any extraction work begins.
const MinTextLength = 10

const (
	maxCleanLength       = 1000
	maxTitleExcerpt      = 80
	maxDetectedObjects   = 10
	descriptionTopLabels = 3
)

// ErrTextTooShort is returned when the input text is below MinTextLength
// after trimming. It is an input validation error, distinguishable from
// internal failures so the transport layer can map it to a client error.
var ErrTextTooShort = errors.New("text too short for extraction")

// Enhancer is the optional generative enhancement layer. Enhance returns
// an empty partial record on any failure; it never reports an error, so
// the deterministic path always remains fully functional on its own.
type Enhancer interface {
	Enhance(ctx context.Context, text, postType string) PartialRecord
}

// Extractor composes the rule-based extractor, the optional generative
// enhancement layer, and the result merger into the public extraction
// contract.
type Extractor struct {
	enhancer Enhancer
}

// New creates an Extractor. Pass a nil enhancer to run rule-based-only
// extraction; the generative layer being absent is never an error.
func New(enhancer Enhancer) *Extractor {
	return &Extractor{enhancer: enhancer}
}

// lostKeywords and foundKeywords drive post-type classification when the
// caller does not supply one. Occurrences are counted as case-insensitive
// substrings across the whole text.
var lostKeywords = []string{
	"lost", "missing", "misplaced", "stolen",
	"can't find", "cannot find", "left behind", "dropped",
}

var foundKeywords = []string{
	"found", "discovered", "picked up", "came across",
	"turned in", "recovered", "spotted",
}

// ExtractFromText produces a structured record from a raw description.
// When a generative enhancer is configured it supplements the rule-based
// result; enhancement failures are invisible to the caller.
func (e *Extractor) ExtractFromText(ctx context.Context, text, postType string) (StructuredRecord, error) {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return StructuredRecord{}, ErrTextTooShort
	}

	p := ExtractRules(text)
	if e.enhancer != nil {
		p = Merge(p, e.enhancer.Enhance(ctx, text, postType))
	}

	return Finalize(p, text, postType), nil
}

// ExtractFromImage adapts the external vision/OCR collaborators' outputs
// into a partial record: the highest-confidence detection drives title and
// category, the top labels form a description, and OCR identifiers land
// in attributes.
func (e *Extractor) ExtractFromImage(objects []DetectedObject, ocrText string) PartialRecord {
	if len(objects) > maxDetectedObjects {
		objects = objects[:maxDetectedObjects]
	}

	p := PartialRecord{Attributes: ExtractIdentifiers(ocrText)}

	if len(objects) > 0 {
		primary := objects[0]
		p.Title = titleWords(primary.Label)
		p.Category = primary.Category
		if p.Category == "" {
			p.Category = taxonomy.Other
		}

		n := len(objects)
		if n > descriptionTopLabels {
			n = descriptionTopLabels
		}
		labels := make([]string, n)
		for i := 0; i < n; i++ {
			labels[i] = objects[i].Label
		}
		p.Description = "Image shows: " + strings.Join(labels, ", ")
	}

	p.DetectedObjects = objects
	p.ExtractedText = ocrText
	return p
}

// MergeExtractions combines a finished text record with an image-derived
// partial record. The text record is the authoritative base; the image
// result fills gaps, except for attributes (merged) and the image-only
// fields (always taken from the image side).
func (e *Extractor) MergeExtractions(textRec StructuredRecord, imageRec PartialRecord) StructuredRecord {
	base := PartialRecord{
		Title:       textRec.Title,
		Description: textRec.Description,
		Category:    textRec.Category,
		Attributes:  copyAttrs(textRec.Attributes),
		Location:    textRec.Location,
		Date:        textRec.Date,
		ContactInfo: textRec.ContactInfo,
		Reward:      textRec.Reward,
	}
	merged := Merge(base, imageRec)
	return Finalize(merged, textRec.OriginalText, textRec.PostType)
}

// Finalize turns a merged partial record into the final structured record:
// post-type derivation, clean description, tags, confidence scores, and
// the legacy duplicate fields older clients still read.
func Finalize(p PartialRecord, originalText, postType string) StructuredRecord {
	pt := strings.ToUpper(strings.TrimSpace(postType))
	if pt == "" {
		pt = classifyPostType(originalText)
	}

	category := p.Category
	if !taxonomy.IsValid(category) || category == "" {
		category = taxonomy.Other
	}

	source := originalText
	if strings.TrimSpace(source) == "" {
		source = p.Description
	}
	clean := CleanDescription(source)

	title := p.Title
	if title == "" {
		title = truncate(clean, maxTitleExcerpt)
	}

	attrs := copyAttrs(p.Attributes)
	scores := scoreConfidence(title, category, attrs, p.Location, p.Date)

	return StructuredRecord{
		PostType:         pt,
		Category:         category,
		Title:            title,
		CleanDescription: clean,
		Description:      clean,
		ItemAttributes:   attrs,
		Attributes:       copyAttrs(attrs),
		Location:         p.Location,
		DateTime:         p.Date,
		Date:             p.Date,
		ContactInfo:      p.ContactInfo,
		Reward:           p.Reward,
		Tags:             buildTags(category, attrs, title),
		ConfidenceScores: scores,
		Confidence:       scores.Overall,
		DetectedObjects:  p.DetectedObjects,
		ExtractedText:    p.ExtractedText,
		OriginalText:     originalText,
	}
}

// classifyPostType scores lost vs found keyword occurrences. FOUND wins
// only on a strictly greater found score; LOST is the tie-break default.
func classifyPostType(text string) string {
	lower := strings.ToLower(text)

	lostScore := 0
	for _, kw := range lostKeywords {
		lostScore += strings.Count(lower, kw)
	}
	foundScore := 0
	for _, kw := range foundKeywords {
		foundScore += strings.Count(lower, kw)
	}

	if foundScore > lostScore {
		return PostTypeFound
	}
	return PostTypeLost
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	hashtagPattern    = regexp.MustCompile(`#\w+`)
	mentionPattern    = regexp.MustCompile(`@\w+`)
	urlPattern        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	retweetPattern    = regexp.MustCompile(`\bRT:\s*`)
)

// CleanDescription sanitizes a raw description: collapse whitespace,
// strip hashtags, mentions, URLs, and retweet markers, then cap at 1000
// characters. When cleaning leaves nothing, the raw text (capped) is
// returned instead. Cleaning already-clean text is a no-op.
func CleanDescription(text string) string {
	s := strings.TrimSpace(text)
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = urlPattern.ReplaceAllString(s, "")
	s = hashtagPattern.ReplaceAllString(s, "")
	s = mentionPattern.ReplaceAllString(s, "")
	s = retweetPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
	s = truncate(s, maxCleanLength)
	if s == "" {
		return truncate(strings.TrimSpace(text), maxCleanLength)
	}
	return s
}

// tagItemKeywords are scanned against the title; the first hit becomes a
// tag.
var tagItemKeywords = []string{
	"phone", "wallet", "keys", "bag", "laptop", "watch",
	"glasses", "dog", "cat", "ring", "necklace", "earbuds",
	"camera", "tablet", "umbrella", "jacket", "book",
}

// buildTags collects category, color, brand, and the first item-type
// keyword found in the title into a deduplicated, sorted tag list.
func buildTags(category string, attrs map[string]string, title string) []string {
	set := map[string]struct{}{}
	if category != taxonomy.Other {
		set[category] = struct{}{}
	}
	if color := attrs["color"]; color != "" {
		set[strings.ToLower(color)] = struct{}{}
	}
	if brand := attrs["brand"]; brand != "" {
		set[strings.ToLower(brand)] = struct{}{}
	}
	lowerTitle := strings.ToLower(title)
	for _, kw := range tagItemKeywords {
		if strings.Contains(lowerTitle, kw) {
			set[kw] = struct{}{}
			break
		}
	}

	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// scoreConfidence derives confidence from field completeness: overall is
// the filled-field ratio over {title, category, attributes, location,
// date}, so filling more fields never lowers it.
func scoreConfidence(title, category string, attrs map[string]string, loc *Location, date string) ConfidenceScores {
	filled := 0
	if title != "" {
		filled++
	}
	if category != taxonomy.Other {
		filled++
	}
	if len(attrs) > 0 {
		filled++
	}
	if loc != nil {
		filled++
	}
	if date != "" {
		filled++
	}

	overall := float64(filled) / 5
	if overall > 1 {
		overall = 1
	}

	categoryScore := 0.3
	if category != taxonomy.Other {
		categoryScore = 0.8
	}
	titleScore := 0.5
	if len(title) > 5 {
		titleScore = 0.9
	}

	return ConfidenceScores{
		Overall:  overall,
		Category: categoryScore,
		Title:    titleScore,
	}
}
