package extract

import (
	"regexp"
	"strings"

	"github.com/lostlink/intake/internal/taxonomy"
)

// colors is scanned in order; the first color mentioned in the list (not
// in the text) wins. Order is part of the extraction contract.
var colors = []string{
	"black", "white", "red", "blue", "green", "yellow",
	"orange", "purple", "pink", "brown", "gray", "grey",
	"silver", "gold", "beige", "navy", "maroon",
}

// brands is scanned in order with first-match-wins, same as colors.
var brands = []string{
	"apple", "iphone", "samsung", "galaxy", "google", "pixel",
	"huawei", "xiaomi", "oneplus", "sony", "lg", "motorola",
	"nokia", "hp", "dell", "lenovo", "asus", "acer",
	"microsoft", "surface", "macbook", "ipad", "airpods",
	"nike", "adidas", "puma", "reebok", "converse", "vans",
	"gucci", "louis vuitton", "prada", "coach", "michael kors",
	"ray-ban", "oakley", "rolex", "casio", "fossil",
}

// itemTypes drives title construction; first match wins.
var itemTypes = []string{
	"phone", "wallet", "keys", "bag", "laptop", "watch",
	"glasses", "umbrella", "jacket", "dog", "cat", "ring",
	"necklace", "earbuds", "headphones", "camera", "tablet",
	"id card",
}

// locationPatterns are tried in order, most specific first: landmark
// phrases, then any capitalized phrase after a preposition, then street
// forms. The ordering is a precision-over-recall policy; a match only
// counts when the captured group is longer than 3 characters.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:at|near|in|around|by)\s+(?:the\s+)?([A-Z][A-Za-z\s]*(?i:station|park|mall|center|centre|street|road|avenue|plaza|square|building))`),
	regexp.MustCompile(`\b(?:at|near|in|around|by)\s+(?:the\s+)?([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`\b(?:on|along)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*\s+(?i:street|road|avenue|drive|lane|boulevard))`),
}

// datePatterns are tried in order; the matched substring is stored
// verbatim with no calendar normalization.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:on|dated)\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`\b(\d{1,2}\s+(?i:January|February|March|April|May|June|July|August|September|October|November|December)(?:\s+\d{4})?)`),
	regexp.MustCompile(`(?i)\b(?:yesterday|today|last\s+(?:night|week|month|monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`),
	regexp.MustCompile(`(?i)\bthis\s+(?:morning|afternoon|evening|night)\b`),
}

var (
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	rewardPattern = regexp.MustCompile(`(?i)(?:cash\s+reward|reward|offering)(?:\s+of)?\s*:?\s*\$?\s*(\d+)`)

	// Sentences that look like contact boilerplate are never used as a
	// fallback title.
	titleExcludePattern = regexp.MustCompile(`(?i)call|contact|reward|email|phone|@`)

	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
)

// ExtractRules runs the deterministic rule-based extractor over text and
// returns a partial record. It is a pure function: no side effects, never
// fails on well-formed string input.
func ExtractRules(text string) PartialRecord {
	p := PartialRecord{
		Description: truncate(text, 500),
		Category:    taxonomy.Classify(text),
		Attributes:  map[string]string{},
	}

	lower := strings.ToLower(text)

	for _, color := range colors {
		if strings.Contains(lower, color) {
			p.Attributes["color"] = color
			break
		}
	}

	for _, brand := range brands {
		if strings.Contains(lower, brand) {
			p.Attributes["brand"] = titleWords(brand)
			break
		}
	}

	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(m[1])
		if len(desc) > 3 {
			p.Location = &Location{Description: desc}
			break
		}
	}

	for _, re := range datePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			p.Date = m[1]
		} else {
			p.Date = m[0]
		}
		break
	}

	// Phone and email are independent; both may be present.
	phone := extractPhone(text)
	email := emailPattern.FindString(text)
	if phone != "" || email != "" {
		p.ContactInfo = &ContactInfo{Phone: phone, Email: email}
	}

	if m := rewardPattern.FindStringSubmatch(text); m != nil {
		p.Reward = "$" + m[1]
	}

	p.Title = buildTitle(text, lower, p.Attributes)

	return p
}

// extractPhone finds the first phone-shaped substring, strips everything
// but digits and a leading plus, and keeps the result only when it has at
// least 10 digits.
func extractPhone(text string) string {
	raw := phonePattern.FindString(text)
	if raw == "" {
		return ""
	}
	normalized := nonPhoneChars.ReplaceAllString(raw, "")
	if digitCount(normalized) < 10 {
		return ""
	}
	return normalized
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// buildTitle concatenates title-cased color, brand, and item type, in that
// order, skipping absent parts. With none found it falls back to the first
// reasonably-sized sentence that is not contact boilerplate, then to a
// plain 80-character excerpt.
func buildTitle(text, lower string, attrs map[string]string) string {
	var parts []string
	if color := attrs["color"]; color != "" {
		parts = append(parts, titleWords(color))
	}
	if brand := attrs["brand"]; brand != "" {
		parts = append(parts, brand)
	}
	for _, item := range itemTypes {
		if strings.Contains(lower, item) {
			parts = append(parts, titleWords(item))
			break
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	for _, sentence := range strings.Split(text, ".") {
		s := strings.TrimSpace(sentence)
		if len(s) > 10 && len(s) < 100 && !titleExcludePattern.MatchString(s) {
			return s
		}
	}

	return truncate(strings.TrimSpace(text), 80)
}

// titleWords uppercases the first letter of every word, where a word
// starts after any non-letter ("louis vuitton" -> "Louis Vuitton",
// "ray-ban" -> "Ray-Ban").
func titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		switch {
		case !prevLetter && isLower:
			b.WriteRune(r - 'a' + 'A')
		case prevLetter && isUpper:
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteRune(r)
		}
		prevLetter = isLower || isUpper
	}
	return b.String()
}

// truncate limits s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
