// Package taxonomy holds the fixed category/keyword table used to
// classify lost and found item descriptions.
package taxonomy

import "strings"

// Other is the fallback category returned when no keyword matches.
const Other = "other"

// Category pairs a category name with its trigger keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Table lists categories in match-precedence order. Classify returns the
// first category with a keyword hit, so the order here is part of the
// contract: a description mentioning both "phone" and "wallet" always
// classifies as electronics because electronics comes first.
var Table = []Category{
	{Name: "electronics", Keywords: []string{
		"phone", "iphone", "android", "samsung", "laptop", "computer",
		"tablet", "ipad", "airpods", "headphones", "earbuds", "charger",
		"cable", "camera", "gopro", "drone", "smartwatch", "fitbit",
		"kindle", "e-reader", "speaker", "powerbank", "usb", "mouse",
		"keyboard",
	}},
	{Name: "documents", Keywords: []string{
		"passport", "id", "license", "driver's license", "driving license",
		"credit card", "debit card", "bank card", "social security",
		"birth certificate", "visa", "green card", "permit", "ticket",
		"boarding pass", "certificate", "diploma",
	}},
	{Name: "accessories", Keywords: []string{
		"watch", "glasses", "sunglasses", "umbrella", "scarf", "gloves",
		"belt", "tie", "hat", "cap", "wallet", "purse", "case",
	}},
	{Name: "clothing", Keywords: []string{
		"jacket", "coat", "sweater", "hoodie", "shirt", "pants", "jeans",
		"dress", "skirt", "shoes", "boots", "sneakers", "sandals",
	}},
	{Name: "bags", Keywords: []string{
		"bag", "backpack", "purse", "handbag", "briefcase", "suitcase",
		"luggage", "duffel", "tote", "messenger bag", "laptop bag",
	}},
	{Name: "keys", Keywords: []string{
		"keys", "key", "keychain", "car key", "house key", "key fob",
	}},
	{Name: "pets", Keywords: []string{
		"dog", "cat", "puppy", "kitten", "bird", "parrot", "rabbit",
		"hamster", "pet", "golden retriever", "labrador", "bulldog",
		"poodle", "beagle", "german shepherd", "husky",
	}},
	{Name: "jewelry", Keywords: []string{
		"ring", "necklace", "bracelet", "earring", "watch", "pendant",
		"chain", "diamond", "gold", "silver", "engagement ring",
		"wedding ring",
	}},
	{Name: "sports", Keywords: []string{
		"ball", "soccer", "football", "basketball", "tennis", "golf",
		"skateboard", "bicycle", "bike", "helmet", "racket", "bat",
		"glove",
	}},
	{Name: "books", Keywords: []string{
		"book", "notebook", "journal", "diary", "textbook", "novel",
	}},
	{Name: "toys", Keywords: []string{
		"toy", "doll", "teddy bear", "stuffed animal", "lego", "game",
		"puzzle",
	}},
	{Name: "medical", Keywords: []string{
		"medication", "medicine", "insulin", "inhaler", "hearing aid",
		"glasses", "prescription", "medical device",
	}},
	{Name: "instruments", Keywords: []string{
		"guitar", "violin", "piano", "keyboard", "drums", "flute",
		"saxophone", "trumpet", "ukulele",
	}},
}

// Classify returns the first category in Table whose keyword set has a
// substring match in text (case-insensitive), or Other when none match.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, c := range Table {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Name
			}
		}
	}
	return Other
}

// Names returns all category names in table order, excluding Other.
func Names() []string {
	names := make([]string, len(Table))
	for i, c := range Table {
		names[i] = c.Name
	}
	return names
}

// IsValid reports whether name is a known category name or Other.
func IsValid(name string) bool {
	if name == Other {
		return true
	}
	for _, c := range Table {
		if c.Name == name {
			return true
		}
	}
	return false
}
