// Package extract turns free-text lost and found item descriptions into
// structured records using deterministic rule-based parsing with optional
// generative enhancement.
package extract

// Post types classify the intent of a report.
const (
	PostTypeLost  = "LOST"
	PostTypeFound = "FOUND"
)

// Location describes where an item was lost or found.
type Location struct {
	Description string `json:"description"`
	City        string `json:"city,omitempty"`
}

// ContactInfo holds contact details parsed out of a description. Phone and
// email are extracted independently; both may be present.
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// DetectedObject is one detection produced by the external vision
// collaborator: label, confidence, and a pre-mapped item category.
// Detections arrive sorted by descending confidence, capped at 10.
type DetectedObject struct {
	Label       string             `json:"label"`
	Confidence  float64            `json:"confidence"`
	BoundingBox map[string]float64 `json:"bounding_box,omitempty"`
	Category    string             `json:"category,omitempty"`
}

// PartialRecord is the output of a single extraction stage (rules,
// generative enhancement, or the image adapter) before merging. Empty
// fields mean the stage found nothing for them.
type PartialRecord struct {
	Title           string            `json:"title,omitempty"`
	Description     string            `json:"description,omitempty"`
	Category        string            `json:"category,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	Location        *Location         `json:"location,omitempty"`
	Date            string            `json:"date,omitempty"`
	ContactInfo     *ContactInfo      `json:"contact_info,omitempty"`
	Reward          string            `json:"reward,omitempty"`
	DetectedObjects []DetectedObject  `json:"detected_objects,omitempty"`
	ExtractedText   string            `json:"extracted_text,omitempty"`
}

// ConfidenceScores rates field completeness of a finished record.
// All values are in [0, 1].
type ConfidenceScores struct {
	Overall  float64 `json:"overall"`
	Category float64 `json:"category"`
	Title    float64 `json:"title"`
}

// StructuredRecord is the final extraction result returned to callers.
//
// Several fields are intentionally duplicated under canonical and legacy
// names (Attributes/ItemAttributes, Date/DateTime,
// Description/CleanDescription, Confidence/ConfidenceScores.Overall) for
// backward compatibility with older clients; both halves of each pair are
// always populated identically. Records are values: transformations
// produce a new record, never mutate one in place.
type StructuredRecord struct {
	PostType         string            `json:"post_type"`
	Category         string            `json:"category"`
	Title            string            `json:"title"`
	CleanDescription string            `json:"clean_description"`
	Description      string            `json:"description"`
	ItemAttributes   map[string]string `json:"item_attributes"`
	Attributes       map[string]string `json:"attributes"`
	Location         *Location         `json:"location,omitempty"`
	DateTime         string            `json:"date_time,omitempty"`
	Date             string            `json:"date,omitempty"`
	ContactInfo      *ContactInfo      `json:"contact_info,omitempty"`
	Reward           string            `json:"reward,omitempty"`
	Tags             []string          `json:"tags"`
	ConfidenceScores ConfidenceScores  `json:"confidence_scores"`
	Confidence       float64           `json:"confidence"`
	DetectedObjects  []DetectedObject  `json:"detected_objects,omitempty"`
	ExtractedText    string            `json:"extracted_text,omitempty"`
	OriginalText     string            `json:"original_text,omitempty"`
}

// copyAttrs returns a fresh copy of m so merged records never alias the
// attribute maps of their inputs.
func copyAttrs(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
