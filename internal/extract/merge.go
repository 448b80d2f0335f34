package extract

// Merge combines two partial records under the field-level precedence
// policy shared by the rule+generative and text+image merges:
//
//   - Attributes: union of both sides; on key collision the overlay wins.
//   - DetectedObjects and ExtractedText: always taken from the overlay
//     (only the image pipeline produces them).
//   - Everything else: the overlay fills gaps but never overwrites a
//     populated base field.
//
// The base is the authoritative deterministic source; the overlay is a
// best-effort supplement. Neither input is mutated.
func Merge(base, overlay PartialRecord) PartialRecord {
	merged := base

	attrs := copyAttrs(base.Attributes)
	for k, v := range overlay.Attributes {
		attrs[k] = v
	}
	merged.Attributes = attrs

	merged.DetectedObjects = overlay.DetectedObjects
	merged.ExtractedText = overlay.ExtractedText

	if merged.Title == "" {
		merged.Title = overlay.Title
	}
	if merged.Description == "" {
		merged.Description = overlay.Description
	}
	if merged.Category == "" {
		merged.Category = overlay.Category
	}
	if merged.Location == nil {
		merged.Location = overlay.Location
	}
	if merged.Date == "" {
		merged.Date = overlay.Date
	}
	if merged.ContactInfo == nil {
		merged.ContactInfo = overlay.ContactInfo
	}
	if merged.Reward == "" {
		merged.Reward = overlay.Reward
	}

	return merged
}
