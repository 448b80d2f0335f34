package extract

import "regexp"

// serialPatterns are tried in order; the first hit wins. The generic
// alphanumeric form precedes the prefixed forms and contributes the whole
// match; patterns with a capture group contribute the group.
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z0-9]{10,20}\b`),
	regexp.MustCompile(`(?i)\bS/N[\s:]*([A-Z0-9]+)\b`),
	regexp.MustCompile(`(?i)\bSerial[\s:]*([A-Z0-9]+)\b`),
	regexp.MustCompile(`(?i)\bIMEI[\s:]*(\d{15})\b`),
}

// modelPatterns are tried in order, first hit wins.
var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bModel[\s:]*([A-Z0-9-]+)\b`),
	regexp.MustCompile(`(?i)\b(iPhone\s*\d+\s*(?:Pro|Max|Plus)?)\b`),
	regexp.MustCompile(`(?i)\b(Galaxy\s*[A-Z]\d+)\b`),
	regexp.MustCompile(`(?i)\b(MacBook\s*(?:Pro|Air)?)\b`),
}

// ExtractIdentifiers pulls potential identifiers (serial numbers, phone
// numbers, emails, model numbers) out of raw OCR text. Serial and model
// use first-match-wins across their pattern cascades; phone and email
// collect all matches and keep the first, since attribute values are
// scalar strings.
func ExtractIdentifiers(text string) map[string]string {
	identifiers := map[string]string{}
	if text == "" {
		return identifiers
	}

	for _, re := range serialPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			identifiers["serial_number"] = m[1]
		} else {
			identifiers["serial_number"] = m[0]
		}
		break
	}

	if phones := phonePattern.FindAllString(text, -1); len(phones) > 0 {
		identifiers["phone_number"] = phones[0]
	}

	if emails := emailPattern.FindAllString(text, -1); len(emails) > 0 {
		identifiers["email"] = emails[0]
	}

	for _, re := range modelPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		identifiers["model"] = m[1]
		break
	}

	return identifiers
}
