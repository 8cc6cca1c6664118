package question

import "strings"

// NormalizeKeyword trims and lowercases a keyword for matching.
func NormalizeKeyword(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// normalizeKeywords lowercases keywords and drops blanks and repeats, keeping
// first-seen order.
func normalizeKeywords(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		keyword := NormalizeKeyword(value)
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		out = append(out, keyword)
	}
	return out
}
