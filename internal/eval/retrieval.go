package eval

import (
	"errors"
	"strings"
)

// ErrNoKeywords marks a question scored without expected keywords.
var ErrNoKeywords = errors.New("expected_keywords must not be empty")

// RetrievalKeywordScore returns the fraction of keywords found as
// case-insensitive substrings of content.
func RetrievalKeywordScore(content string, keywords []string) (float64, error) {
	if len(keywords) == 0 {
		return 0, ErrNoKeywords
	}
	lowered := strings.ToLower(content)
	found := 0
	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			found++
		}
	}
	return float64(found) / float64(len(keywords)), nil
}

// CorrectDoc reports whether the top-ranked locator contains expectedURL.
//
// An empty expectedURL means no document was expected, which is correct
// only when nothing was returned.
func CorrectDoc(expectedURL string, locators []string) bool {
	if expectedURL == "" {
		return len(locators) == 0
	}
	if len(locators) == 0 {
		return false
	}
	return strings.Contains(locators[0], expectedURL)
}

// RetrievalRank returns the reciprocal rank of the first locator containing
// expectedURL, or 0 when none does.
//
// An empty expectedURL scores 1 when nothing was returned and 0 otherwise.
func RetrievalRank(expectedURL string, locators []string) float64 {
	if expectedURL == "" {
		if len(locators) == 0 {
			return 1
		}
		return 0
	}
	for i, locator := range locators {
		if strings.Contains(locator, expectedURL) {
			return 1 / float64(i+1)
		}
	}
	return 0
}
