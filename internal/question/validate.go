package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question set.
type Issue struct {
	Field      string
	QuestionID string
	Message    string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		if issue.QuestionID != "" {
			parts = append(parts, fmt.Sprintf("%s (%q): %s", issue.Field, issue.QuestionID, issue.Message))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, questionID, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, QuestionID: questionID, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSet trims whitespace, fills default ids, lowercases keywords, and
// validates every question.
func NormalizeSet(raw rawSet) (Set, error) {
	collector := &issueCollector{}
	if raw.Version == 0 {
		collector.add("version", "", "is required")
	} else if raw.Version != 1 {
		collector.add("version", "", fmt.Sprintf("unsupported version %d", raw.Version))
	}
	if len(raw.Questions) == 0 {
		collector.add("questions", "", "must include at least one entry")
	}

	set := Set{Version: raw.Version, Questions: make([]Question, 0, len(raw.Questions))}
	seenIDs := map[string]struct{}{}
	for i, item := range raw.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		question := Question{
			Text:           strings.TrimSpace(item.Text),
			ID:             strings.TrimSpace(item.ID),
			ExpectedAnswer: strings.TrimSpace(item.ExpectedAnswer),
			ExpectedURL:    strings.TrimSpace(item.ExpectedURL),
		}
		if question.ID == "" {
			question.ID = question.Text
		}
		if question.Text == "" {
			collector.add(prefix+".question", question.ID, "is required")
		}
		if question.ID != "" {
			if _, exists := seenIDs[question.ID]; exists {
				collector.add(prefix+".id", question.ID, "duplicate id")
			} else {
				seenIDs[question.ID] = struct{}{}
			}
		}

		if item.ShouldAnswer == nil {
			collector.add(prefix+".should_answer", question.ID, "is required")
		} else {
			question.ShouldAnswer = *item.ShouldAnswer
		}
		if item.ShouldProvideRelevant == nil {
			collector.add(prefix+".should_provide_relevant", question.ID, "is required")
		} else {
			question.ShouldProvideRelevant = *item.ShouldProvideRelevant
		}

		question.ExpectedKeywords = normalizeKeywords(item.ExpectedKeywords)
		if len(question.ExpectedKeywords) == 0 {
			collector.add(prefix+".expected_keywords", question.ID, "must include at least one entry")
		}
		set.Questions = append(set.Questions, question)
	}

	if err := collector.result(); err != nil {
		return Set{}, err
	}
	return set, nil
}
