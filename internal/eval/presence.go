package eval

import "strings"

// NoAnswerSentinel is the prefix the answering service uses when it declines to answer.
const NoAnswerSentinel = "NA"

// AnswerProvided reports whether answer is a substantive reply. Only a
// case-sensitive NoAnswerSentinel prefix counts as no answer; an empty
// string counts as provided.
func AnswerProvided(answer string) bool {
	return !strings.HasPrefix(answer, NoAnswerSentinel)
}

// TestAnswerProvided reports whether answer presence matched expectation.
func TestAnswerProvided(shouldAnswer, provided bool) bool {
	return shouldAnswer == provided
}
