package question

// Set is an ordered collection of test questions.
type Set struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one test case: the text sent to the answering service plus the
// outcomes expected from it.
type Question struct {
	ID                    string   `json:"id" yaml:"id"`
	Text                  string   `json:"question" yaml:"question"`
	ShouldAnswer          bool     `json:"should_answer" yaml:"should_answer"`
	ShouldProvideRelevant bool     `json:"should_provide_relevant" yaml:"should_provide_relevant"`
	ExpectedAnswer        string   `json:"expected_answer" yaml:"expected_answer"`
	ExpectedURL           string   `json:"expected_url" yaml:"expected_url"`
	ExpectedKeywords      []string `json:"expected_keywords" yaml:"expected_keywords"`
}

// ExpectsDocument reports whether a specific source document is expected.
func (q Question) ExpectsDocument() bool {
	return q.ExpectedURL != ""
}

// Limit returns a copy of the set holding at most the first n questions.
// Non-positive n keeps every question.
func (s Set) Limit(n int) Set {
	if n <= 0 || n >= len(s.Questions) {
		return s
	}
	out := Set{Version: s.Version, Questions: make([]Question, n)}
	copy(out.Questions, s.Questions[:n])
	return out
}

// rawSet is the list-form document before validation.
type rawSet struct {
	Version   int           `json:"version" yaml:"version"`
	Questions []rawQuestion `json:"questions" yaml:"questions"`
}

// rawQuestion keeps required booleans as pointers so absence can be reported.
type rawQuestion struct {
	ID                    string   `json:"id" yaml:"id" toml:"id"`
	Text                  string   `json:"question" yaml:"question" toml:"question"`
	ShouldAnswer          *bool    `json:"should_answer" yaml:"should_answer" toml:"should_answer"`
	ShouldProvideRelevant *bool    `json:"should_provide_relevant" yaml:"should_provide_relevant" toml:"should_provide_relevant"`
	ExpectedAnswer        string   `json:"expected_answer" yaml:"expected_answer" toml:"expected_answer"`
	ExpectedURL           string   `json:"expected_url" yaml:"expected_url" toml:"expected_url"`
	ExpectedKeywords      []string `json:"expected_keywords" yaml:"expected_keywords" toml:"expected_keywords"`
}

// mappingFields lists the keys accepted under a question in mapping-form documents.
var mappingFields = map[string]struct{}{
	"id":                      {},
	"should_answer":           {},
	"should_provide_relevant": {},
	"expected_answer":         {},
	"expected_url":            {},
	"expected_keywords":       {},
}
