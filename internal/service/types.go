package service

import "context"

// Reference is one retrieved source document, in the service's rank order.
type Reference struct {
	Locator string `json:"locator" yaml:"locator"`
	Title   string `json:"title,omitempty" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Reply is the answering service's response to one question.
type Reply struct {
	Answer     string      `json:"answer" yaml:"answer"`
	References []Reference `json:"references" yaml:"references"`
}

// Answerer is the question-answering service under evaluation.
type Answerer interface {
	Answer(ctx context.Context, question string) (Reply, error)
}

// AnswererFunc adapts a function to the Answerer interface.
type AnswererFunc func(ctx context.Context, question string) (Reply, error)

// Answer calls f.
func (f AnswererFunc) Answer(ctx context.Context, question string) (Reply, error) {
	return f(ctx, question)
}

// Locators returns the reference locators in rank order.
func (r Reply) Locators() []string {
	out := make([]string, 0, len(r.References))
	for _, ref := range r.References {
		out = append(out, ref.Locator)
	}
	return out
}
