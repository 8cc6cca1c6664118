package service

import "context"

type referenceKey struct {
	locator string
	title   string
}

// Dedupe drops references repeating an earlier (locator, title) pair while
// keeping rank order.
func Dedupe(refs []Reference) []Reference {
	if len(refs) == 0 {
		return refs
	}
	seen := make(map[referenceKey]struct{}, len(refs))
	out := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		key := referenceKey{locator: ref.Locator, title: ref.Title}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// Deduplicating wraps an Answerer so every reply has unique references.
func Deduplicating(inner Answerer) Answerer {
	return AnswererFunc(func(ctx context.Context, question string) (Reply, error) {
		reply, err := inner.Answer(ctx, question)
		if err != nil {
			return Reply{}, err
		}
		reply.References = Dedupe(reply.References)
		return reply, nil
	})
}
