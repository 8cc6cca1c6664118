package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDedupeKeepsFirstSeen verifies duplicates by locator and title are removed in rank order.
func TestDedupeKeepsFirstSeen(t *testing.T) {
	refs := []Reference{
		{Locator: "/a", Title: "A", Content: "first"},
		{Locator: "/b", Title: "B", Content: "second"},
		{Locator: "/a", Title: "A", Content: "repeat"},
		{Locator: "/a", Title: "A2", Content: "other title"},
	}
	want := []Reference{
		{Locator: "/a", Title: "A", Content: "first"},
		{Locator: "/b", Title: "B", Content: "second"},
		{Locator: "/a", Title: "A2", Content: "other title"},
	}
	if diff := cmp.Diff(want, Dedupe(refs)); diff != "" {
		t.Fatalf("dedupe mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWrapsWithDedupe(t *testing.T) {
	path := writeFile(t, t.TempDir(), "replies.yml", `replies:
  - question: q
    answer: a
    references:
      - {locator: /x, title: X, content: one}
      - {locator: /x, title: X, content: two}
`)
	answerer, err := New(Options{Type: "replay", ReplayFile: path, DedupeReferences: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	reply, err := answerer.Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if len(reply.References) != 1 || reply.References[0].Content != "one" {
		t.Fatalf("expected deduplicated references, got %+v", reply.References)
	}
}

func TestNewUnknownType(t *testing.T) {
	if _, err := New(Options{Type: "grpc"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
