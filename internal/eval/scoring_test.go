package eval

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"qaeval/internal/collect"
	"qaeval/internal/question"
	"qaeval/internal/service"
)

// TestAnswerProvidedSentinel verifies only the case-sensitive NA prefix declines.
func TestAnswerProvidedSentinel(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"NA", false},
		{"NA - the documents do not say", false},
		{"The population was 59.6 million", true},
		{"", true},
		{"na", true},
		{" NA", true},
		{"Not available", true},
	}
	for _, tc := range cases {
		if got := AnswerProvided(tc.answer); got != tc.want {
			t.Fatalf("AnswerProvided(%q) = %t, want %t", tc.answer, got, tc.want)
		}
	}
}

func TestTestAnswerProvided(t *testing.T) {
	cases := []struct {
		should, provided, want bool
	}{
		{true, true, true},
		{false, false, true},
		{true, false, false},
		{false, true, false},
	}
	for _, tc := range cases {
		if got := TestAnswerProvided(tc.should, tc.provided); got != tc.want {
			t.Fatalf("TestAnswerProvided(%t, %t) = %t", tc.should, tc.provided, got)
		}
	}
}

// TestPartialTokenSetRatio verifies boundary values and known scores.
func TestPartialTokenSetRatio(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 0},
		{"one empty", "", "some answer", 0},
		{"whitespace only", "   ", "some answer", 0},
		{"equal", "inflation rose", "inflation rose", 100},
		{"reordered", "rose sharply inflation", "inflation rose sharply", 100},
		{"shared token", "the rate was 4%", "rate unknown", 100},
		{"contained substring", "abcd", "xxabcdyy", 100},
		{"one substitution", "abcd", "abxd", 75},
		{"disjoint characters", "abc", "xyz", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PartialTokenSetRatio(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("PartialTokenSetRatio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

// TestPartialTokenSetRatioProperties verifies range, symmetry, and repeatability.
func TestPartialTokenSetRatioProperties(t *testing.T) {
	inputs := []string{
		"",
		"GDP grew 0.2% in the third quarter",
		"growth of two tenths of a percent",
		"NA",
		"unemployment fell",
		"façade café naïve",
		"cafe facade",
		"x",
	}
	for _, a := range inputs {
		for _, b := range inputs {
			got := PartialTokenSetRatio(a, b)
			if got < 0 || got > 100 {
				t.Fatalf("ratio out of range for %q, %q: %v", a, b, got)
			}
			if again := PartialTokenSetRatio(a, b); again != got {
				t.Fatalf("ratio not repeatable for %q, %q: %v then %v", a, b, got, again)
			}
			if swapped := PartialTokenSetRatio(b, a); math.Abs(swapped-got) > 1e-9 {
				t.Fatalf("ratio not symmetric for %q, %q: %v vs %v", a, b, got, swapped)
			}
			if a == b && strings.TrimSpace(a) != "" && got != 100 {
				t.Fatalf("equal strings %q scored %v", a, got)
			}
		}
	}
}

func TestPartialRatioClippedWindows(t *testing.T) {
	// "cdef" best aligns with the clipped suffix "cde" of "abcde".
	got := PartialRatio("cdef", "abcde")
	want := 200.0 * 3 / 7
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("PartialRatio = %v, want %v", got, want)
	}
}

func TestRetrievalKeywordScore(t *testing.T) {
	content := "Millions watched the king's coronation ceremony"
	cases := []struct {
		keywords []string
		want     float64
	}{
		{[]string{"coronation", "king"}, 1},
		{[]string{"coronation", "queen"}, 0.5},
		{[]string{"parliament", "queen"}, 0},
		{[]string{"KING"}, 1},
	}
	for _, tc := range cases {
		got, err := RetrievalKeywordScore(content, tc.keywords)
		if err != nil {
			t.Fatalf("score %v: %v", tc.keywords, err)
		}
		if got != tc.want {
			t.Fatalf("RetrievalKeywordScore(%v) = %v, want %v", tc.keywords, got, tc.want)
		}
	}
}

// TestRetrievalKeywordScoreMonotonic verifies injecting more keywords never lowers the score.
func TestRetrievalKeywordScoreMonotonic(t *testing.T) {
	keywords := []string{"census", "population", "england", "wales", "households"}
	content := ""
	previous := -1.0
	for i := 0; i <= len(keywords); i++ {
		if i > 0 {
			content += " " + strings.ToUpper(keywords[i-1])
		}
		score, err := RetrievalKeywordScore(content, keywords)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if score < previous {
			t.Fatalf("score decreased from %v to %v", previous, score)
		}
		if i == 0 && score != 0 {
			t.Fatalf("expected 0 with no keywords present, got %v", score)
		}
		previous = score
	}
	if previous != 1 {
		t.Fatalf("expected 1 with all keywords present, got %v", previous)
	}
}

func TestRetrievalKeywordScoreEmptyKeywords(t *testing.T) {
	if _, err := RetrievalKeywordScore("anything", nil); !errors.Is(err, ErrNoKeywords) {
		t.Fatalf("expected ErrNoKeywords, got %v", err)
	}
}

func TestCorrectDocAndRank(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		locators []string
		correct  bool
		rank     float64
	}{
		{"top match", "/census/2021", []string{"/census/2021/summary", "/other"}, true, 1},
		{"second rank", "/census/2021", []string{"/other/page", "/census/2021/summary"}, false, 0.5},
		{"third rank", "/gdp", []string{"/a", "/b", "/gdp/q3"}, false, 1.0 / 3},
		{"missing", "/gdp", []string{"/a", "/b"}, false, 0},
		{"expected but nothing returned", "/gdp", nil, false, 0},
		{"nothing expected nothing returned", "", nil, true, 1},
		{"nothing expected something returned", "", []string{"/a"}, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CorrectDoc(tc.expected, tc.locators); got != tc.correct {
				t.Fatalf("CorrectDoc = %t, want %t", got, tc.correct)
			}
			rank := RetrievalRank(tc.expected, tc.locators)
			if math.Abs(rank-tc.rank) > 1e-12 {
				t.Fatalf("RetrievalRank = %v, want %v", rank, tc.rank)
			}
			if rank < 0 || rank > 1 {
				t.Fatalf("rank out of range: %v", rank)
			}
			if tc.expected != "" && (rank == 1) != (len(tc.locators) > 0 && strings.Contains(tc.locators[0], tc.expected)) {
				t.Fatalf("rank 1 must coincide with a top-ranked match")
			}
		})
	}
}

func sampleQuestion() question.Question {
	return question.Question{
		ID:               "What was the population of England in 2021?",
		Text:             "What was the population of England in 2021?",
		ShouldAnswer:     true,
		ExpectedAnswer:   "56.5 million",
		ExpectedURL:      "/census/2021",
		ExpectedKeywords: []string{"population", "england"},
	}
}

// TestScoreRow verifies all derived fields for one row.
func TestScoreRow(t *testing.T) {
	record := collect.Record{
		Answer: "England had 56.5 million residents",
		References: []service.Reference{
			{Locator: "/census/2021/population", Content: "Population estimates for England and Wales"},
			{Locator: "/other", Content: "unrelated"},
		},
	}
	row, err := ScoreRow(sampleQuestion(), record)
	if err != nil {
		t.Fatalf("score row: %v", err)
	}
	want := Row{
		Question:              sampleQuestion(),
		Record:                record,
		AnswerProvided:        true,
		TestAnswerProvided:    true,
		FuzzyPartialRatio:     100,
		RetrievalKeywordScore: 1,
		CorrectDoc:            true,
		RetrievalRank:         1,
	}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if row.SectionURL() != "/census/2021/population" || row.PageContent() != "Population estimates for England and Wales" {
		t.Fatalf("unexpected top reference fields: %q %q", row.SectionURL(), row.PageContent())
	}

	again, err := ScoreRow(sampleQuestion(), record)
	if err != nil {
		t.Fatalf("score row again: %v", err)
	}
	if diff := cmp.Diff(row, again); diff != "" {
		t.Fatalf("scoring not idempotent:\n%s", diff)
	}
}

// TestScoreRowNoReferences verifies boundary values when the service returns nothing.
func TestScoreRowNoReferences(t *testing.T) {
	row, err := ScoreRow(sampleQuestion(), collect.Record{Answer: "NA"})
	if err != nil {
		t.Fatalf("score row: %v", err)
	}
	if row.AnswerProvided || row.TestAnswerProvided {
		t.Fatalf("expected no answer, got %+v", row)
	}
	if row.RetrievalKeywordScore != 0 || row.CorrectDoc || row.RetrievalRank != 0 {
		t.Fatalf("expected zero retrieval scores, got %+v", row)
	}
	if row.SectionURL() != "" || row.PageContent() != "" || row.Failure() != "" {
		t.Fatalf("unexpected empty-reference accessors")
	}
}

// TestScoreRowTimeoutScoresAsMiss verifies a timed-out question never counts
// as a pass, even when declining and returning nothing would otherwise be correct.
func TestScoreRowTimeoutScoresAsMiss(t *testing.T) {
	blocking := service.AnswererFunc(func(ctx context.Context, question string) (service.Reply, error) {
		<-ctx.Done()
		return service.Reply{}, ctx.Err()
	})
	item := sampleQuestion()
	item.ShouldAnswer = true
	item.ExpectedURL = ""
	collector := &collect.Collector{Answerer: blocking, Workers: 1, Timeout: 10 * time.Millisecond}
	records, err := collector.CollectAll(context.Background(), []question.Question{item})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	row, err := ScoreRow(item, records[0])
	if err != nil {
		t.Fatalf("score row: %v", err)
	}
	if row.Failure() != collect.FailureTimeout {
		t.Fatalf("expected timeout failure, got %q", row.Failure())
	}
	if row.AnswerProvided || row.TestAnswerProvided || row.CorrectDoc {
		t.Fatalf("timeout scored as a pass: %+v", row)
	}
	if row.RetrievalRank != 0 || row.FuzzyPartialRatio != 0 || row.RetrievalKeywordScore != 0 {
		t.Fatalf("timeout has nonzero scores: %+v", row)
	}
}

func TestScoreRowEmptyKeywordsNamesQuestion(t *testing.T) {
	item := sampleQuestion()
	item.ExpectedKeywords = nil
	_, err := ScoreRow(item, collect.Record{})
	if !errors.Is(err, ErrNoKeywords) {
		t.Fatalf("expected ErrNoKeywords, got %v", err)
	}
	if !strings.Contains(err.Error(), item.ID) {
		t.Fatalf("expected error to name question, got %v", err)
	}
}

func TestScoreAllLengthMismatch(t *testing.T) {
	if _, err := ScoreAll([]question.Question{sampleQuestion()}, nil); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}
