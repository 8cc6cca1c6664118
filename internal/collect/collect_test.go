package collect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"qaeval/internal/question"
	"qaeval/internal/service"
	"qaeval/internal/testutil"
)

func questionsFor(texts ...string) []question.Question {
	out := make([]question.Question, 0, len(texts))
	for _, text := range texts {
		out = append(out, question.Question{ID: text, Text: text})
	}
	return out
}

func echoAnswerer(delay func(string) time.Duration) service.Answerer {
	return service.AnswererFunc(func(ctx context.Context, text string) (service.Reply, error) {
		if delay != nil {
			time.Sleep(delay(text))
		}
		return service.Reply{
			Answer:     "answer to " + text,
			References: []service.Reference{{Locator: "/" + text, Content: text}},
		}, nil
	})
}

// TestCollectTimesSingleCall verifies the answerer is called once and the call is timed.
func TestCollectTimesSingleCall(t *testing.T) {
	var calls atomic.Int32
	answerer := service.AnswererFunc(func(ctx context.Context, text string) (service.Reply, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return service.Reply{Answer: "ok"}, nil
	})
	record, err := Collect(testutil.Context(t, 0), question.Question{ID: "q", Text: "q"}, answerer)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", calls.Load())
	}
	if record.Answer != "ok" {
		t.Fatalf("unexpected answer %q", record.Answer)
	}
	if record.Elapsed < 20*time.Millisecond {
		t.Fatalf("expected elapsed >= 20ms, got %s", record.Elapsed)
	}
}

func TestCollectAllPreservesOrder(t *testing.T) {
	texts := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}
	delays := map[string]time.Duration{"alpha": 30 * time.Millisecond, "beta": 5 * time.Millisecond, "gamma": 20 * time.Millisecond}
	for _, workers := range []int{0, 1, 3, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			collector := &Collector{
				Answerer: echoAnswerer(func(text string) time.Duration { return delays[text] }),
				Workers:  workers,
			}
			records, err := collector.CollectAll(testutil.Context(t, 0), questionsFor(texts...))
			if err != nil {
				t.Fatalf("collect all: %v", err)
			}
			if len(records) != len(texts) {
				t.Fatalf("expected %d records, got %d", len(texts), len(records))
			}
			for i, text := range texts {
				if records[i].Answer != "answer to "+text {
					t.Fatalf("record %d out of order: %q", i, records[i].Answer)
				}
			}
		})
	}
}

// TestCollectAllSequentialDoesNotOverlap verifies one worker never runs two calls at once.
func TestCollectAllSequentialDoesNotOverlap(t *testing.T) {
	var active, peak atomic.Int32
	answerer := service.AnswererFunc(func(ctx context.Context, text string) (service.Reply, error) {
		current := active.Add(1)
		defer active.Add(-1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		return service.Reply{Answer: text}, nil
	})
	collector := &Collector{Answerer: answerer, Workers: 1}
	if _, err := collector.CollectAll(testutil.Context(t, 0), questionsFor("a", "b", "c", "d")); err != nil {
		t.Fatalf("collect all: %v", err)
	}
	if peak.Load() != 1 {
		t.Fatalf("expected peak concurrency 1, got %d", peak.Load())
	}
}

// TestCollectAllParallelTimingIsPerQuestion verifies each record times only its own call.
func TestCollectAllParallelTimingIsPerQuestion(t *testing.T) {
	delays := map[string]time.Duration{"slow": 80 * time.Millisecond, "fast": 0}
	collector := &Collector{
		Answerer: echoAnswerer(func(text string) time.Duration { return delays[text] }),
		Workers:  2,
	}
	records, err := collector.CollectAll(testutil.Context(t, 0), questionsFor("slow", "fast"))
	if err != nil {
		t.Fatalf("collect all: %v", err)
	}
	if records[0].Elapsed < 80*time.Millisecond {
		t.Fatalf("expected slow call >= 80ms, got %s", records[0].Elapsed)
	}
	if records[1].Elapsed >= 80*time.Millisecond {
		t.Fatalf("expected fast call to exclude slow call time, got %s", records[1].Elapsed)
	}
}

// TestCollectAllServiceErrorNamesQuestion verifies service failures abort with the question id.
func TestCollectAllServiceErrorNamesQuestion(t *testing.T) {
	boom := errors.New("connection refused")
	answerer := service.AnswererFunc(func(ctx context.Context, text string) (service.Reply, error) {
		if text == "second" {
			return service.Reply{}, boom
		}
		return service.Reply{Answer: text}, nil
	})
	for _, workers := range []int{1, 4} {
		collector := &Collector{Answerer: answerer, Workers: workers}
		records, err := collector.CollectAll(testutil.Context(t, 0), questionsFor("first", "second", "third"))
		if err == nil {
			t.Fatalf("workers=%d: expected error", workers)
		}
		if records != nil {
			t.Fatalf("workers=%d: expected no records on failure", workers)
		}
		var questionErr *QuestionError
		if !errors.As(err, &questionErr) {
			t.Fatalf("workers=%d: expected QuestionError, got %T", workers, err)
		}
		if questionErr.QuestionID != "second" || questionErr.Index != 1 {
			t.Fatalf("workers=%d: unexpected question error %+v", workers, questionErr)
		}
		if !errors.Is(err, boom) {
			t.Fatalf("workers=%d: expected wrapped service error", workers)
		}
	}
}

// TestCollectAllTimeoutBecomesFailure verifies a hung call yields a timeout record instead of hanging.
func TestCollectAllTimeoutBecomesFailure(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	answerer := service.AnswererFunc(func(ctx context.Context, text string) (service.Reply, error) {
		if text == "hang" {
			<-release
		}
		return service.Reply{Answer: text, References: []service.Reference{{Locator: "/x"}}}, nil
	})
	collector := &Collector{Answerer: answerer, Timeout: 30 * time.Millisecond}
	records, err := collector.CollectAll(testutil.Context(t, 0), questionsFor("ok", "hang", "after"))
	if err != nil {
		t.Fatalf("collect all: %v", err)
	}
	if records[1].Failure != FailureTimeout || !records[1].TimedOut() {
		t.Fatalf("expected timeout failure, got %+v", records[1])
	}
	if records[1].Answer != "" || len(records[1].References) != 0 {
		t.Fatalf("expected empty timed-out record, got %+v", records[1])
	}
	if records[0].Failure != "" || records[2].Answer != "after" {
		t.Fatalf("unexpected sibling records: %+v", records)
	}
}

func TestCollectAllCancelledRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	collector := &Collector{Answerer: echoAnswerer(nil), Timeout: time.Second}
	_, err := collector.CollectAll(ctx, questionsFor("a"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	started  []int
	finished []int
}

func (o *recordingObserver) QuestionStarted(index int, _ question.Question) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, index)
}

func (o *recordingObserver) QuestionFinished(index int, _ question.Question, _ Record, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, index)
}

func TestCollectAllNotifiesObserver(t *testing.T) {
	observer := &recordingObserver{}
	collector := &Collector{Answerer: echoAnswerer(nil), Observer: observer}
	if _, err := collector.CollectAll(testutil.Context(t, 0), questionsFor("a", "b")); err != nil {
		t.Fatalf("collect all: %v", err)
	}
	if len(observer.started) != 2 || len(observer.finished) != 2 {
		t.Fatalf("unexpected observer calls: %+v", observer)
	}
}

func TestRoundSeconds(t *testing.T) {
	cases := map[time.Duration]float64{
		1234 * time.Millisecond: 1.23,
		1239 * time.Millisecond: 1.24,
		0:                       0,
		2 * time.Second:         2,
	}
	for input, want := range cases {
		if got := RoundSeconds(input); got != want {
			t.Fatalf("RoundSeconds(%s) = %v, want %v", input, got, want)
		}
	}
}
