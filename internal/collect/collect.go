package collect

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"qaeval/internal/question"
	"qaeval/internal/service"
)

// Collect asks the answerer one question exactly once and times the call.
//
// When ctx carries a deadline or can be cancelled, Collect stops waiting once
// ctx is done even if the answerer ignores it.
func Collect(ctx context.Context, item question.Question, answerer service.Answerer) (Record, error) {
	start := time.Now()
	reply, err := answer(ctx, answerer, item.Text)
	elapsed := time.Since(start)
	if err != nil {
		return Record{Elapsed: elapsed}, err
	}
	refs := make([]service.Reference, len(reply.References))
	copy(refs, reply.References)
	return Record{Answer: reply.Answer, References: refs, Elapsed: elapsed}, nil
}

type answerResult struct {
	reply service.Reply
	err   error
}

func answer(ctx context.Context, answerer service.Answerer, text string) (service.Reply, error) {
	if ctx.Done() == nil {
		return answerer.Answer(ctx, text)
	}
	resultCh := make(chan answerResult, 1)
	go func() {
		reply, err := answerer.Answer(ctx, text)
		resultCh <- answerResult{reply: reply, err: err}
	}()
	select {
	case result := <-resultCh:
		return result.reply, result.err
	case <-ctx.Done():
		return service.Reply{}, ctx.Err()
	}
}

// Observer receives per-question progress from a Collector.
type Observer interface {
	QuestionStarted(index int, item question.Question)
	QuestionFinished(index int, item question.Question, record Record, err error)
}

// Collector asks a list of questions and returns records in input order.
type Collector struct {
	Answerer service.Answerer
	// Workers above one enables concurrent calls.
	Workers int
	// Timeout bounds each call; zero disables it.
	Timeout  time.Duration
	Observer Observer
	Logger   *slog.Logger
}

// CollectAll collects every question. The first service error aborts the
// run and is returned as a *QuestionError.
func (c *Collector) CollectAll(ctx context.Context, questions []question.Question) ([]Record, error) {
	if c.Workers <= 1 {
		return c.collectSequential(ctx, questions)
	}
	return c.collectConcurrent(ctx, questions)
}

func (c *Collector) collectSequential(ctx context.Context, questions []question.Question) ([]Record, error) {
	records := make([]Record, 0, len(questions))
	for index, item := range questions {
		record, err := c.collectOne(ctx, index, item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Collector) collectConcurrent(ctx context.Context, questions []question.Question) ([]Record, error) {
	records := make([]Record, len(questions))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.Workers)
	for index, item := range questions {
		group.Go(func() error {
			record, err := c.collectOne(groupCtx, index, item)
			if err != nil {
				return err
			}
			records[index] = record
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Collector) collectOne(ctx context.Context, index int, item question.Question) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, &QuestionError{Index: index, QuestionID: item.ID, Err: err}
	}
	if c.Observer != nil {
		c.Observer.QuestionStarted(index, item)
	}
	callCtx := ctx
	cancel := func() {}
	if c.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, c.Timeout)
	}
	record, err := Collect(callCtx, item, c.Answerer)
	cancel()

	if err != nil && c.Timeout > 0 && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		record = Record{Elapsed: record.Elapsed, Failure: FailureTimeout}
		err = nil
		c.logger().Warn("question timed out", "index", index+1, "question_id", item.ID, "timeout", c.Timeout)
	}
	var questionErr error
	if err != nil {
		questionErr = &QuestionError{Index: index, QuestionID: item.ID, Err: err}
	}
	if c.Observer != nil {
		c.Observer.QuestionFinished(index, item, record, questionErr)
	}
	if questionErr != nil {
		return Record{}, questionErr
	}
	c.logger().Debug("question collected", "index", index+1, "question_id", item.ID,
		"references", len(record.References), "seconds", record.ElapsedSeconds())
	return record, nil
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
