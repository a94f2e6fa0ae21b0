// Package scheduler composes a work queue and a dupe filter into the
// single entry point crawl workers drive: candidate requests go in, the
// next request to fetch comes out. All durable state lives in the shared
// store, so a scheduler session holds nothing a crashed worker would need
// to release.
package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/crawl-frontier/internal/frontier"
	"github.com/JakeFAU/crawl-frontier/internal/metrics"
	"github.com/JakeFAU/crawl-frontier/internal/queue"
)

// DupeFilter is the slice of the dupe filter the scheduler needs.
type DupeFilter interface {
	RequestSeen(ctx context.Context, req *frontier.Request) (bool, error)
	Clear(ctx context.Context) error
	Close(reason string)
}

// Scheduler binds one job identity to one queue and one dupe filter for
// the duration of a worker's run.
type Scheduler struct {
	job     string
	queue   queue.Queue
	filter  DupeFilter
	persist bool
	logger  *zap.Logger
}

// New constructs a Scheduler. With persist false, Open and Close wipe the
// job's queue and seen-set so every run starts fresh; with persist true
// both survive in the shared store across sessions.
func New(job string, q queue.Queue, filter DupeFilter, persist bool, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		job:     job,
		queue:   q,
		filter:  filter,
		persist: persist,
		logger:  logger.With(zap.String("job", job)),
	}
}

// Open prepares the session. Without persistence it clears both shared
// collections; with persistence it reports how much queued work the
// previous session left behind.
func (s *Scheduler) Open(ctx context.Context) error {
	if !s.persist {
		if err := s.queue.Clear(ctx); err != nil {
			return fmt.Errorf("clear queue: %w", err)
		}
		if err := s.filter.Clear(ctx); err != nil {
			return fmt.Errorf("clear dupe filter: %w", err)
		}
		return nil
	}
	n, err := s.queue.Len(ctx)
	if err != nil {
		return fmt.Errorf("queue length: %w", err)
	}
	if n > 0 {
		s.logger.Info(fmt.Sprintf("Resuming crawl (%d requests scheduled)", n),
			zap.Int64("requests_scheduled", n))
		metrics.ObserveResume(s.job, n)
	}
	return nil
}

// EnqueueRequest offers a candidate request. It returns false when the
// dupe filter rejected the request as already seen; that is an intentional
// drop, not an error. Requests with DontFilter set skip the filter.
func (s *Scheduler) EnqueueRequest(ctx context.Context, req *frontier.Request) (bool, error) {
	if !req.DontFilter {
		seen, err := s.filter.RequestSeen(ctx, req)
		if err != nil {
			return false, err
		}
		if seen {
			s.logger.Debug("request filtered", zap.String("url", req.URL))
			metrics.IncFiltered(s.job)
			return false, nil
		}
	}
	if err := s.queue.Push(ctx, req); err != nil {
		return false, err
	}
	metrics.IncEnqueued(s.job)
	return true, nil
}

// NextRequest pops the next request per the queue's strategy, or
// (nil, nil) when no work remains.
func (s *Scheduler) NextRequest(ctx context.Context) (*frontier.Request, error) {
	req, err := s.queue.Pop(ctx)
	if err != nil {
		return nil, err
	}
	if req != nil {
		metrics.IncPopped(s.job)
	}
	return req, nil
}

// HasPendingRequests reports whether any queued work remains.
func (s *Scheduler) HasPendingRequests(ctx context.Context) (bool, error) {
	n, err := s.queue.Len(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Len returns the number of queued requests.
func (s *Scheduler) Len(ctx context.Context) (int64, error) {
	return s.queue.Len(ctx)
}

// Clear wipes the job's queue regardless of the persistence policy.
func (s *Scheduler) Clear(ctx context.Context) error {
	return s.queue.Clear(ctx)
}

// Close ends the session. The dupe filter only releases local resources;
// queue contents are dropped unless persistence is enabled.
func (s *Scheduler) Close(ctx context.Context, reason string) error {
	s.filter.Close(reason)
	if s.persist {
		s.logger.Info("scheduler closed, queue persisted", zap.String("reason", reason))
		return nil
	}
	if err := s.queue.Clear(ctx); err != nil {
		return fmt.Errorf("clear queue: %w", err)
	}
	s.logger.Info("scheduler closed, queue cleared", zap.String("reason", reason))
	return nil
}
