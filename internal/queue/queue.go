// Package queue implements the three work-queue strategies the scheduler
// can drive: FIFO, LIFO, and priority. All of them are thin protocols over
// one named collection in the shared store, so any number of workers can
// push and pop concurrently without ever receiving the same item twice.
//
// Deduplication is not this package's job; the dupe filter runs before
// Push. The priority strategy does collapse byte-identical serialized
// requests into a single entry (a sorted set holds unique members), which
// acts as a secondary storage-level dedup even for requests that bypass
// the filter. Callers that need identical retries to coexist must vary
// the payload.
package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/JakeFAU/crawl-frontier/internal/frontier"
	"github.com/JakeFAU/crawl-frontier/internal/store"
)

// Strategy names accepted by New.
const (
	StrategyFIFO     = "fifo"
	StrategyLIFO     = "lifo"
	StrategyPriority = "priority"
)

// Queue is the contract the scheduler programs against. Pop returns
// (nil, nil) when the queue is empty; errors are reserved for store and
// decode failures.
type Queue interface {
	Push(ctx context.Context, req *frontier.Request) error
	Pop(ctx context.Context) (*frontier.Request, error)
	Len(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

// New returns the queue for the named strategy over the given collection
// key. Unknown strategies fail here, not on the first pop.
func New(strategy string, st store.Store, key string) (Queue, error) {
	switch strategy {
	case StrategyFIFO:
		return &listQueue{store: st, key: key, popHead: true}, nil
	case StrategyLIFO:
		return &listQueue{store: st, key: key, popHead: false}, nil
	case StrategyPriority:
		return &priorityQueue{store: st, key: key}, nil
	default:
		return nil, fmt.Errorf("unknown queue strategy %q", strategy)
	}
}

// listQueue covers both list-backed strategies: pushes always append to
// the tail, FIFO pops the head and LIFO pops the tail.
type listQueue struct {
	store   store.Store
	key     string
	popHead bool
}

func (q *listQueue) Push(ctx context.Context, req *frontier.Request) error {
	data, err := req.Encode()
	if err != nil {
		return err
	}
	return q.store.ListPushTail(ctx, q.key, data)
}

func (q *listQueue) Pop(ctx context.Context) (*frontier.Request, error) {
	var (
		data []byte
		err  error
	)
	if q.popHead {
		data, err = q.store.ListPopHead(ctx, q.key)
	} else {
		data, err = q.store.ListPopTail(ctx, q.key)
	}
	if err != nil {
		if errors.Is(err, store.ErrNoEntry) {
			return nil, nil
		}
		return nil, err
	}
	return frontier.DecodeRequest(data)
}

func (q *listQueue) Len(ctx context.Context) (int64, error) {
	return q.store.ListLen(ctx, q.key)
}

func (q *listQueue) Clear(ctx context.Context) error {
	return q.store.Delete(ctx, q.key)
}

// priorityQueue stores serialized requests in a sorted set scored by
// priority. Pop takes the highest score; ties are store-ordered, so equal
// priorities carry no FIFO guarantee.
type priorityQueue struct {
	store store.Store
	key   string
}

func (q *priorityQueue) Push(ctx context.Context, req *frontier.Request) error {
	data, err := req.Encode()
	if err != nil {
		return err
	}
	return q.store.SortedAdd(ctx, q.key, float64(req.Priority), data)
}

func (q *priorityQueue) Pop(ctx context.Context) (*frontier.Request, error) {
	data, err := q.store.SortedPopMax(ctx, q.key)
	if err != nil {
		if errors.Is(err, store.ErrNoEntry) {
			return nil, nil
		}
		return nil, err
	}
	return frontier.DecodeRequest(data)
}

func (q *priorityQueue) Len(ctx context.Context) (int64, error) {
	return q.store.SortedLen(ctx, q.key)
}

func (q *priorityQueue) Clear(ctx context.Context) error {
	return q.store.Delete(ctx, q.key)
}
