package queue

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/crawl-frontier/internal/frontier"
	"github.com/JakeFAU/crawl-frontier/internal/store/memory"
)

func newQueue(t *testing.T, strategy string) Queue {
	t.Helper()
	q, err := New(strategy, memory.New(), "job:requests")
	require.NoError(t, err)
	return q
}

func TestNew_UnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := New("random", memory.New(), "job:requests")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown queue strategy")
}

func TestFIFOOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := newQueue(t, StrategyFIFO)

	req1 := frontier.NewRequest("http://example.com/page1")
	req2 := frontier.NewRequest("http://example.com/page2")
	require.NoError(t, q.Push(ctx, req1))
	require.NoError(t, q.Push(ctx, req2))

	out1, err := q.Pop(ctx)
	require.NoError(t, err)
	out2, err := q.Pop(ctx)
	require.NoError(t, err)

	assert.Equal(t, req1.URL, out1.URL)
	assert.Equal(t, req2.URL, out2.URL)
}

func TestLIFOOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := newQueue(t, StrategyLIFO)

	req1 := frontier.NewRequest("http://example.com/page1")
	req2 := frontier.NewRequest("http://example.com/page2")
	require.NoError(t, q.Push(ctx, req1))
	require.NoError(t, q.Push(ctx, req2))

	out1, err := q.Pop(ctx)
	require.NoError(t, err)
	out2, err := q.Pop(ctx)
	require.NoError(t, err)

	assert.Equal(t, req2.URL, out1.URL)
	assert.Equal(t, req1.URL, out2.URL)
}

func TestPriorityOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := newQueue(t, StrategyPriority)

	req1 := frontier.NewRequest("http://example.com/page1")
	req1.Priority = 100
	req2 := frontier.NewRequest("http://example.com/page2")
	req2.Priority = 50
	req3 := frontier.NewRequest("http://example.com/page3")
	req3.Priority = 200

	require.NoError(t, q.Push(ctx, req1))
	require.NoError(t, q.Push(ctx, req2))
	require.NoError(t, q.Push(ctx, req3))

	for _, want := range []*frontier.Request{req3, req1, req2} {
		out, err := q.Pop(ctx)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, want.URL, out.URL)
		assert.Equal(t, want.Priority, out.Priority)
	}
}

func TestPriorityCollapsesIdenticalPayloads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := newQueue(t, StrategyPriority)

	// Byte-identical requests share one sorted-set member, so pushing the
	// same request twice leaves a single entry. List strategies keep both.
	req := frontier.NewRequest("http://example.com/same")
	req.DontFilter = true
	require.NoError(t, q.Push(ctx, req))
	require.NoError(t, q.Push(ctx, req))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	fifo := newQueue(t, StrategyFIFO)
	require.NoError(t, fifo.Push(ctx, req))
	require.NoError(t, fifo.Push(ctx, req))
	n, err = fifo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestLenAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, strategy := range []string{StrategyFIFO, StrategyLIFO, StrategyPriority} {
		t.Run(strategy, func(t *testing.T) {
			t.Parallel()
			q := newQueue(t, strategy)

			n, err := q.Len(ctx)
			require.NoError(t, err)
			require.Zero(t, n)

			for i := range 10 {
				req := frontier.NewRequest(fmt.Sprintf("http://example.com/?page=%d", i))
				require.NoError(t, q.Push(ctx, req))
			}

			n, err = q.Len(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(10), n)

			require.NoError(t, q.Clear(ctx))

			n, err = q.Len(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestPopEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, strategy := range []string{StrategyFIFO, StrategyLIFO, StrategyPriority} {
		t.Run(strategy, func(t *testing.T) {
			t.Parallel()
			q := newQueue(t, strategy)

			out, err := q.Pop(ctx)
			require.NoError(t, err, "empty pop is not an error")
			assert.Nil(t, out)
		})
	}
}

func TestPopRoundTripsFullRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	q := newQueue(t, StrategyFIFO)

	req := &frontier.Request{
		Method:     "POST",
		URL:        "http://example.com/submit",
		Body:       []byte("payload"),
		Headers:    map[string][]string{"Accept": {"text/html"}},
		Priority:   750,
		DontFilter: true,
	}
	require.NoError(t, q.Push(ctx, req))

	out, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, req, out)
}
