package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"govpub/internal/platform/logger"
)

func TestMemoryQueueFIFO(t *testing.T) {
	q := NewMemoryQueue(4, 10*time.Millisecond)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, q.Enqueue(ctx, NewEditionJob(1, now)))
	require.NoError(t, q.Enqueue(ctx, NewEditionJob(2, now)))
	assert.Equal(t, 2, q.Len())

	first, err := q.Dequeue(ctx)
	require.NoError(t, err)
	second, err := q.Dequeue(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.EditionID)
	assert.Equal(t, int64(2), second.EditionID)
	assert.Equal(t, KindPublishingAPIEdition, first.Kind)
	assert.NotEmpty(t, first.ID)
}

func TestMemoryQueueEmpty(t *testing.T) {
	q := NewMemoryQueue(1, time.Millisecond)

	_, err := q.Dequeue(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMemoryQueueDrain(t *testing.T) {
	q := NewMemoryQueue(4, time.Millisecond)
	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, q.Enqueue(ctx, NewEditionJob(i, time.Now())))
	}

	drained := q.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, int64(3), drained[2].EditionID)
	assert.Zero(t, q.Len())
}

func TestNewPayloadJob(t *testing.T) {
	job, err := NewPayloadJob(KindDeliverMail, map[string]string{"to": "a@example.com"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, KindDeliverMail, job.Kind)
	assert.JSONEq(t, `{"to":"a@example.com"}`, string(job.Payload))
}

func TestNewRedisQueueValidation(t *testing.T) {
	_, err := NewRedisQueue(nil, "k", time.Second)
	assert.ErrorContains(t, err, "redis client is required")
}

type WorkerSuite struct {
	suite.Suite
	queue   *MemoryQueue
	reg     *prometheus.Registry
	metrics *Metrics
	worker  *Worker
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.queue = NewMemoryQueue(8, 5*time.Millisecond)
	s.reg = prometheus.NewRegistry()
	s.metrics = NewMetrics(s.reg)
	w, err := NewWorker(s.queue, WithLogger(logger.Discard()), WithMetrics(s.metrics))
	s.Require().NoError(err)
	s.worker = w
}

func (s *WorkerSuite) TestRequiresQueue() {
	_, err := NewWorker(nil)
	s.Require().ErrorContains(err, "queue is required")
}

func (s *WorkerSuite) TestProcessDispatchesByKind() {
	var got []int64
	s.worker.Handle(KindPublishingAPIEdition, func(_ context.Context, job Job) error {
		got = append(got, job.EditionID)
		return nil
	})

	s.Require().NoError(s.worker.Process(context.Background(), NewEditionJob(7, time.Now())))

	s.Equal([]int64{7}, got)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Processed.WithLabelValues("publishing_api_edition", "ok")))
}

func (s *WorkerSuite) TestProcessUnknownKind() {
	err := s.worker.Process(context.Background(), Job{ID: "x", Kind: "nope"})

	s.Require().ErrorContains(err, `no handler for job kind "nope"`)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Processed.WithLabelValues("nope", "unknown")))
}

func (s *WorkerSuite) TestProcessHandlerError() {
	s.worker.Handle(KindDeliverMail, func(context.Context, Job) error {
		return errors.New("smtp down")
	})

	err := s.worker.Process(context.Background(), Job{ID: "m", Kind: KindDeliverMail})

	s.Require().ErrorContains(err, "smtp down")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Processed.WithLabelValues("deliver_mail", "failed")))
}

func (s *WorkerSuite) TestRunDrainsQueueUntilCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []int64
	done := make(chan struct{})
	s.worker.Handle(KindPublishingAPIEdition, func(_ context.Context, job Job) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, job.EditionID)
		if len(seen) == 2 {
			close(done)
		}
		return nil
	})

	s.Require().NoError(s.queue.Enqueue(ctx, NewEditionJob(1, time.Now())))
	s.Require().NoError(s.queue.Enqueue(ctx, NewEditionJob(2, time.Now())))

	errCh := make(chan error, 1)
	go func() { errCh <- s.worker.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("worker did not process jobs")
	}
	cancel()

	select {
	case err := <-errCh:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.FailNow("worker did not stop")
	}
	mu.Lock()
	defer mu.Unlock()
	s.Equal([]int64{1, 2}, seen)
}

func (s *WorkerSuite) TestRunUntilStopsOnceQueueIsEmpty() {
	ctx := context.Background()
	var seen []int64
	s.worker.Handle(KindPublishingAPIEdition, func(_ context.Context, job Job) error {
		seen = append(seen, job.EditionID)
		if job.EditionID == 2 {
			return errors.New("publishing api unavailable")
		}
		return nil
	})
	for i := int64(1); i <= 3; i++ {
		s.Require().NoError(s.queue.Enqueue(ctx, NewEditionJob(i, time.Now())))
	}
	done := make(chan struct{})
	close(done)

	err := s.worker.RunUntil(ctx, done)

	s.Require().EqualError(err, "1 of 3 jobs failed")
	s.Equal([]int64{1, 2, 3}, seen)
	s.Zero(s.queue.Len())
}

type brokenQueue struct {
	mu    sync.Mutex
	calls int
}

func (q *brokenQueue) Enqueue(context.Context, Job) error { return nil }

func (q *brokenQueue) Dequeue(context.Context) (Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
	return Job{}, errors.New("connection reset")
}

func TestRunBacksOffAfterDequeueErrors(t *testing.T) {
	q := &brokenQueue{}
	w, err := NewWorker(q, WithLogger(logger.Discard()), WithBackoff(50*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.NoError(t, w.Run(ctx))

	assert.Less(t, time.Since(start), time.Second)
	q.mu.Lock()
	defer q.mu.Unlock()
	assert.LessOrEqual(t, q.calls, 4)
	assert.GreaterOrEqual(t, q.calls, 2)
}
