package jobs

import (
	"context"
	"time"
)

// MemoryQueue is a buffered in-process queue for local runs and tests.
type MemoryQueue struct {
	jobs chan Job
	poll time.Duration
}

func NewMemoryQueue(capacity int, poll time.Duration) *MemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryQueue{jobs: make(chan Job, capacity), poll: poll}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	timer := time.NewTimer(q.poll)
	defer timer.Stop()
	select {
	case job := <-q.jobs:
		return job, nil
	case <-timer.C:
		return Job{}, ErrEmpty
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

// Len reports how many jobs are waiting.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// Drain removes and returns every waiting job without blocking.
func (q *MemoryQueue) Drain() []Job {
	var out []Job
	for {
		select {
		case job := <-q.jobs:
			out = append(out, job)
		default:
			return out
		}
	}
}
