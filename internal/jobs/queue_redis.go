package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue is a FIFO list in Redis: LPUSH to enqueue, BRPOP to dequeue.
type RedisQueue struct {
	client redis.UniversalClient
	key    string
	poll   time.Duration
}

func NewRedisQueue(client redis.UniversalClient, key string, poll time.Duration) (*RedisQueue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if key == "" {
		return nil, errors.New("queue key is required")
	}
	return &RedisQueue{client: client, key: key, poll: poll}, nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, b).Err(); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	res, err := q.client.BRPop(ctx, q.poll, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Job{}, ErrEmpty
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Job{}, ctxErr
		}
		return Job{}, fmt.Errorf("dequeue job: %w", err)
	}
	// BRPOP returns [key, value].
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

// Len reports how many jobs are waiting.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
