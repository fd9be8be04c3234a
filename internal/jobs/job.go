// Package jobs queues background work and runs it in a worker loop.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind names the handler a job is dispatched to.
type Kind string

const (
	KindPublishingAPIEdition Kind = "publishing_api_edition"
	KindDeliverMail          Kind = "deliver_mail"
)

// Job is one unit of queued work.
type Job struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	EditionID  int64           `json:"edition_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// ErrEmpty is returned by Dequeue when no job arrived before the poll timeout.
var ErrEmpty = errors.New("queue is empty")

// Queue stores jobs until a worker takes them.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks for up to the queue's poll interval and returns ErrEmpty
	// if nothing arrived.
	Dequeue(ctx context.Context) (Job, error)
}

// NewEditionJob builds a publishing_api_edition job.
func NewEditionJob(editionID int64, now time.Time) Job {
	return Job{ID: uuid.NewString(), Kind: KindPublishingAPIEdition, EditionID: editionID, EnqueuedAt: now}
}

// NewPayloadJob builds a job carrying payload marshalled as JSON.
func NewPayloadJob(kind Kind, payload any, now time.Time) (Job, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Job{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return Job{ID: uuid.NewString(), Kind: kind, Payload: b, EnqueuedAt: now}, nil
}
