package casestudies

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	"govpub/internal/jobs"
	"govpub/internal/platform/logger"
)

func TestPusherQueuesLatestCaseStudies(t *testing.T) {
	ctx := context.Background()
	editions := store.NewInMemoryEditionStore()
	for _, e := range []*models.Edition{
		{ID: 1, DocumentID: 1, Type: models.TypeCaseStudy, Title: "Old", State: models.StateSuperseded},
		{ID: 2, DocumentID: 1, Type: models.TypeCaseStudy, Title: "New", State: models.StatePublished},
		{ID: 3, DocumentID: 3, Type: models.TypeCaseStudy, Title: "Other", State: models.StateDraft},
		{ID: 4, DocumentID: 4, Type: models.TypeSpeech, Title: "Speech", State: models.StatePublished},
	} {
		require.NoError(t, editions.Save(ctx, e))
	}
	queue := jobs.NewMemoryQueue(8, time.Millisecond)
	var out bytes.Buffer

	p, err := NewPusher(editions, queue, &out, logger.Discard())
	require.NoError(t, err)

	n, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "Pushing case studies to publishing API\n..\n2 case studies queued for pushing to the publishing API\n", out.String())

	var ids []int64
	for _, j := range queue.Drain() {
		assert.Equal(t, jobs.KindPublishingAPIEdition, j.Kind)
		ids = append(ids, j.EditionID)
	}
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestPusherWithNoCaseStudies(t *testing.T) {
	var out bytes.Buffer
	p, err := NewPusher(store.NewInMemoryEditionStore(), jobs.NewMemoryQueue(1, time.Millisecond), &out, nil)
	require.NoError(t, err)

	n, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "Pushing case studies to publishing API\n\n0 case studies queued for pushing to the publishing API\n", out.String())
}

func TestNewPusherValidation(t *testing.T) {
	_, err := NewPusher(nil, nil, nil, nil)
	assert.EqualError(t, err, "edition store is required")
}
