package publishingapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	"govpub/internal/jobs"
	"govpub/internal/platform/logger"
)

func TestPresentEdition(t *testing.T) {
	published := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	e := &models.Edition{
		ID:          4,
		Type:        models.TypeCaseStudy,
		Title:       "Bridges",
		Summary:     "How bridges were built",
		Body:        "Body text",
		Slug:        "bridges",
		PublishedAt: &published,
	}

	got := PresentEdition(e, "whitehall")

	assert.Equal(t, "/government/case-studies/bridges", got.BasePath)
	assert.Equal(t, "case_study", got.DocumentType)
	assert.Equal(t, "case_study", got.SchemaName)
	assert.Equal(t, "How bridges were built", got.Description)
	assert.Equal(t, "en", got.Locale)
	assert.Equal(t, "whitehall", got.PublishingApp)
	assert.Equal(t, []Route{{Path: "/government/case-studies/bridges", Type: "exact"}}, got.Routes)
	assert.Equal(t, &published, got.PublicUpdatedAt)
	assert.Equal(t, "Body text", got.Details["body"])
}

func TestEditionSyncHandleJob(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{}`)
	client, err := New(srv.URL, "", time.Second, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	editions := store.NewInMemoryEditionStore()
	ctx := context.Background()
	contentID := uuid.New()
	require.NoError(t, editions.Save(ctx, &models.Edition{
		ID: 1, ContentID: contentID, Type: models.TypeSpeech, Title: "Speech", Slug: "speech", State: models.StatePublished,
	}))
	require.NoError(t, editions.Save(ctx, &models.Edition{
		ID: 2, ContentID: uuid.New(), Type: models.TypeSpeech, Title: "Draft", Slug: "draft", State: models.StateDraft,
	}))

	sync, err := NewEditionSync(editions, client, "whitehall", logger.Discard())
	require.NoError(t, err)

	require.NoError(t, sync.HandleJob(ctx, jobs.NewEditionJob(1, time.Now())))
	require.Len(t, *calls, 2)
	assert.Equal(t, "/v2/content/"+contentID.String(), (*calls)[0].path)
	assert.Equal(t, "speech", (*calls)[0].body["document_type"])
	assert.Equal(t, "/v2/content/"+contentID.String()+"/publish", (*calls)[1].path)
	assert.Equal(t, "major", (*calls)[1].body["update_type"])

	require.NoError(t, sync.HandleJob(ctx, jobs.NewEditionJob(2, time.Now())))
	assert.Len(t, *calls, 3, "drafts are only put")

	err = sync.HandleJob(ctx, jobs.NewEditionJob(99, time.Now()))
	assert.ErrorContains(t, err, "load edition 99")
}

func TestNewEditionSyncValidation(t *testing.T) {
	_, err := NewEditionSync(nil, nil, "", nil)
	assert.EqualError(t, err, "edition store is required")
}
