package emailsignup

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govpub/internal/content/models"
	"govpub/internal/content/store"
	"govpub/internal/platform/logger"
	"govpub/pkg/testutil"
)

type brokenFinder struct{}

func (brokenFinder) FindBySlug(context.Context, string) (*models.Organisation, error) {
	return nil, errors.New("connection refused")
}

func TestPath(t *testing.T) {
	ctx := context.Background()
	orgs := store.NewInMemoryOrganisationStore()
	require.NoError(t, orgs.Save(ctx, &models.Organisation{Name: "HM Treasury", Slug: "hm-treasury", HasEmailSignupPage: true}))
	require.NoError(t, orgs.Save(ctx, &models.Organisation{Name: "Cabinet Office", Slug: "cabinet-office"}))
	r := NewResolver(orgs)

	tests := []struct {
		name string
		feed string
		want string
	}{
		{
			name: "organisation with signup page",
			feed: "https://www.gov.uk/government/organisations/hm-treasury.atom",
			want: "/government/organisations/hm-treasury/email-signup",
		},
		{
			name: "organisation without signup page",
			feed: "https://www.gov.uk/government/organisations/cabinet-office.atom",
			want: "/email-signup/new?email_signup%5Bfeed%5D=https%3A%2F%2Fwww.gov.uk%2Fgovernment%2Forganisations%2Fcabinet-office.atom",
		},
		{
			name: "unknown organisation",
			feed: "https://www.gov.uk/government/organisations/nobody.atom",
			want: "/email-signup/new?email_signup%5Bfeed%5D=https%3A%2F%2Fwww.gov.uk%2Fgovernment%2Forganisations%2Fnobody.atom",
		},
		{
			name: "filtered feed",
			feed: "https://www.gov.uk/government/announcements.atom?topics[]=energy",
			want: "/email-signup/new?email_signup%5Bfeed%5D=https%3A%2F%2Fwww.gov.uk%2Fgovernment%2Fannouncements.atom%3Ftopics%5B%5D%3Denergy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Path(ctx, tt.feed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathStoreError(t *testing.T) {
	_, err := NewResolver(brokenFinder{}).Path(context.Background(), "https://www.gov.uk/government/organisations/hm-treasury.atom")
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	ctx := context.Background()
	orgs := store.NewInMemoryOrganisationStore()
	require.NoError(t, orgs.Save(ctx, &models.Organisation{Slug: "hm-treasury", HasEmailSignupPage: true}))
	r := chi.NewRouter()
	NewHandler(NewResolver(orgs), logger.Discard()).Register(r)

	t.Run("resolves feed", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/email-signup/link?feed="+url.QueryEscape("https://www.gov.uk/government/organisations/hm-treasury.atom"), nil)
		rr := testutil.DoRequest(r, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string]string](t, rr)
		assert.Equal(t, "/government/organisations/hm-treasury/email-signup", (*resp)["path"])
	})

	t.Run("missing feed", func(t *testing.T) {
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/email-signup/link", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}
