package topics_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"govpub/internal/platform/logger"
	"govpub/internal/topics"
	"govpub/pkg/testutil"
)

type listerFunc func(ctx context.Context) ([]topics.Group, error)

func (f listerFunc) Topics(ctx context.Context) ([]topics.Group, error) { return f(ctx) }

func TestHandlerList(t *testing.T) {
	route := func(l topics.Lister) chi.Router {
		r := chi.NewRouter()
		topics.NewHandler(l, logger.Discard()).Register(r)
		return r
	}

	t.Run("groups", func(t *testing.T) {
		r := route(listerFunc(func(context.Context) ([]topics.Group, error) {
			return []topics.Group{{Parent: "Oil and gas", Options: []topics.Option{{Title: "Oil and gas: Fields", ContentID: "abc"}}}}, nil
		}))
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/admin/linkable-topics", nil))

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string][]topics.Group](t, rr)
		assert.Equal(t, "Oil and gas", (*resp)["topics"][0].Parent)
		assert.Equal(t, "abc", (*resp)["topics"][0].Options[0].ContentID)
	})

	t.Run("empty list encodes as array", func(t *testing.T) {
		r := route(listerFunc(func(context.Context) ([]topics.Group, error) { return nil, nil }))
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/admin/linkable-topics", nil))
		assert.JSONEq(t, `{"topics":[]}`, rr.Body.String())
	})

	t.Run("source failure", func(t *testing.T) {
		r := route(listerFunc(func(context.Context) ([]topics.Group, error) { return nil, errors.New("boom") }))
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/admin/linkable-topics", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	})
}
