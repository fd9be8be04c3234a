package publishingapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			require.NoError(t, json.Unmarshal(b, &rec.body))
		}
		calls = append(calls, rec)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New("", "token", time.Second)
	assert.EqualError(t, err, "publishing api url is required")
}

func TestPutContentAndPublish(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{}`)
	c, err := New(srv.URL+"/", "secret", time.Second, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.PutContent(ctx, "abc-123", map[string]string{"title": "History"}))
	require.NoError(t, c.Publish(ctx, "abc-123", "minor", "en"))

	require.Len(t, *calls, 2)
	put := (*calls)[0]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/v2/content/abc-123", put.path)
	assert.Equal(t, "Bearer secret", put.auth)
	assert.Equal(t, "History", put.body["title"])

	publish := (*calls)[1]
	assert.Equal(t, http.MethodPost, publish.method)
	assert.Equal(t, "/v2/content/abc-123/publish", publish.path)
	assert.Equal(t, map[string]any{"update_type": "minor", "locale": "en"}, publish.body)
}

func TestGetLinkables(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK,
		`[{"content_id":"c1","internal_name":"Oil and gas / Wells","publication_state":"draft","base_path":"/topic/oil-and-gas/wells","title":"Wells"}]`)
	c, err := New(srv.URL, "", time.Second)
	require.NoError(t, err)

	linkables, err := c.GetLinkables(context.Background(), "topic")
	require.NoError(t, err)
	require.Len(t, linkables, 1)
	assert.Equal(t, "Oil and gas / Wells", linkables[0].InternalName)
	assert.Equal(t, "draft", linkables[0].PublicationState)
	assert.Equal(t, "document_type=topic", (*calls)[0].query)
	assert.Empty(t, (*calls)[0].auth)
}

func TestErrorStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `not here`)
	c, err := New(srv.URL, "", time.Second)
	require.NoError(t, err)

	err = c.Publish(context.Background(), "missing", "minor", "en")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "returned 404: not here")
}
