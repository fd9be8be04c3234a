package newsarticletype

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govpub/pkg/platform/sentinel"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "news-stories", NewsStory.Slug())
	assert.Equal(t, "press-releases", PressRelease.Slug())
	assert.Equal(t, "imported-awaiting-type", ImportedAwaitingType.Slug())
}

func TestFind(t *testing.T) {
	typ, err := Find(2)
	require.NoError(t, err)
	assert.Same(t, PressRelease, typ)

	_, err = Find(4)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	typ, err = FindByKey("imported")
	require.NoError(t, err)
	assert.Same(t, ImportedAwaitingType, typ)

	assert.Same(t, GovernmentResponse, FindBySlug("government-responses"))
	assert.Nil(t, FindBySlug("speeches"))
}

func TestAllSlugs(t *testing.T) {
	assert.Equal(t,
		"news-stories, press-releases, government-responses, announcements and imported-awaiting-type",
		AllSlugs())
}

func TestPrevalence(t *testing.T) {
	assert.Equal(t, []*Type{NewsStory, PressRelease, GovernmentResponse}, Primary())
	assert.Equal(t, []*Type{Unknown, ImportedAwaitingType}, Migration())
	assert.Equal(t, All(), OrderedByPrevalence())
	assert.Len(t, ByPrevalence(), 2)
}

func TestSearchFormatTypes(t *testing.T) {
	assert.Equal(t, []string{"news-article-news-story"}, NewsStory.SearchFormatTypes())
	assert.Equal(t, []string{"news-article-imported"}, ImportedAwaitingType.SearchFormatTypes())
	assert.Equal(t, "news_article", Unknown.GenusKey())
}

func TestFormatAdviceJSON(t *testing.T) {
	var advice map[string]string
	require.NoError(t, json.Unmarshal([]byte(FormatAdviceJSON()), &advice))
	assert.Len(t, advice, 5)
	assert.Contains(t, advice["999"], "legacy category")
	assert.Contains(t, advice["1"], "News written exclusively for GOV.UK")
}
