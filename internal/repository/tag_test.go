package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ublog-dev/ublog/internal/models"
)

func TestSaveTagsSkipsLongNames(t *testing.T) {
	r := testRepo(t)
	u := mustCreateUser(t, r, "alice@example.com", "Alice", true, true)
	a := mustCreateArticle(t, r, u.ID, "post", true, time.Now().UTC())

	long := "toolongtagnamethatexceedstwentyfivechars"
	notification, err := r.SaveTags(a.ID, []string{" a ", long, "b", " ", ""})
	require.NoError(t, err)

	assert.Contains(t, notification, long)
	assert.Contains(t, notification, "skipped")

	tags, err := r.TagsByArticle(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tags)
}

func TestSaveTagsReusesExisting(t *testing.T) {
	r := testRepo(t)
	u := mustCreateUser(t, r, "alice@example.com", "Alice", true, true)
	first := mustCreateArticle(t, r, u.ID, "first", true, time.Now().UTC())
	second := mustCreateArticle(t, r, u.ID, "second", true, time.Now().UTC())

	_, err := r.SaveTags(first.ID, []string{"go", "web"})
	require.NoError(t, err)
	_, err = r.SaveTags(second.ID, []string{"go"})
	require.NoError(t, err)
	// Saving the same name twice must not duplicate the link.
	_, err = r.SaveTags(second.ID, []string{"go"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, count(t, r, &models.Tag{}))
	assert.EqualValues(t, 3, count(t, r, &models.ArticleTag{}))
}

func TestClearArticleTags(t *testing.T) {
	r := testRepo(t)
	u := mustCreateUser(t, r, "alice@example.com", "Alice", true, true)
	a := mustCreateArticle(t, r, u.ID, "post", true, time.Now().UTC())

	_, err := r.SaveTags(a.ID, []string{"go", "web"})
	require.NoError(t, err)
	require.NoError(t, r.ClearArticleTags(a.ID))

	tags, err := r.TagsByArticle(a.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	// Unlinked tags stay behind for reuse.
	assert.EqualValues(t, 2, count(t, r, &models.Tag{}))
}

func TestTagCloudCountsPublicOnly(t *testing.T) {
	r := testRepo(t)
	u := mustCreateUser(t, r, "alice@example.com", "Alice", true, true)

	now := time.Now().UTC()
	one := mustCreateArticle(t, r, u.ID, "one", true, now)
	two := mustCreateArticle(t, r, u.ID, "two", true, now)
	draft := mustCreateArticle(t, r, u.ID, "draft", false, now)

	for _, pair := range []struct {
		articleID uint
		tags      []string
	}{
		{one.ID, []string{"go", "web"}},
		{two.ID, []string{"go"}},
		{draft.ID, []string{"go", "secret"}},
	} {
		_, err := r.SaveTags(pair.articleID, pair.tags)
		require.NoError(t, err)
	}

	cloud, err := r.TagCloud()
	require.NoError(t, err)
	require.Len(t, cloud, 2)
	// Most used first; the draft's tags do not count.
	assert.Equal(t, "go", cloud[0].Name)
	assert.Equal(t, 2, cloud[0].Count)
	assert.Equal(t, "web", cloud[1].Name)
	assert.Equal(t, 1, cloud[1].Count)
}

func TestArticlesByTag(t *testing.T) {
	r := testRepo(t)
	u := mustCreateUser(t, r, "alice@example.com", "Alice", true, true)

	now := time.Now().UTC()
	tagged := mustCreateArticle(t, r, u.ID, "tagged", true, now)
	mustCreateArticle(t, r, u.ID, "other", true, now)

	_, err := r.SaveTags(tagged.ID, []string{"go"})
	require.NoError(t, err)

	articles, err := r.ArticlesByTag("go")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, tagged.ID, articles[0].ID)

	none, err := r.ArticlesByTag("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
