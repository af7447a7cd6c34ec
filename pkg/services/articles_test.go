package services

import (
	"os"
	"path/filepath"
	"testing"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndLoadArticle(t *testing.T) {
	repo := setupRepo(t)

	created, err := CreateArticle("hello-world", "Hello World")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, created.Status)
	assert.FileExists(t, filepath.Join(repo, "content", "hello-world.md"))

	loaded, err := LoadArticle("hello-world")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", loaded.Title)
	assert.Equal(t, "yaml", loaded.Format)
	assert.Equal(t, blocks.New().Blocks(), loaded.Content.Blocks())
	assert.Contains(t, loaded.Extra, "lastmod")

	_, err = CreateArticle("hello-world", "Again")
	assert.ErrorIs(t, err, ErrExists)
}

func TestCreateArticleRejectsBadSlug(t *testing.T) {
	setupRepo(t)

	for _, slug := range []string{"../escape", "/abs", "Upper", ""} {
		_, err := CreateArticle(slug, "Title")
		assert.ErrorIs(t, err, ErrInvalidSlug, slug)
	}
}

func TestSaveArticleValidates(t *testing.T) {
	setupRepo(t)

	cases := map[string]models.Article{
		"missing title": {Slug: "a", Content: blocks.New()},
		"bad status":    {Slug: "a", Title: "A", Status: "archived", Content: blocks.New()},
		"bad format":    {Slug: "a", Title: "A", Format: "xml", Content: blocks.New()},
		"empty topic":   {Slug: "a", Title: "A", Topics: []string{""}, Content: blocks.New()},
		"bad image":     {Slug: "a", Title: "A", FeaturedImage: "not a url", Content: blocks.New()},
	}
	for name, art := range cases {
		art := art
		err := SaveArticle(&art)
		assert.ErrorIs(t, err, ErrInvalidArticle, name)
	}

	_, err := LoadArticle("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListArticlesIsCachedUntilWrite(t *testing.T) {
	setupRepo(t)

	list, err := ListArticles()
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = CreateArticle("b-post", "B")
	require.NoError(t, err)
	_, err = CreateArticle("notes/a-post", "A")
	require.NoError(t, err)

	list, err = ListArticles()
	require.NoError(t, err)
	assert.Equal(t, []models.ArticleSummary{
		{Slug: "b-post", Title: "B", Status: models.StatusDraft},
		{Slug: "notes/a-post", Title: "A", Status: models.StatusDraft},
	}, list)

	require.NoError(t, DeleteArticle("b-post"))
	list, err = ListArticles()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "notes/a-post", list[0].Slug)
}

func TestDeleteArticle(t *testing.T) {
	setupRepo(t)

	assert.ErrorIs(t, DeleteArticle("missing"), ErrNotFound)
	assert.ErrorIs(t, DeleteArticle("../x"), ErrInvalidSlug)
}

func TestLoadArticleRejectsCorruptBlocks(t *testing.T) {
	repo := setupRepo(t)
	dir := filepath.Join(repo, "content")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "---\ntitle: Bad\nblocks:\n  - serial: 1\n    style: gallery\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte(content), 0644))

	_, err := LoadArticle("bad")
	assert.ErrorIs(t, err, blocks.ErrUnknownStyle)
}
