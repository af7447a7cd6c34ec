package services

import (
	"testing"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRoundTripFormats(t *testing.T) {
	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			art := &models.Article{
				Slug:          "post",
				Title:         "A Post",
				Status:        models.StatusPublished,
				CategoryID:    "7",
				Topics:        []string{"go", "cms"},
				FeaturedImage: "/img/cover.png",
				Content:       sampleBlocks(t),
				Format:        format,
				Extra:         map[string]interface{}{"author": "ann"},
			}
			data, err := EncodeArticle(art)
			require.NoError(t, err)

			got, err := DecodeArticle("post", data)
			require.NoError(t, err)
			assert.Equal(t, art.Title, got.Title)
			assert.Equal(t, art.Status, got.Status)
			assert.Equal(t, art.CategoryID, got.CategoryID)
			assert.Equal(t, art.Topics, got.Topics)
			assert.Equal(t, art.FeaturedImage, got.FeaturedImage)
			assert.Equal(t, format, got.Format)
			assert.Equal(t, "ann", got.Extra["author"])
			assert.NotContains(t, got.Extra, "draft")
			assert.Equal(t, art.Content.Blocks(), got.Content.Blocks())
		})
	}
}

func TestEncodeArticleWritesMarkdownBody(t *testing.T) {
	data, err := EncodeArticle(&models.Article{
		Title:   "A Post",
		Status:  models.StatusDraft,
		Content: sampleBlocks(t),
	})
	require.NoError(t, err)

	fm, body, format, err := ParseFrontMatter(data)
	require.NoError(t, err)
	assert.Equal(t, "yaml", format)
	assert.Equal(t, true, fm["draft"])
	assert.Equal(t, "## Intro\n\nHello there.\n\n- one\n- two", body)
}

func TestDecodeLegacyHugoArticle(t *testing.T) {
	content := []byte("---\ntitle: Old Post\ndraft: false\ndate: 2024-01-02\n---\n\n# Heading\n\nBody text.\n")

	art, err := DecodeArticle("old", content)
	require.NoError(t, err)
	assert.Equal(t, "Old Post", art.Title)
	assert.Equal(t, models.StatusPublished, art.Status)
	assert.Contains(t, art.Extra, "date")
	assert.Equal(t, []blocks.Block{
		{Serial: 1, Style: blocks.H1, Content: "Heading"},
		{Serial: 2, Style: blocks.Text, Content: "Body text."},
	}, art.Content.Blocks())
}

func TestDecodeRejectsUnknownStyle(t *testing.T) {
	content := []byte("---\ntitle: Future\nblocks:\n  - serial: 1\n    style: table\n    content: x\n---\n")

	_, err := DecodeArticle("future", content)
	assert.ErrorIs(t, err, ErrInvalidArticle)
	assert.ErrorIs(t, err, blocks.ErrUnknownStyle)
}

func TestDecodeWithoutBodyOrBlocks(t *testing.T) {
	art, err := DecodeArticle("empty", []byte("+++\ntitle = \"Empty\"\n+++\n"))
	require.NoError(t, err)
	assert.Equal(t, "toml", art.Format)
	assert.Equal(t, models.StatusDraft, art.Status)
	assert.Equal(t, blocks.New().Blocks(), art.Content.Blocks())
}

func TestParseFrontMatterUnknownFormat(t *testing.T) {
	_, _, _, err := ParseFrontMatter([]byte("just text"))
	assert.Error(t, err)

	_, err = DecodeArticle("x", []byte("just text"))
	assert.ErrorIs(t, err, ErrInvalidArticle)
}

func TestConstructFileContentUnsupportedFormat(t *testing.T) {
	_, err := ConstructFileContent(map[string]interface{}{}, "", "xml")
	assert.Error(t, err)
}
