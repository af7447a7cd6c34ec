package handlers

import (
	"net/http"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/models"
	"reko-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func accessToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get("access_token").(string)
	return token
}

func HandleSync(c *gin.Context) {
	log, err := services.SyncRepo(accessToken(c))
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func ListArticles(c *gin.Context) {
	articles, err := services.ListArticles()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch articles"})
		return
	}
	if articles == nil {
		articles = []models.ArticleSummary{}
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	art, err := services.LoadArticle(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, art)
}

func GetArticleMarkdown(c *gin.Context) {
	art, err := services.LoadArticle(c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(blocks.RenderMarkdown(art.Content)))
}

func CreateArticle(c *gin.Context) {
	var req struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	art, err := services.CreateArticle(req.Slug, req.Title)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, art)
}

// UpdateArticle replaces an article with the posted one. The slug in the
// path wins over the body.
func UpdateArticle(c *gin.Context) {
	var art models.Article
	if err := c.ShouldBindJSON(&art); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			c.JSON(400, gin.H{"error": "Invalid JSON"})
			return
		}
		abortWithError(c, err)
		return
	}
	art.Slug = c.Param("slug")

	if err := services.SaveArticle(&art); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "saved", "article": art})
}

func DeleteArticle(c *gin.Context) {
	if err := services.DeleteArticle(c.Param("slug")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}

// ImportMarkdown converts a Markdown body to blocks without saving anything.
func ImportMarkdown(c *gin.Context) {
	var req struct {
		Markdown string `json:"markdown"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}
	doc, err := blocks.ParseMarkdown([]byte(req.Markdown))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": doc})
}

func GetStyles(c *gin.Context) {
	c.JSON(http.StatusOK, blocks.Styles())
}
