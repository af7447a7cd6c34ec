package handlers

import (
	"net/http"

	"reko-cms/pkg/models"
	"reko-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

func OpenEditor(c *gin.Context) {
	var req models.OpenEditorRequest
	if c.Request.ContentLength != 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "Invalid JSON"})
			return
		}
	}
	state, err := services.OpenSession(req.Slug)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func GetEditor(c *gin.Context) {
	state, err := services.SessionState(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ApplyEditorOp applies one UI event and answers with the state to render.
func ApplyEditorOp(c *gin.Context) {
	var op models.EditorOp
	if err := c.BindJSON(&op); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}
	state, err := services.ApplyOp(c.Param("id"), op)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func SaveEditor(c *gin.Context) {
	var req models.SaveEditorRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}
	art, err := services.SaveSession(c.Param("id"), req, models.StatusDraft)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "saved", "article": art})
}

func PublishEditor(c *gin.Context) {
	var req models.SaveEditorRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}
	art, log, err := services.PublishSession(c.Param("id"), req, accessToken(c))
	if err != nil {
		if art != nil {
			// Saved, but the push failed.
			c.JSON(502, gin.H{"status": "error", "article": art, "log": log})
			return
		}
		abortWithError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "published", "article": art, "log": log})
}

func EditorDiff(c *gin.Context) {
	diff, err := services.SessionDiff(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	diffType := "none"
	if diff != "" {
		diffType = "unsaved"
	}
	c.JSON(200, gin.H{"diff": diff, "type": diffType})
}

func CloseEditor(c *gin.Context) {
	if err := services.CloseSession(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "closed"})
}
