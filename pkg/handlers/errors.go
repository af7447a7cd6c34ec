package handlers

import (
	"errors"
	"net/http"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrInvalidOp),
		errors.Is(err, blocks.ErrUnknownStyle):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidArticle):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
