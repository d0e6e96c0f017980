package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"landing-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "errors": verr.Errors})
	case errors.Is(err, services.ErrSectionNotFound), errors.Is(err, services.ErrMediaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidID), errors.Is(err, services.ErrInvalidDocument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMediaTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
