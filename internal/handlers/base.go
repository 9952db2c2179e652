package handlers

import (
	"errors"
	"log"
	"net/http"

	"schoolhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer for user-submitted post and comment content.
var ugcPolicy = bluemonday.UGCPolicy()

// HandleServiceError translates service failures into the HTTP error
// taxonomy. Unknown errors become a generic 500 so internals never leak.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSameRole),
		errors.Is(err, services.ErrDuplicateLike):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrLikeNotFound),
		errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrInvalidRefresh),
		errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrVerificationPending),
		errors.Is(err, services.ErrVerificationExpired),
		errors.Is(err, services.ErrTokenNotFound),
		errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrSamePassword),
		errors.Is(err, services.ErrConfirmationMismatch),
		errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrMissingTarget),
		errors.Is(err, services.ErrAmbiguousTarget),
		errors.Is(err, services.ErrInvalidParent):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
	}
}

// BadRequest reports a malformed or missing input.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
