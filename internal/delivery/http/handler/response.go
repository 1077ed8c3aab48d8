package handler

import (
	"errors"
	"net/http"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrRoommateProfileNotFound),
		errors.Is(err, domain.ErrBadgeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicateHandle):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCannotMessageSelf):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// currentUserID reads the user id the auth middleware stored.
func currentUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return userID.(int), true
}

// viewerID returns the authenticated user id as a pointer, or nil for
// anonymous requests on optionally-authenticated routes.
func viewerID(c *gin.Context) *int {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id := userID.(int)
	return &id
}
