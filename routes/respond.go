package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sidhant-sriv/roomshare-api/middleware"
	"github.com/sidhant-sriv/roomshare-api/service"
)

// respondError maps service errors onto HTTP statuses. The body is always
// {"error": message}.
func respondError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// sessionUser returns the authenticated caller, answering 401 when there is none.
func sessionUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return uuid.Nil, false
	}
	return id, true
}

// sessionMatches answers 403 unless claimed is absent or equal to the session user.
func sessionMatches(c *gin.Context, session uuid.UUID, field string, claimed *uuid.UUID) bool {
	if claimed != nil && *claimed != session {
		c.JSON(http.StatusForbidden, gin.H{"error": field + " does not match the authenticated user"})
		return false
	}
	return true
}

// selfParam resolves a path user id and answers 403 unless it is the caller.
func selfParam(c *gin.Context, name string) (uuid.UUID, bool) {
	session, ok := sessionUser(c)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := uuidParam(c, name)
	if !ok {
		return uuid.Nil, false
	}
	if id != session {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only access your own data"})
		return uuid.Nil, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}
