package handler

import (
	"net/http"
	"strconv"

	"eventhub/internal/apperr"
	"eventhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// respondErr maps a tagged error to its HTTP status with the standard
// {"error": message} envelope.
func respondErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
}

// respondConflictAs400 is for name/username uniqueness conflicts, which the
// API reports as 400 rather than 409.
func respondConflictAs400(c *gin.Context, err error) {
	if apperr.IsKind(err, apperr.AlreadyExists) {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperr.Message(err)})
		return
	}
	respondErr(c, err)
}

// principal resolves the authenticated user id. A missing principal behind an
// authenticated route is a server misconfiguration, not a client error.
func principal(c *gin.Context) (uint64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter, rejecting the request on garbage.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
