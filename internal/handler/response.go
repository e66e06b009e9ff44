package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/upload"
)

// All responses share the envelope {success, message?, data?, errors?}.

func respondData(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondServiceError maps a service error to the closest taxonomy
// entry. Anything unmapped becomes a generic 500: raw storage errors
// never reach the client.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrSelfDeletion):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// respondUploadError distinguishes client upload mistakes (400) from
// storage failures (500).
func respondUploadError(c *gin.Context, err error) {
	if upload.IsUploadError(err) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, "Failed to store uploaded file")
}

// paramUint parses a positive integer path parameter.
func paramUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		respondError(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(value), true
}

// queryInt parses an optional integer query parameter with a default.
func queryInt(c *gin.Context, name string, defaultVal int) int {
	valStr := c.Query(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}

// NotFoundHandler serves unmatched routes with the uniform envelope.
func NotFoundHandler(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Route not found")
}
