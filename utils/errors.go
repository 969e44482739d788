package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned on every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RespondWithError sends a standardized error response
func RespondWithError(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, ErrorResponse{Detail: detail})
}

// RespondWithBadRequest sends a 400 Bad Request error
func RespondWithBadRequest(c *gin.Context, detail string) {
	RespondWithError(c, http.StatusBadRequest, detail)
}

// RespondWithNotFound sends a 404 Not Found error
func RespondWithNotFound(c *gin.Context, detail string) {
	RespondWithError(c, http.StatusNotFound, detail)
}

// RespondWithInternalError sends a 500 Internal Server Error
func RespondWithInternalError(c *gin.Context, detail string) {
	RespondWithError(c, http.StatusInternalServerError, detail)
}
