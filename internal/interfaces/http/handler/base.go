package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelink/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// JSON sends a 200 response with the given body
func (h *BaseHandler) JSON(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), gin.H{
		"success": false,
		"error":   dto.NewErrorInfo(code, message),
	})
}
