package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessBody is the body of a successful contact submission
type SuccessBody struct {
	Success bool `json:"success"`
}

// ErrorBody is the body of every failed request. It carries no success field.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends {"success": true}
func Success(c *gin.Context, code int) {
	c.JSON(code, SuccessBody{Success: true})
}

// Data sends an arbitrary JSON payload
func Data(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends {"error": message}
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}
