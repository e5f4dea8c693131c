package core

import "github.com/gin-gonic/gin"

// respondError sends unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// respondValidation sends the aggregated field errors alongside the unified
// error envelope.
func respondValidation(c *gin.Context, status int, errs []FieldError) {
	c.JSON(status, gin.H{
		"error":  gin.H{"code": "VALIDATION_ERROR", "message": "invalid request"},
		"errors": errs,
	})
}
