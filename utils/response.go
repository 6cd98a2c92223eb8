package utils

import "github.com/gin-gonic/gin"

// JSONError writes the {"error": {"code", "message"}} envelope the admin
// front end reads.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func JSONErrorDetails(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message, "details": details}})
}
