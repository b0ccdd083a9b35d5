package response

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, payload gin.H) {
	c.JSON(200, payload)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
