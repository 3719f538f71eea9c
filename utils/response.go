package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with a {"error": message} body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RespondWithMessage writes data along with the notice a client shows the user.
func RespondWithMessage(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}
